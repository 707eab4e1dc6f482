package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"retrato/internal/profile/models"
	dErrors "retrato/pkg/domain-errors"
)

var exportedAt = time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func sampleProfile() *models.Profile {
	return &models.Profile{
		Municipality: models.Municipality{
			ID:           "05001",
			Name:         `Villa "Ejemplo"`,
			ProvinceCode: "AV",
			ProvinceName: "Ávila",
			PostalCodes:  []string{"05296", "05297"},
			Surface:      ptr(10.0),
			Altitude:     ptr(900.0),
			Comercio:     ptr(true),
		},
		Demographics: &models.Demographics{TotalPopulation: 500, Men: 260, Women: 240, Foreigners: 0},
		Education: &models.Education{
			PrimarySchools: 1,
			Centers: []models.EducationCenter{
				{Name: "CEIP San Juan", Type: "Colegio", DistanceKm: ptr(1.5)},
			},
		},
		Health: &models.Health{Centers: []models.HealthCenter{
			{Name: "Consultorio", FacilityType: "Consultorio Local", Locality: "Villa"},
		}},
		Services: &models.Services{
			HealthCenters: models.Known(1),
			Hospitals:     models.Unknown(),
			Pharmacies:    models.Known(0),
			FireStations:  models.Unknown(),
		},
		Economy: &models.Economy{
			UnemploymentRate:   models.MetricFrom(-1),
			ActiveCompanies:    models.Known(-1),
			ServicesPercentage: models.Known(62.5),
			IncomePerCapita:    models.Known(14500),
		},
		Indicators: &models.Indicators{
			PopulationDensity:    ptr(50.0),
			InhabitantsPerSchool: ptr(500.0),
		},
	}
}

func find(rows []Row, category, field string) (string, bool) {
	for _, r := range rows {
		if r.Category == category && r.Field == field {
			return r.Value, true
		}
	}
	return "", false
}

func TestRows(t *testing.T) {
	rows := Rows(sampleProfile(), exportedAt)

	tests := []struct {
		category, field, want string
	}{
		{CategoryBasic, "Nombre", `Villa "Ejemplo"`},
		{CategoryBasic, "Superficie (km²)", "10"},
		{CategoryBasic, "Altitud (m)", "900"},
		{CategoryBasic, "Códigos Postales", "05296, 05297"},
		{CategoryBasic, "Comercio Local", "Sí"},
		{CategoryDemography, "Población Total", "500"},
		{CategoryDemography, "Porcentaje Hombres (%)", "52.00"},
		{CategoryDemography, "Porcentaje Mujeres (%)", "48.00"},
		{CategoryDemography, "Extranjeros", "X"},
		{CategoryDemography, "Densidad Población (hab/km²)", "50.00"},
		{CategoryEducation, "Centros Infantil/Primaria", "1"},
		{CategoryEducation, "Institutos ESO/Bachillerato", "X"},
		{CategoryEducation, "Universidad", "No disponible"},
		{CategoryEducation, "Total Centros Educativos", "1"},
		{CategoryEducation, "Habitantes por Centro Educativo", "500"},
		{CategoryHealth, "Centros de Salud", "1"},
		{CategoryHealth, "Hospitales", "X"},
		{CategoryHealth, "Farmacias", "X"},
		{CategoryEmergencies, "Parques de Bomberos", "X"},
		{CategoryEconomy, "Tasa de Desempleo (%)", "X"},
		{CategoryEconomy, "Empresas Activas", "X"},
		{CategoryEconomy, "Sector Servicios (%)", "62.50"},
		{CategoryEconomy, "Renta per Cápita (€)", "14500"},
		{CategoryMetadata, "Fecha de Exportación", "03/06/2025"},
		{CategoryMetadata, "Fuente", Source},
	}
	for _, tt := range tests {
		got, ok := find(rows, tt.category, tt.field)
		if assert.True(t, ok, "missing row %s/%s", tt.category, tt.field) {
			assert.Equal(t, tt.want, got, "%s/%s", tt.category, tt.field)
		}
	}

	_, ok := find(rows, CategoryBasic, "Latitud")
	assert.False(t, ok, "no coordinates, no rows")
	_, ok = find(rows, CategoryHealth, "Habitantes por Farmacia")
	assert.False(t, ok)
}

func TestRows_AbsentCategoriesAreSkipped(t *testing.T) {
	rows := Rows(&models.Profile{Municipality: models.Municipality{ID: "05001", Name: "Solo"}}, exportedAt)

	categories := map[string]bool{}
	for _, r := range rows {
		categories[r.Category] = true
	}
	assert.Equal(t, map[string]bool{CategoryBasic: true, CategoryMetadata: true}, categories)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Rows(sampleProfile(), exportedAt)))

	out := buf.String()
	assert.NotContains(t, out, "\r")
	assert.False(t, strings.HasSuffix(out, "\n"))

	lines := strings.Split(out, "\n")
	assert.Equal(t, `"Categoría","Campo","Valor"`, lines[0])
	assert.Contains(t, lines, `"INFORMACIÓN BÁSICA","Nombre","Villa ""Ejemplo"""`)
	assert.Contains(t, lines, `"ECONOMÍA","Tasa de Desempleo (%)","X"`)
	assert.Contains(t, lines, `"ECONOMÍA","Empresas Activas","X"`)
	assert.NotContains(t, out, `"-1"`)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, `"`) && strings.HasSuffix(l, `"`), "unquoted cell in %q", l)
	}
}

func TestWriteXLSX(t *testing.T) {
	p := sampleProfile()
	rows := Rows(p, exportedAt)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, p, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetProfile, SheetHealth, SheetEducation}, f.GetSheetList())

	profileRows, err := f.GetRows(SheetProfile)
	require.NoError(t, err)
	require.Len(t, profileRows, len(rows)+1)
	assert.Equal(t, []string{"Categoría", "Campo", "Valor"}, profileRows[0])
	assert.Equal(t, []string{CategoryBasic, "Nombre", `Villa "Ejemplo"`}, profileRows[1])

	health, err := f.GetRows(SheetHealth)
	require.NoError(t, err)
	require.Len(t, health, 2)
	assert.Equal(t, "Consultorio", health[1][0])
	assert.Equal(t, "Villa", health[1][2])

	education, err := f.GetRows(SheetEducation)
	require.NoError(t, err)
	require.Len(t, education, 2)
	assert.Equal(t, "1.50", education[1][6])
}

func TestWriteXLSX_WithoutFacilities(t *testing.T) {
	p := &models.Profile{Municipality: models.Municipality{ID: "05001", Name: "Solo"}}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, p, Rows(p, exportedAt)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetProfile}, f.GetSheetList())
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatCSV, "csv": FormatCSV, " XLSX ": FormatXLSX} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("pdf")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
}

func TestFileName(t *testing.T) {
	p := &models.Profile{Municipality: models.Municipality{ID: "05019", Name: "Ávila de los Caballeros"}}
	assert.Equal(t, "Avila_de_los_Caballeros_datos.csv", FileName(p, FormatCSV))

	p.Municipality.Name = `"/"`
	assert.Equal(t, "05019_datos.xlsx", FileName(p, FormatXLSX))
}
