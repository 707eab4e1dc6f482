// Package export renders a municipality profile as a category/field/value
// table, written as CSV or as an XLSX workbook.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"retrato/internal/profile/models"
)

// Categories, in output order.
const (
	CategoryBasic       = "INFORMACIÓN BÁSICA"
	CategoryDemography  = "DEMOGRAFÍA"
	CategoryEducation   = "EDUCACIÓN"
	CategoryHealth      = "SANIDAD"
	CategoryEmergencies = "EMERGENCIAS"
	CategoryEconomy     = "ECONOMÍA"
	CategoryMetadata    = "METADATOS"
)

// Source is the attribution written in the metadata rows.
const Source = "Junta de Castilla y León - Datos Abiertos"

// Header is the first row of every export.
var Header = Row{Category: "Categoría", Field: "Campo", Value: "Valor"}

// Row is one category/field/value line.
type Row struct {
	Category string
	Field    string
	Value    string
}

func (r Row) cells() []string {
	return []string{r.Category, r.Field, r.Value}
}

// Rows flattens p into export rows, header excluded. Absent categories are
// skipped; numeric values of 0 or -1 and unknown metrics render as "X".
func Rows(p *models.Profile, exportedAt time.Time) []Row {
	var b rowBuilder
	m := p.Municipality

	b.add(CategoryBasic, "Nombre", m.Name)
	b.add(CategoryBasic, "Provincia", m.ProvinceName)
	b.add(CategoryBasic, "Código Provincial", m.ProvinceCode)
	b.add(CategoryBasic, "Código INE", m.ID)
	if m.Surface != nil {
		b.add(CategoryBasic, "Superficie (km²)", number(*m.Surface))
	}
	if m.Altitude != nil {
		b.add(CategoryBasic, "Altitud (m)", number(*m.Altitude))
	}
	if m.Latitude != nil && m.Longitude != nil {
		b.add(CategoryBasic, "Latitud", strconv.FormatFloat(*m.Latitude, 'f', -1, 64))
		b.add(CategoryBasic, "Longitud", strconv.FormatFloat(*m.Longitude, 'f', -1, 64))
	}
	if len(m.PostalCodes) > 0 {
		b.add(CategoryBasic, "Códigos Postales", strings.Join(m.PostalCodes, ", "))
	}
	if m.Comercio != nil {
		b.add(CategoryBasic, "Comercio Local", yesNo(*m.Comercio))
	}
	if len(m.Mancomunidades) > 0 {
		b.add(CategoryBasic, "Mancomunidades", strings.Join(m.Mancomunidades, ", "))
	}
	if len(m.EntidadesLocalesMenores) > 0 {
		b.add(CategoryBasic, "Entidades Locales Menores", strings.Join(m.EntidadesLocalesMenores, ", "))
	}

	if d := p.Demographics; d != nil {
		b.add(CategoryDemography, "Población Total", integer(d.TotalPopulation))
		b.add(CategoryDemography, "Hombres", integer(d.Men))
		b.add(CategoryDemography, "Mujeres", integer(d.Women))
		b.add(CategoryDemography, "Porcentaje Hombres (%)", percent(d.Men, d.TotalPopulation))
		b.add(CategoryDemography, "Porcentaje Mujeres (%)", percent(d.Women, d.TotalPopulation))
		b.add(CategoryDemography, "Extranjeros", integer(d.Foreigners))
		b.add(CategoryDemography, "Porcentaje Extranjeros (%)", percent(d.Foreigners, d.TotalPopulation))
		b.add(CategoryDemography, "Población 0-14", integer(d.Age0to14))
		b.add(CategoryDemography, "Población 15-64", integer(d.Age15to64))
		b.add(CategoryDemography, "Población 65+", integer(d.Age65Plus))
		b.add(CategoryDemography, "Núcleos de Población", integer(d.PopulationsCount))
	}
	if ind := p.Indicators; ind != nil && ind.PopulationDensity != nil {
		b.add(CategoryDemography, "Densidad Población (hab/km²)", fixed2(*ind.PopulationDensity))
	}

	if e := p.Education; e != nil {
		b.add(CategoryEducation, "Centros Infantil/Primaria", integer(e.PrimarySchools))
		b.add(CategoryEducation, "Institutos ESO/Bachillerato", integer(e.SecondarySchools))
		b.add(CategoryEducation, "Centros Formación Profesional", integer(e.VocationalSchools))
		b.add(CategoryEducation, "Universidad", available(e.HasUniversity))
		b.add(CategoryEducation, "Bibliotecas Públicas", integer(e.Libraries))
		b.add(CategoryEducation, "Total Centros Educativos", integer(e.Schools()))
		if ind := p.Indicators; ind != nil && ind.InhabitantsPerSchool != nil {
			b.add(CategoryEducation, "Habitantes por Centro Educativo", rounded(*ind.InhabitantsPerSchool))
		}
	}

	if s := p.Services; s != nil {
		b.add(CategoryHealth, "Centros de Salud", s.HealthCenters.String())
		if ind := p.Indicators; ind != nil && ind.InhabitantsPerHealthCenter != nil {
			b.add(CategoryHealth, "Habitantes por Centro de Salud", rounded(*ind.InhabitantsPerHealthCenter))
		}
		b.add(CategoryHealth, "Hospitales", s.Hospitals.String())
		b.add(CategoryHealth, "Farmacias", s.Pharmacies.String())
		if ind := p.Indicators; ind != nil && ind.InhabitantsPerPharmacy != nil {
			b.add(CategoryHealth, "Habitantes por Farmacia", rounded(*ind.InhabitantsPerPharmacy))
		}
		b.add(CategoryEmergencies, "Parques de Bomberos", s.FireStations.String())
	}
	if h := p.Health; h != nil {
		b.add(CategoryHealth, "Centros Sanitarios Registrados", integer(len(h.Centers)))
	}

	if e := p.Economy; e != nil {
		b.add(CategoryEconomy, "Tasa de Desempleo (%)", metricFixed2(e.UnemploymentRate))
		b.add(CategoryEconomy, "Empresas Activas", e.ActiveCompanies.String())
		if ind := p.Indicators; ind != nil && ind.CompaniesPer100Inhabitants != nil {
			b.add(CategoryEconomy, "Empresas por 100 Habitantes", fixed2(*ind.CompaniesPer100Inhabitants))
		}
		b.add(CategoryEconomy, "Sector Servicios (%)", metricFixed2(e.ServicesPercentage))
		b.add(CategoryEconomy, "Renta per Cápita (€)", e.IncomePerCapita.String())
	}

	b.add(CategoryMetadata, "Fecha de Exportación", exportedAt.Format("02/01/2006"))
	b.add(CategoryMetadata, "Fuente", Source)
	return b.rows
}

type rowBuilder struct {
	rows []Row
}

func (b *rowBuilder) add(category, field, value string) {
	b.rows = append(b.rows, Row{Category: category, Field: field, Value: value})
}

// number renders v, or "X" for the 0 and -1 placeholders.
func number(v float64) string {
	return models.Known(v).String()
}

func integer(v int) string {
	return number(float64(v))
}

func rounded(v float64) string {
	return number(float64(int64(v + 0.5)))
}

func fixed2(v float64) string {
	if v == 0 || v == -1 {
		return models.UnknownMarker
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func metricFixed2(m models.Metric) string {
	v, ok := m.Value()
	if !ok {
		return models.UnknownMarker
	}
	return fixed2(v)
}

func percent(part, total int) string {
	if total <= 0 || part <= 0 {
		return models.UnknownMarker
	}
	return fmt.Sprintf("%.2f", float64(part)/float64(total)*100)
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

func available(b bool) string {
	if b {
		return "Disponible"
	}
	return "No disponible"
}
