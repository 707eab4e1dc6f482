package opendata

import (
	"strings"

	"retrato/internal/profile/models"
	"retrato/pkg/domain"
	pstrings "retrato/pkg/platform/strings"
)

// DefaultAcademicYear fills centers that do not report one.
const DefaultAcademicYear = "2024"

func toCoordinates(g *geometry) *models.Coordinates {
	if g == nil || len(g.Coordinates) < 2 {
		return nil
	}
	return &models.Coordinates{Lat: g.Coordinates[1], Lon: g.Coordinates[0]}
}

func positive(v float64) *float64 {
	if v <= 0 {
		return nil
	}
	return &v
}

func transformMunicipality(r record[municipalityFields]) models.Municipality {
	f := r.Fields
	m := models.Municipality{
		ID:                      domain.NormalizeMunicipalityID(f.CodINE.Or(f.CodMunicipio.String())),
		Name:                    f.Municipio.Or(f.Nombre.String()),
		PostalCodes:             pstrings.SplitList(f.CodigosPostales.String(), ","),
		Surface:                 positive(f.Superficie.Float()),
		Altitude:                positive(float64(f.Altitud.Int())),
		Mancomunidades:          pstrings.SplitList(f.Mancomunidades.String(), ","),
		EntidadesLocalesMenores: pstrings.SplitList(f.EntidadesLocalesMenores.String(), ","),
	}
	if m.PostalCodes == nil {
		m.PostalCodes = []string{}
	}
	if pop := f.Poblacion.Int(); pop > 0 {
		m.Population = &pop
	}
	if b, ok := f.Comercio.Bool(); ok {
		m.Comercio = &b
	}

	province, known := domain.ProvinceFromNumber(f.CodProvincia.String())
	if !known {
		if byName, ok := domain.ProvinceByName(f.Provincia.String()); ok {
			province = byName
		}
	}
	m.ProvinceCode = province.Code.String()
	m.ProvinceName = f.Provincia.Or(province.Name)

	if c := toCoordinates(r.Geometry); c != nil {
		lat, lon := c.Lat, c.Lon
		m.Latitude, m.Longitude = &lat, &lon
		m.Coordinates = &[2]float64{lon, lat}
	}
	return m
}

func transformHealthCenter(r record[healthFields], locality string) models.HealthCenter {
	f := r.Fields
	return models.HealthCenter{
		Code:         f.NoDeRegistro.String(),
		Name:         f.NombreDelCentro.String(),
		FacilityType: f.TipoDeCentro.String(),
		CarePurpose:  f.FinalidadAsistencial.String(),
		Dependency:   f.DependenciaFuncional.String(),
		Ownership:    f.Titularidad.String(),
		Address:      f.Direccion.String(),
		Locality:     locality,
		PostalCode:   f.CodigoPostal.String(),
		Phone:        f.Telefono.String(),
		Email:        f.Email.String(),
		Web:          f.Web.String(),
		Coordinates:  toCoordinates(r.Geometry),
	}
}

func transformEducationCenter(r educationRecord) models.EducationCenter {
	number := r.NumeroExt.Or(r.Numero.String())
	address := strings.Join(strings.Fields(strings.Join([]string{r.Via.String(), r.NombreDeLaVia.String(), number}, " ")), " ")
	c := models.EducationCenter{
		Name:          r.DenominacionEspecifica.String(),
		Code:          r.Codigo.String(),
		Type:          r.DenominacionGenerica.String(),
		ShortType:     r.DenominacionGenericaBrev.String(),
		Ownership:     r.Naturaleza.String(),
		Address:       address,
		PostalCode:    r.CPostal.String(),
		Phone:         r.Telefono.String(),
		Email:         r.CorreoElectronico.String(),
		Web:           r.Web.String(),
		AcademicYear:  r.CursoAcademico.Or(DefaultAcademicYear),
		Transport:     r.Transporte.Or("N"),
		Canteen:       r.Comedor.Or("N"),
		ContinuousDay: r.JornadaContinua.Or("N"),
		Boarding:      r.Internado.Or("N"),
	}
	if r.Localizacion != nil {
		c.Coordinates = &models.Coordinates{Lat: r.Localizacion.Lat, Lon: r.Localizacion.Lon}
	}
	c.Classification = string(ClassifyEducation(c.Type))
	return c
}

// EducationCategory is the bucket a center type is counted in.
type EducationCategory string

const (
	EducationPrimary      EducationCategory = "primary"
	EducationSecondary    EducationCategory = "secondary"
	EducationVocational   EducationCategory = "vocational"
	EducationUnclassified EducationCategory = ""
)

var educationKeywords = []struct {
	category EducationCategory
	keywords []string
}{
	{EducationPrimary, []string{"infantil", "primaria", "ceip"}},
	{EducationSecondary, []string{"secundaria", "ies", "bachillerato"}},
	{EducationVocational, []string{"formación profesional", "fp", "ciclo"}},
}

// ClassifyEducation matches the generic center type against each category's
// keywords in order (case-insensitive substring); the first match wins.
func ClassifyEducation(centerType string) EducationCategory {
	t := strings.ToLower(centerType)
	for _, group := range educationKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(t, kw) {
				return group.category
			}
		}
	}
	return EducationUnclassified
}

// summarizeEducation counts classified centers; unclassified ones stay in the list.
func summarizeEducation(centers []models.EducationCenter) *models.Education {
	e := &models.Education{
		TotalCenters: len(centers),
		Centers:      centers,
	}
	for _, c := range centers {
		switch EducationCategory(c.Classification) {
		case EducationPrimary:
			e.PrimarySchools++
		case EducationSecondary:
			e.SecondarySchools++
		case EducationVocational:
			e.VocationalSchools++
		}
	}
	return e
}
