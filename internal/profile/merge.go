package profile

import (
	"math"
	"strings"

	"github.com/golang/geo/s2"

	"retrato/internal/profile/models"
	"retrato/internal/reference"
	"retrato/pkg/domain"
	pstrings "retrato/pkg/platform/strings"
)

const earthRadiusKm = 6371.0088

// mergeMunicipality combines the remote record with the static one. Remote
// identity, name and province win; static postal codes, coordinates,
// altitude and surface overwrite remote values when present.
func mergeMunicipality(id domain.MunicipalityID, remote *models.Municipality, static reference.Municipality, hasStatic bool, postalCodes []string) models.Municipality {
	var m models.Municipality
	if remote != nil {
		m = *remote
	}
	m.ID = id.String()

	if hasStatic {
		if m.Name == "" {
			m.Name = static.Name
		}
		if m.ProvinceCode == "" || remote == nil {
			m.ProvinceCode = static.ProvinceCode.String()
		}
		if m.ProvinceName == "" {
			m.ProvinceName = static.ProvinceName
		}
		if static.HasCoordinates() {
			lat, lon := static.Latitude, static.Longitude
			m.Latitude, m.Longitude = &lat, &lon
			m.Coordinates = &[2]float64{lon, lat}
		}
		if static.Altitude > 0 {
			alt := static.Altitude
			m.Altitude = &alt
		}
		if static.SurfaceKm2 > 0 {
			surface := static.SurfaceKm2
			m.Surface = &surface
		}
		if m.Population == nil && static.Population > 0 {
			pop := static.Population
			m.Population = &pop
		}
	}

	if len(postalCodes) > 0 {
		m.PostalCodes = postalCodes
	}
	if m.PostalCodes == nil {
		m.PostalCodes = []string{}
	}
	return m
}

// fromStatic renders a static record as a search hit.
func fromStatic(r reference.Municipality) models.Municipality {
	return mergeMunicipality(domain.MunicipalityID(domain.NormalizeMunicipalityID(r.ID)), nil, r, true, nil)
}

// Facility type keywords, matched on the folded type.
var (
	hospitalKeywords     = []string{"hospital"}
	pharmacyKeywords     = []string{"farmacia", "botiquin"}
	healthCenterKeywords = []string{"centro de salud", "consultorio"}
)

// deriveServices counts facilities by type. Without health data every
// metric is unknown; fire stations are never published.
func deriveServices(h *models.Health) *models.Services {
	svc := &models.Services{
		HealthCenters: models.Unknown(),
		Hospitals:     models.Unknown(),
		Pharmacies:    models.Unknown(),
		FireStations:  models.Unknown(),
	}
	if h == nil {
		return svc
	}
	var hospitals, pharmacies, centers int
	for _, c := range h.Centers {
		t := pstrings.Fold(c.FacilityType)
		switch {
		case containsAny(t, hospitalKeywords):
			hospitals++
		case containsAny(t, pharmacyKeywords):
			pharmacies++
		case containsAny(t, healthCenterKeywords):
			centers++
		}
	}
	svc.Hospitals = models.MetricFrom(float64(hospitals))
	svc.Pharmacies = models.MetricFrom(float64(pharmacies))
	svc.HealthCenters = models.MetricFrom(float64(centers))
	return svc
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// computeIndicators derives the ratios. A ratio is left nil when an operand
// is unknown or its divisor is zero.
func computeIndicators(p *models.Profile) *models.Indicators {
	ind := &models.Indicators{}
	pop, ok := p.Population()
	if !ok {
		return ind
	}
	population := float64(pop)

	if p.Municipality.Surface != nil {
		ind.PopulationDensity = ratio(population, *p.Municipality.Surface, 1)
	}
	if p.Economy != nil {
		if companies, known := p.Economy.ActiveCompanies.Value(); known {
			ind.CompaniesPer100Inhabitants = ratio(companies, population, 100)
		}
	}
	if p.Education != nil {
		ind.InhabitantsPerSchool = ratio(population, float64(p.Education.Schools()), 1)
	}
	if p.Services != nil {
		if n, known := p.Services.HealthCenters.Value(); known {
			ind.InhabitantsPerHealthCenter = ratio(population, n, 1)
		}
		if n, known := p.Services.Pharmacies.Value(); known {
			ind.InhabitantsPerPharmacy = ratio(population, n, 1)
		}
	}
	return ind
}

func ratio(num, den, scale float64) *float64 {
	if den <= 0 {
		return nil
	}
	v := round2(num / den * scale)
	return &v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// applyDistances sets distanceKm on every located center when the
// municipality centroid is known.
func applyDistances(p *models.Profile) {
	origin, ok := p.Municipality.Point()
	if !ok {
		return
	}
	from := s2.LatLngFromDegrees(origin.Lat, origin.Lon)
	if p.Education != nil {
		for i := range p.Education.Centers {
			p.Education.Centers[i].DistanceKm = distanceKm(from, p.Education.Centers[i].Coordinates)
		}
	}
	if p.Health != nil {
		for i := range p.Health.Centers {
			p.Health.Centers[i].DistanceKm = distanceKm(from, p.Health.Centers[i].Coordinates)
		}
	}
}

func distanceKm(from s2.LatLng, to *models.Coordinates) *float64 {
	if to == nil {
		return nil
	}
	d := round2(from.Distance(s2.LatLngFromDegrees(to.Lat, to.Lon)).Radians() * earthRadiusKm)
	return &d
}

// plainName is the accent-free spelling the health registry indexes.
func plainName(name string) string {
	return pstrings.StripDiacritics(strings.TrimSpace(name))
}
