// Package models is the shared output schema: the aggregation engine produces
// these types, the cache stores them as JSON and the HTTP and export layers
// read them.
package models

import "time"

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Municipality is the identity and geography block of a profile.
type Municipality struct {
	ID                      string      `json:"id"`
	Name                    string      `json:"name"`
	ProvinceCode            string      `json:"provinceCode"`
	ProvinceName            string      `json:"provinceName"`
	PostalCodes             []string    `json:"postalCodes"`
	Surface                 *float64    `json:"surface,omitempty"`
	Altitude                *float64    `json:"altitude,omitempty"`
	Population              *int        `json:"population,omitempty"`
	Latitude                *float64    `json:"latitude,omitempty"`
	Longitude               *float64    `json:"longitude,omitempty"`
	Coordinates             *[2]float64 `json:"coordinates,omitempty"`
	Mancomunidades          []string    `json:"mancomunidades,omitempty"`
	EntidadesLocalesMenores []string    `json:"entidadesLocalesMenores,omitempty"`
	Comercio                *bool       `json:"comercio,omitempty"`
}

// Point returns the municipality centroid when both coordinates are known.
func (m Municipality) Point() (Coordinates, bool) {
	if m.Latitude == nil || m.Longitude == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *m.Latitude, Lon: *m.Longitude}, true
}

// PopulationBreakdown is shared by the municipality total and each locality.
type PopulationBreakdown struct {
	Total      int `json:"total"`
	Men        int `json:"men"`
	Women      int `json:"women"`
	Spanish    int `json:"spanish"`
	Foreigners int `json:"foreigners"`
	Age0to14   int `json:"age0to14"`
	Age15to64  int `json:"age15to64"`
	Age65Plus  int `json:"age65plus"`
}

// Locality is a populated nucleus inside a municipality.
type Locality struct {
	Name string `json:"name"`
	PopulationBreakdown
}

// Demographics is the census block of a profile.
type Demographics struct {
	TotalPopulation  int        `json:"totalPopulation"`
	Men              int        `json:"men"`
	Women            int        `json:"women"`
	Spanish          int        `json:"spanish"`
	Foreigners       int        `json:"foreigners"`
	Age0to14         int        `json:"age0to14"`
	Age15to64        int        `json:"age15to64"`
	Age65Plus        int        `json:"age65plus"`
	PopulationsCount int        `json:"populationsCount"`
	Localities       []Locality `json:"localities"`
}

// EducationCenter is one school or training center.
type EducationCenter struct {
	Name           string       `json:"name"`
	Code           string       `json:"code"`
	Type           string       `json:"type"`
	ShortType      string       `json:"shortType"`
	Ownership      string       `json:"ownership"`
	Address        string       `json:"address"`
	PostalCode     string       `json:"postalCode"`
	Phone          string       `json:"phone"`
	Email          string       `json:"email"`
	Web            string       `json:"web"`
	AcademicYear   string       `json:"academicYear"`
	Transport      string       `json:"transporte"`
	Canteen        string       `json:"comedor"`
	ContinuousDay  string       `json:"jornada_continua"`
	Boarding       string       `json:"internado"`
	Coordinates    *Coordinates `json:"coordenadas,omitempty"`
	DistanceKm     *float64     `json:"distanceKm,omitempty"`
	Classification string       `json:"classification,omitempty"`
}

// Education is the schools block of a profile.
type Education struct {
	PrimarySchools    int               `json:"primarySchools"`
	SecondarySchools  int               `json:"secondarySchools"`
	VocationalSchools int               `json:"vocationalSchools"`
	HasUniversity     bool              `json:"hasUniversity"`
	Libraries         int               `json:"libraries"`
	TotalCenters      int               `json:"totalCenters"`
	Centers           []EducationCenter `json:"centers"`
}

// Schools is the number of classified centers.
func (e Education) Schools() int {
	return e.PrimarySchools + e.SecondarySchools + e.VocationalSchools
}

// HealthCenter is one registered health facility.
type HealthCenter struct {
	Code         string       `json:"code"`
	Name         string       `json:"name"`
	FacilityType string       `json:"facilityType"`
	CarePurpose  string       `json:"carePurpose"`
	Dependency   string       `json:"functionalDependency"`
	Ownership    string       `json:"ownership"`
	Address      string       `json:"address"`
	Locality     string       `json:"locality"`
	PostalCode   string       `json:"postalCode"`
	Phone        string       `json:"phone"`
	Email        string       `json:"email"`
	Web          string       `json:"web"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	DistanceKm   *float64     `json:"distanceKm,omitempty"`
}

// Health is the facilities block of a profile.
type Health struct {
	Centers []HealthCenter `json:"centers"`
}

// Services summarises public services counts.
type Services struct {
	HealthCenters Metric `json:"healthCenters"`
	Hospitals     Metric `json:"hospitals"`
	Pharmacies    Metric `json:"pharmacies"`
	FireStations  Metric `json:"fireStations"`
}

// Economy holds economic indicators.
type Economy struct {
	UnemploymentRate   Metric `json:"unemploymentRate"`
	ActiveCompanies    Metric `json:"activeCompanies"`
	ServicesPercentage Metric `json:"servicesPercentage"`
	IncomePerCapita    Metric `json:"incomePerCapita"`
}

// Indicators are ratios derived from the other blocks. A nil field means
// an operand was missing or the divisor was zero.
type Indicators struct {
	PopulationDensity          *float64 `json:"populationDensity,omitempty"`
	CompaniesPer100Inhabitants *float64 `json:"companiesPer100Inhabitants,omitempty"`
	InhabitantsPerSchool       *float64 `json:"inhabitantsPerSchool,omitempty"`
	InhabitantsPerHealthCenter *float64 `json:"inhabitantsPerHealthCenter,omitempty"`
	InhabitantsPerPharmacy     *float64 `json:"inhabitantsPerPharmacy,omitempty"`
}

// Profile is the composite answer for one municipality.
type Profile struct {
	Municipality Municipality  `json:"municipality"`
	Demographics *Demographics `json:"demographics,omitempty"`
	Education    *Education    `json:"education,omitempty"`
	Health       *Health       `json:"health,omitempty"`
	Services     *Services     `json:"services,omitempty"`
	Economy      *Economy      `json:"economy,omitempty"`
	Indicators   *Indicators   `json:"indicators,omitempty"`
	GeneratedAt  time.Time     `json:"generatedAt"`
}

// Degraded reports whether any remote-backed category is missing.
func (p *Profile) Degraded() bool {
	return p.Education == nil || p.Health == nil
}

// Population returns the best known population: census total first, then
// the remote registry figure.
func (p *Profile) Population() (int, bool) {
	if p.Demographics != nil && p.Demographics.TotalPopulation > 0 {
		return p.Demographics.TotalPopulation, true
	}
	if p.Municipality.Population != nil && *p.Municipality.Population > 0 {
		return *p.Municipality.Population, true
	}
	return 0, false
}

// SearchResult is the answer to a municipality search.
type SearchResult struct {
	Municipalities []Municipality `json:"municipalities"`
	Total          int            `json:"total"`
}

// HealthPage is one page of a municipality's health facilities.
type HealthPage struct {
	Centers        []HealthCenter `json:"centers"`
	TotalCenters   int            `json:"totalCenters"`
	TotalAvailable int            `json:"totalAvailable"`
	Page           int            `json:"page"`
	Limit          int            `json:"limit"`
	HasMore        bool           `json:"hasMore"`
}
