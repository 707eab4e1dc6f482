// Package reference loads the static Castilla y León datasets shipped with the
// service and answers lookups against them. The store is immutable after Load
// and safe for concurrent reads.
package reference

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"retrato/internal/profile/models"
	"retrato/pkg/domain"
	"retrato/pkg/platform/flex"
	pstrings "retrato/pkg/platform/strings"
)

// Dataset file names inside the data directory.
const (
	MunicipalitiesFile = "municipios_cyl.json"
	PostalCodesFile    = "codigos_postales.json"
	NomenclatorFile    = "nomenclator_cyl.json"
	MappingFile        = "poblacion_ine_mapping.json"
	EconomyFile        = "economia_cyl.json"
)

// SearchLimit caps static search results.
const SearchLimit = 20

// hectaresPerKm2 converts SUPERFICIE, which is published in hectares.
const hectaresPerKm2 = 100.0

// Municipality is the static geographic record. Zero values mean unknown.
type Municipality struct {
	ID           string
	Name         string
	ProvinceCode domain.ProvinceCode
	ProvinceName string
	SurfaceKm2   float64
	Altitude     float64
	Latitude     float64
	Longitude    float64
	Population   int
}

// HasCoordinates reports whether both coordinates are present.
func (m Municipality) HasCoordinates() bool {
	return m.Latitude != 0 && m.Longitude != 0
}

// LocalityRef maps a locality name to its municipality. Plain is the
// accent-free spelling the health registry is queried with; Display keeps
// diacritics.
type LocalityRef struct {
	Plain          string
	Display        string
	MunicipalityID string
}

// Stats counts loaded records per dataset.
type Stats struct {
	MunicipalitiesCount int `json:"municipalitiesCount"`
	PostalCodesCount    int `json:"postalCodesCount"`
	NomenclatorCount    int `json:"nomenclatorCount"`
	LocalitiesCount     int `json:"localitiesCount"`
	EconomyCount        int `json:"economyCount"`
}

// Store holds the loaded datasets and their indexes.
type Store struct {
	municipalities []Municipality
	byID           map[string]int
	postalCodes    map[string][]string
	postalCount    int
	nomenclator    map[string][]nomenclatorRecord
	nomenclatorLen int
	localities     map[string][]LocalityRef
	localityCount  int
	economy        map[string]models.Economy
}

// Load reads every dataset from dir. Each file is independent: a missing file
// is logged at info, a malformed one at error, and both yield an empty dataset.
func Load(dir string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		byID:        make(map[string]int),
		postalCodes: make(map[string][]string),
		nomenclator: make(map[string][]nomenclatorRecord),
		localities:  make(map[string][]LocalityRef),
		economy:     make(map[string]models.Economy),
	}

	var munis []municipalityRecord
	if loadFile(dir, MunicipalitiesFile, &munis, log) {
		s.indexMunicipalities(munis)
	}
	var postal []postalCodeRecord
	if loadFile(dir, PostalCodesFile, &postal, log) {
		s.indexPostalCodes(postal)
	}
	var nomen []nomenclatorRecord
	if loadFile(dir, NomenclatorFile, &nomen, log) {
		s.indexNomenclator(nomen)
	}
	var mapping []map[string]flex.Value
	if loadFile(dir, MappingFile, &mapping, log) {
		s.indexMapping(mapping, log)
	}
	var econ []economyRecord
	if loadFile(dir, EconomyFile, &econ, log) {
		s.indexEconomy(econ)
	}

	st := s.Stats()
	log.Info("reference data loaded",
		zap.String("dir", dir),
		zap.Int("municipalities", st.MunicipalitiesCount),
		zap.Int("postal_codes", st.PostalCodesCount),
		zap.Int("nomenclator", st.NomenclatorCount),
		zap.Int("localities", st.LocalitiesCount),
		zap.Int("economy", st.EconomyCount),
	)
	return s
}

func loadFile(dir, name string, into any, log *zap.Logger) bool {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("reference dataset not found, using empty data", zap.String("file", path))
		} else {
			log.Error("reference dataset unreadable, using empty data", zap.String("file", path), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, into); err != nil {
		log.Error("reference dataset malformed, using empty data",
			zap.String("file", path), zap.Error(fmt.Errorf("decode %s: %w", name, err)))
		return false
	}
	return true
}

func (s *Store) indexMunicipalities(records []municipalityRecord) {
	s.municipalities = make([]Municipality, 0, len(records))
	for _, r := range records {
		if r.CodINE5 == "" {
			continue
		}
		id := domain.NormalizeMunicipalityID(r.CodINE5.String())
		m := Municipality{
			ID:           id,
			Name:         r.Nombre.String(),
			ProvinceName: r.Provincia.String(),
			SurfaceKm2:   r.Superficie.Float() / hectaresPerKm2,
			Altitude:     r.Altitud.Float(),
			Latitude:     r.Latitud.Float(),
			Longitude:    r.Longitud.Float(),
			Population:   r.Poblacion.Int(),
		}
		p, _ := domain.ProvinceFromNumber(domain.MunicipalityID(id).ProvinceNumber())
		m.ProvinceCode = p.Code
		if m.ProvinceName == "" {
			m.ProvinceName = p.Name
		}
		if _, dup := s.byID[id]; !dup {
			s.byID[id] = len(s.municipalities)
		}
		s.municipalities = append(s.municipalities, m)
	}
}

func (s *Store) indexPostalCodes(records []postalCodeRecord) {
	for _, r := range records {
		if r.CodINE5 == "" || r.CP == "" {
			continue
		}
		id := domain.NormalizeMunicipalityID(r.CodINE5.String())
		s.postalCodes[id] = append(s.postalCodes[id], r.CP.String())
		s.postalCount++
	}
}

func (s *Store) indexNomenclator(records []nomenclatorRecord) {
	for _, r := range records {
		if r.CodINE5 == "" {
			continue
		}
		id := domain.NormalizeMunicipalityID(r.CodINE5.String())
		s.nomenclator[id] = append(s.nomenclator[id], r)
		s.nomenclatorLen++
	}
}

func (s *Store) indexMapping(records []map[string]flex.Value, log *zap.Logger) {
	skipped := 0
	for _, r := range records {
		parts := strings.Split(r[mappingKey].String(), ";")
		if len(parts) < 3 || strings.TrimSpace(parts[2]) == "" {
			skipped++
			continue
		}
		ref := LocalityRef{
			Plain:          strings.TrimSpace(parts[0]),
			Display:        strings.TrimSpace(parts[1]),
			MunicipalityID: domain.NormalizeMunicipalityID(parts[2]),
		}
		s.localities[ref.MunicipalityID] = append(s.localities[ref.MunicipalityID], ref)
		s.localityCount++
	}
	if skipped > 0 {
		log.Warn("skipped malformed locality mapping records", zap.Int("count", skipped))
	}
}

func (s *Store) indexEconomy(records []economyRecord) {
	for _, r := range records {
		if r.CodINE5 == "" {
			continue
		}
		id := domain.NormalizeMunicipalityID(r.CodINE5.String())
		s.economy[id] = models.Economy{
			UnemploymentRate:   models.MetricFrom(r.TasaParo.Float()),
			ActiveCompanies:    models.MetricFrom(r.EmpresasActivas.Float()),
			ServicesPercentage: models.MetricFrom(r.PorcentajeServicio.Float()),
			IncomePerCapita:    models.MetricFrom(r.RentaPerCapita.Float()),
		}
	}
}

// FindMunicipality returns the static record for id.
func (s *Store) FindMunicipality(id string) (Municipality, bool) {
	i, ok := s.byID[domain.NormalizeMunicipalityID(id)]
	if !ok {
		return Municipality{}, false
	}
	return s.municipalities[i], true
}

// FindPostalCodes returns every postal code record of id in document order,
// repeats included. The first one is the primary code.
func (s *Store) FindPostalCodes(id string) []string {
	codes := s.postalCodes[domain.NormalizeMunicipalityID(id)]
	if len(codes) == 0 {
		return nil
	}
	return append([]string(nil), codes...)
}

// PrimaryPostalCode returns the first postal code of id.
func (s *Store) PrimaryPostalCode(id string) (string, bool) {
	codes := s.FindPostalCodes(id)
	if len(codes) == 0 {
		return "", false
	}
	return codes[0], true
}

// FindDemographics applies the nomenclator unit-code rule: unit "0" is the
// municipal total and must exist; units other than "0" ending in "0" are
// localities; every other unit is a sub-nucleus and is ignored.
func (s *Store) FindDemographics(id string) (*models.Demographics, bool) {
	entries := s.nomenclator[domain.NormalizeMunicipalityID(id)]
	var total *nomenclatorRecord
	localities := make([]models.Locality, 0)
	for i := range entries {
		unit := entries[i].Unidad.String()
		switch {
		case unit == "0":
			if total == nil {
				total = &entries[i]
			}
		case strings.HasSuffix(unit, "0"):
			localities = append(localities, models.Locality{
				Name:                entries[i].Poblacion.String(),
				PopulationBreakdown: breakdown(entries[i]),
			})
		}
	}
	if total == nil {
		return nil, false
	}
	b := breakdown(*total)
	return &models.Demographics{
		TotalPopulation:  b.Total,
		Men:              b.Men,
		Women:            b.Women,
		Spanish:          b.Spanish,
		Foreigners:       b.Foreigners,
		Age0to14:         b.Age0to14,
		Age15to64:        b.Age15to64,
		Age65Plus:        b.Age65Plus,
		PopulationsCount: len(localities),
		Localities:       localities,
	}, true
}

func breakdown(r nomenclatorRecord) models.PopulationBreakdown {
	return models.PopulationBreakdown{
		Total:      r.Total.Int(),
		Men:        r.Hombres.Int(),
		Women:      r.Mujeres.Int(),
		Spanish:    r.Espanoles.Int(),
		Foreigners: r.Extranjeros.Int(),
		Age0to14:   r.De0a14.Int(),
		Age15to64:  r.De15a64.Int(),
		Age65Plus:  r.De65.Int(),
	}
}

// Localities returns the locality mapping entries of id.
func (s *Store) Localities(id string) []LocalityRef {
	refs := s.localities[domain.NormalizeMunicipalityID(id)]
	return append([]LocalityRef(nil), refs...)
}

// FindEconomy returns the economic indicators of id.
func (s *Store) FindEconomy(id string) (models.Economy, bool) {
	e, ok := s.economy[domain.NormalizeMunicipalityID(id)]
	return e, ok
}

// Search matches term against municipality and province names, ignoring case
// and accents, in document order, capped at SearchLimit. An empty term
// matches everything.
func (s *Store) Search(term string) []Municipality {
	needle := pstrings.Fold(term)
	out := make([]Municipality, 0)
	for _, m := range s.municipalities {
		if strings.Contains(pstrings.Fold(m.Name), needle) || strings.Contains(pstrings.Fold(m.ProvinceName), needle) {
			out = append(out, m)
			if len(out) == SearchLimit {
				break
			}
		}
	}
	return out
}

// Stats returns record counts per dataset.
func (s *Store) Stats() Stats {
	return Stats{
		MunicipalitiesCount: len(s.municipalities),
		PostalCodesCount:    s.postalCount,
		NomenclatorCount:    s.nomenclatorLen,
		LocalitiesCount:     s.localityCount,
		EconomyCount:        len(s.economy),
	}
}
