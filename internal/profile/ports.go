package profile

import (
	"context"

	"retrato/internal/profile/models"
	"retrato/internal/reference"
	"retrato/pkg/domain"
)

// Gateway is the remote open-data source.
type Gateway interface {
	SearchMunicipalities(ctx context.Context, params models.SearchParams) (*models.SearchResult, error)
	MunicipalityByID(ctx context.Context, id domain.MunicipalityID) (*models.Municipality, error)
	EducationCenters(ctx context.Context, municipalityName string) (*models.Education, error)
	HealthCenters(ctx context.Context, localities []reference.LocalityRef) ([]models.HealthCenter, error)
}

// Reference is the static dataset store, read-only after load.
type Reference interface {
	FindMunicipality(id string) (reference.Municipality, bool)
	FindPostalCodes(id string) []string
	FindDemographics(id string) (*models.Demographics, bool)
	Localities(id string) []reference.LocalityRef
	FindEconomy(id string) (models.Economy, bool)
	Search(term string) []reference.Municipality
	Stats() reference.Stats
}
