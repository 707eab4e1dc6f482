package opendata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordsSearchParams(t *testing.T) {
	t.Run("municipality search", func(t *testing.T) {
		v := NewQuery(DatasetMunicipalities).
			WithRows(10).
			WithFacet("provincia", "municipio").
			Contains("municipio", "Valla").
			Refine("provincia", "Valladolid").
			RecordsSearchParams()

		assert.Equal(t, DatasetMunicipalities, v.Get("dataset"))
		assert.Equal(t, "json", v.Get("format"))
		assert.Equal(t, "10", v.Get("rows"))
		assert.Equal(t, []string{"provincia", "municipio"}, v["facet"])
		assert.Equal(t, "municipio:*Valla*", v.Get("q"))
		assert.Equal(t, "Valladolid", v.Get("refine.provincia"))
	})

	t.Run("exact match escapes quotes", func(t *testing.T) {
		v := NewQuery(DatasetHealthCenters).Exact("localidad", `San "Pedro" \ Sur`).RecordsSearchParams()
		assert.Equal(t, `localidad:"San \"Pedro\" \\ Sur"`, v.Get("q"))
	})

	t.Run("contains strips query operators", func(t *testing.T) {
		v := NewQuery(DatasetMunicipalities).Contains("municipio", `a*") OR (x:"`).RecordsSearchParams()
		assert.Equal(t, "municipio:*a OR x*", v.Get("q"))
	})

	t.Run("blank filters are ignored", func(t *testing.T) {
		v := NewQuery(DatasetMunicipalities).Contains("municipio", "  ").Refine("provincia", "").RecordsSearchParams()
		assert.Empty(t, v.Get("q"))
		assert.NotContains(t, v, "refine.provincia")
	})

	t.Run("operator-only text produces no term", func(t *testing.T) {
		v := NewQuery(DatasetMunicipalities).Contains("municipio", `**""`).RecordsSearchParams()
		assert.Empty(t, v.Get("q"))
	})
}

func TestCatalogParams(t *testing.T) {
	q := NewQuery(DatasetEducationCenters).WithRows(100).Where("municipio", `ÁVILA`)
	v := q.CatalogParams()

	assert.Equal(t, `municipio="ÁVILA"`, v.Get("where"))
	assert.Equal(t, "100", v.Get("limit"))
	assert.Equal(t, "json", v.Get("format"))
	assert.Equal(t, "/directorio-de-centros-docentes/records", q.CatalogPath())
}

func TestCatalogParamsEscapesQuotes(t *testing.T) {
	v := NewQuery(DatasetEducationCenters).Where("municipio", `X" OR 1=1 OR "`).CatalogParams()
	assert.Equal(t, `municipio="X\" OR 1=1 OR \""`, v.Get("where"))
}
