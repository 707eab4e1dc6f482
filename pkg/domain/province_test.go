package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvinceFromNumber(t *testing.T) {
	tests := []struct {
		number string
		want   ProvinceCode
		known  bool
	}{
		{"05", ProvinceAvila, true},
		{"5", ProvinceAvila, true},
		{"09", ProvinceBurgos, true},
		{"24", ProvinceLeon, true},
		{"34", ProvincePalencia, true},
		{"37", ProvinceSalamanca, true},
		{"40", ProvinceSegovia, true},
		{"42", ProvinceSoria, true},
		{"47", ProvinceValladolid, true},
		{"49", ProvinceZamora, true},
		{"28", DefaultProvince, false},
		{"", DefaultProvince, false},
	}
	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			p, ok := ProvinceFromNumber(tt.number)
			assert.Equal(t, tt.want, p.Code)
			assert.Equal(t, tt.known, ok)
		})
	}
}

func TestParseProvinceCode(t *testing.T) {
	code, err := ParseProvinceCode("sg")
	require.NoError(t, err)
	assert.Equal(t, ProvinceSegovia, code)
	assert.Equal(t, "Segovia", code.Name())
	assert.Equal(t, "40", code.Number())

	_, err = ParseProvinceCode("MA")
	assert.Error(t, err)
}

func TestProvinceByName(t *testing.T) {
	p, ok := ProvinceByName("león")
	require.True(t, ok)
	assert.Equal(t, ProvinceLeon, p.Code)

	_, ok = ProvinceByName("Madrid")
	assert.False(t, ok)
}

func TestProvincesCoversNine(t *testing.T) {
	all := Provinces()
	assert.Len(t, all, 9)
	for _, p := range all {
		assert.True(t, p.Code.IsValid())
	}
}
