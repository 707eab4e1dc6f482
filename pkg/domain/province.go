package domain

import (
	"strings"

	dErrors "retrato/pkg/domain-errors"
)

// ProvinceCode is the short code of one of the nine provinces of Castilla y León.
type ProvinceCode string

const (
	ProvinceAvila      ProvinceCode = "AV"
	ProvinceBurgos     ProvinceCode = "BU"
	ProvinceLeon       ProvinceCode = "LE"
	ProvincePalencia   ProvinceCode = "P"
	ProvinceSalamanca  ProvinceCode = "SA"
	ProvinceSegovia    ProvinceCode = "SG"
	ProvinceSoria      ProvinceCode = "SO"
	ProvinceValladolid ProvinceCode = "VA"
	ProvinceZamora     ProvinceCode = "ZA"
)

// DefaultProvince is used when an upstream province number is not recognised.
const DefaultProvince = ProvinceValladolid

// Province pairs a code with its display name and the upstream INE number.
type Province struct {
	Code   ProvinceCode
	Name   string
	Number string
}

// provinces is the single source of truth, in INE order.
var provinces = []Province{
	{ProvinceAvila, "Ávila", "05"},
	{ProvinceBurgos, "Burgos", "09"},
	{ProvinceLeon, "León", "24"},
	{ProvincePalencia, "Palencia", "34"},
	{ProvinceSalamanca, "Salamanca", "37"},
	{ProvinceSegovia, "Segovia", "40"},
	{ProvinceSoria, "Soria", "42"},
	{ProvinceValladolid, "Valladolid", "47"},
	{ProvinceZamora, "Zamora", "49"},
}

var (
	byCode   = make(map[ProvinceCode]Province, len(provinces))
	byNumber = make(map[string]Province, len(provinces))
)

func init() {
	for _, p := range provinces {
		byCode[p.Code] = p
		byNumber[p.Number] = p
	}
}

// Provinces returns all provinces in INE order.
func Provinces() []Province {
	return append([]Province(nil), provinces...)
}

// ParseProvinceCode validates a province code from external input (case-insensitive).
func ParseProvinceCode(s string) (ProvinceCode, error) {
	code := ProvinceCode(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := byCode[code]; !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown province code")
	}
	return code, nil
}

// IsValid reports whether c is one of the nine known codes.
func (c ProvinceCode) IsValid() bool {
	_, ok := byCode[c]
	return ok
}

// Name returns the display name, or "" for unknown codes.
func (c ProvinceCode) Name() string {
	return byCode[c].Name
}

// Number returns the upstream two-digit number, or "" for unknown codes.
func (c ProvinceCode) Number() string {
	return byCode[c].Number
}

// String returns the code.
func (c ProvinceCode) String() string {
	return string(c)
}

// ProvinceFromNumber translates an upstream province number (e.g. "05" or "5")
// into a province. Unknown numbers fall back to DefaultProvince and ok=false.
func ProvinceFromNumber(number string) (Province, bool) {
	n := strings.TrimSpace(number)
	if len(n) == 1 {
		n = "0" + n
	}
	if p, ok := byNumber[n]; ok {
		return p, true
	}
	return byCode[DefaultProvince], false
}

// ProvinceByName finds a province by display name, case-insensitively.
func ProvinceByName(name string) (Province, bool) {
	for _, p := range provinces {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, true
		}
	}
	return Province{}, false
}
