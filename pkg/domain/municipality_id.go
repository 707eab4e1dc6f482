package domain

import (
	"strings"

	dErrors "retrato/pkg/domain-errors"
)

// MunicipalityIDLength is the width of an INE municipality code.
const MunicipalityIDLength = 5

// MunicipalityID is a 5-digit INE code, left-padded with zeros.
// Invariant: values produced by ParseMunicipalityID are exactly five ASCII digits.
type MunicipalityID string

// NormalizeMunicipalityID trims raw and left-pads it with '0' to five characters.
// It never fails; inputs longer than five characters are returned trimmed but
// otherwise untouched. Normalize(Normalize(x)) == Normalize(x).
func NormalizeMunicipalityID(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) >= MunicipalityIDLength {
		return s
	}
	return strings.Repeat("0", MunicipalityIDLength-len(s)) + s
}

// ParseMunicipalityID normalizes external input and requires five digits.
//
// Errors: returns CodeInvalidInput for anything that does not normalize to a
// five digit code.
func ParseMunicipalityID(raw string) (MunicipalityID, error) {
	if strings.TrimSpace(raw) == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "municipality id cannot be empty")
	}
	s := NormalizeMunicipalityID(raw)
	if len(s) != MunicipalityIDLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "municipality id must have 5 digits")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", dErrors.New(dErrors.CodeInvalidInput, "municipality id must be numeric")
		}
	}
	return MunicipalityID(s), nil
}

// String returns the code.
func (id MunicipalityID) String() string {
	return string(id)
}

// ProvinceNumber returns the two-digit province prefix of the code.
func (id MunicipalityID) ProvinceNumber() string {
	if len(id) < 2 {
		return ""
	}
	return string(id[:2])
}
