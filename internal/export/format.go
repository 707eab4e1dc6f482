package export

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"retrato/internal/profile/models"
	dErrors "retrato/pkg/domain-errors"
	pstrings "retrato/pkg/platform/strings"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" (also the default for "") and "xlsx".
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "Formato de exportación no válido").
		WithFields(dErrors.FieldError{Field: "format", Message: "debe ser csv o xlsx"})
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// FileName is the attachment name for p, e.g. "Adanero_datos.csv".
func FileName(p *models.Profile, f Format) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			return r
		case unicode.IsSpace(r):
			return '_'
		}
		return -1
	}, pstrings.StripDiacritics(strings.TrimSpace(p.Municipality.Name)))
	if name == "" {
		name = p.Municipality.ID
	}
	return fmt.Sprintf("%s_datos.%s", name, f)
}

// Write renders p in format f.
func Write(w io.Writer, p *models.Profile, f Format, exportedAt time.Time) error {
	rows := Rows(p, exportedAt)
	if f == FormatXLSX {
		return WriteXLSX(w, p, rows)
	}
	return WriteCSV(w, rows)
}
