package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"retrato/internal/profile/models"
)

// Sheet names of the workbook.
const (
	SheetProfile   = "Perfil"
	SheetHealth    = "Centros sanitarios"
	SheetEducation = "Centros educativos"
)

var (
	healthHeader    = []string{"Nombre", "Tipo", "Localidad", "Dirección", "Código Postal", "Teléfono", "Distancia (km)"}
	educationHeader = []string{"Nombre", "Tipo", "Titularidad", "Dirección", "Código Postal", "Teléfono", "Distancia (km)"}
)

// WriteXLSX writes a workbook with the profile rows and, when present, one
// sheet per facility list.
func WriteXLSX(w io.Writer, p *models.Profile, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetProfile); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, r.cells())
	}
	if err := writeTable(f, SheetProfile, Header.cells(), table, []float64{24, 36, 48}, headerStyle); err != nil {
		return err
	}

	if p.Health != nil && len(p.Health.Centers) > 0 {
		if _, err := f.NewSheet(SheetHealth); err != nil {
			return fmt.Errorf("create sheet: %w", err)
		}
		table := make([][]string, 0, len(p.Health.Centers))
		for _, c := range p.Health.Centers {
			table = append(table, []string{c.Name, c.FacilityType, c.Locality, c.Address, c.PostalCode, c.Phone, distance(c.DistanceKm)})
		}
		if err := writeTable(f, SheetHealth, healthHeader, table, []float64{36, 24, 20, 36, 14, 14, 14}, headerStyle); err != nil {
			return err
		}
	}

	if p.Education != nil && len(p.Education.Centers) > 0 {
		if _, err := f.NewSheet(SheetEducation); err != nil {
			return fmt.Errorf("create sheet: %w", err)
		}
		table := make([][]string, 0, len(p.Education.Centers))
		for _, c := range p.Education.Centers {
			table = append(table, []string{c.Name, c.Type, c.Ownership, c.Address, c.PostalCode, c.Phone, distance(c.DistanceKm)})
		}
		if err := writeTable(f, SheetEducation, educationHeader, table, []float64{36, 36, 16, 36, 14, 14, 14}, headerStyle); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, header []string, rows [][]string, widths []float64, headerStyle int) error {
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header cell %s: %w", cell, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("header cell: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row cell: %w", err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("set row %d: %w", i+2, err)
		}
	}
	return nil
}

func distance(d *float64) string {
	if d == nil {
		return ""
	}
	return fixed2(*d)
}
