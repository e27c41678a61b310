package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"wtj-scraper/internal/domain"
)

const (
	SheetName = "Companies Info"

	maxColumnChars = 25
	columnPadding  = 1.5
	rowHeight      = 15
)

var Headers = []string{
	"id", "Name", "Location", "Website", "URL", "Sectors",
	"Facebook", "Linkedin", "Twitter", "Youtube",
	"Description", "Presentation", "What They Are Looking For", "Good To Know",
}

// spreadsheetRow flattens c in Headers order. nil marks an empty cell.
func spreadsheetRow(id int, c domain.Company) []any {
	str := func(s *string) any {
		if s == nil {
			return nil
		}
		return *s
	}
	return []any{
		id,
		str(c.Name),
		str(c.Location),
		str(c.Website),
		str(c.URL),
		strings.Join(c.Sectors, ", "),
		str(c.Network("facebook")),
		str(c.Network("linkedin")),
		str(c.Network("twitter")),
		str(c.Network("youtube")),
		str(c.Description),
		str(c.Presentation),
		str(c.WhatTheyAreLookingFor),
		str(c.GoodToKnow),
	}
}

// WriteSpreadsheet writes one styled sheet with a header row and one row
// per company, replacing any existing file.
func WriteSpreadsheet(path string, companies []domain.Company) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFFF00"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return err
	}
	cellStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
	})
	if err != nil {
		return err
	}

	widths := make([]int, len(Headers))
	track := func(col int, v any) {
		if v == nil {
			return
		}
		s := fmt.Sprint(v)
		if s == "" {
			return
		}
		if n := utf8.RuneCountInString(s); n > widths[col] {
			widths[col] = n
		}
	}

	for i, h := range Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(SheetName, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			return err
		}
		track(i, h)
	}

	for i, c := range companies {
		rowNum := i + 2
		for col, v := range spreadsheetRow(i, c) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
			if err != nil {
				return err
			}
			if v != nil {
				if err := f.SetCellValue(SheetName, cell, v); err != nil {
					return err
				}
			}
			if err := f.SetCellStyle(SheetName, cell, cell, cellStyle); err != nil {
				return err
			}
			track(col, v)
		}
	}

	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if w > maxColumnChars {
			w = maxColumnChars
		}
		if err := f.SetColWidth(SheetName, name, name, float64(w)+columnPadding); err != nil {
			return err
		}
	}
	for row := 1; row <= len(companies)+1; row++ {
		if err := f.SetRowHeight(SheetName, row, rowHeight); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export spreadsheet %s: %w", path, err)
	}
	return nil
}
