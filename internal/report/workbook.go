package report

import (
	"github.com/xuri/excelize/v2"

	"github.com/agentstation/tallysheet/pkg/constants"
	"github.com/agentstation/tallysheet/pkg/records"
)

// Build creates the report workbook in memory.
func Build(matches []records.MatchRecord, ratings []records.EstimatedRatingRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", constants.MatchResultsSheet); err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(constants.EstimatedRatingsSheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
	})
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	matchRows := make([][]string, 0, len(matches))
	for _, m := range matches {
		matchRows = append(matchRows, m.Cells())
	}
	if err := writeSheet(f, constants.MatchResultsSheet, constants.MatchResultsHeader, matchRows, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}

	ratingRows := make([][]string, 0, len(ratings))
	for _, r := range ratings {
		ratingRows = append(ratingRows, r.Cells())
	}
	if err := writeSheet(f, constants.EstimatedRatingsSheet, constants.EstimatedRatingsHeader, ratingRows, headerStyle); err != nil {
		_ = f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// writeSheet writes a header and rows of string cells, then styles the
// header and sizes the columns.
func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string, headerStyle int) error {
	hdr := append([]string{}, header...)
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return err
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
		for j, v := range row {
			if j < len(widths) && len(v) > widths[j] {
				widths[j] = len(v)
			}
		}
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(min(w+2, 60))); err != nil {
			return err
		}
	}
	return nil
}
