package sink

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"qramverify/domain/experiment"
	"qramverify/internal/analysis"
)

// writeXLSX writes the result table workbook: a Frequencies sheet with the
// three tabular columns and a Summary sheet with the per-basis-state
// divergence statistics.
func writeXLSX(path string, table *experiment.ResultTable) error {
	f := excelize.NewFile()

	sheet := "Frequencies"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	headers := []string{"basis_state", "original", "modified"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, rec := range table.Records {
		orig, err := marshalFrequencies(rec.Original)
		if err != nil {
			return err
		}
		mod, err := marshalFrequencies(rec.Modified)
		if err != nil {
			return err
		}
		for c, v := range []string{rec.BasisState.String(), orig, mod} {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := writeSummarySheet(f, table); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeSummarySheet(f *excelize.File, table *experiment.ResultTable) error {
	sheet := "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	divergences, summary := analysis.Summarize(table)

	headers := []string{"basis_state", "total_variation", "chi_square", "p_value", "distinguishable"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, d := range divergences {
		values := []interface{}{
			table.Records[r].BasisState.String(),
			d.TotalVariation,
			d.ChiSquare,
			d.PValue,
			d.Distinguishable,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	footer := len(divergences) + 3
	lines := []struct {
		label string
		value interface{}
	}{
		{"mean_tv", summary.MeanTV},
		{"max_tv", summary.MaxTV},
		{"stddev_tv", summary.StdDevTV},
		{"distinguishable_states", fmt.Sprintf("%d/%d", summary.Distinguishable, summary.BasisStates)},
	}
	for i, line := range lines {
		labelCell, _ := excelize.CoordinatesToCellName(1, footer+i)
		valueCell, _ := excelize.CoordinatesToCellName(2, footer+i)
		if err := f.SetCellValue(sheet, labelCell, line.label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, valueCell, line.value); err != nil {
			return err
		}
	}
	return nil
}
