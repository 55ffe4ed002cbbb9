// Styled report output. Column layouts, fills and widths follow the bulk
// import templates the downstream ERP expects (doubled header rows, frozen
// panes, fixed widths).
package fileio

import (
	"fmt"

	excelize "github.com/xuri/excelize/v2"

	"catalog-recon/internal/catalog/model"
)

func headerStyle(f *excelize.File, fill string, size float64) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF", Size: size},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

func alignStyle(f *excelize.File, horizontal string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: horizontal, Vertical: "center"},
	})
}

func freezeBelow(f *excelize.File, sheet string, headerRows int) error {
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRows,
		TopLeftCell: fmt.Sprintf("A%d", headerRows+1),
		ActivePane:  "bottomLeft",
	})
}

// WriteMatchedWorkbook writes the per-vendor price update file:
// ItemCode | U_VendorCost, header doubled for the bulk importer.
func WriteMatchedWorkbook(path, vendor string, rows []model.PriceMatch) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := vendor + "_Updated"
	f.SetSheetName("Sheet1", sheet)

	header := []interface{}{"ItemCode", "U_VendorCost"}
	_ = f.SetSheetRow(sheet, "A1", &header)
	_ = f.SetSheetRow(sheet, "A2", &header)

	hdr, err := headerStyle(f, "366092", 11)
	if err != nil {
		return err
	}
	_ = f.SetCellStyle(sheet, "A1", "B2", hdr)

	numFmt := "0.00"
	price, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt,
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	left, err := alignStyle(f, "left")
	if err != nil {
		return err
	}

	for i, r := range rows {
		n := i + 3
		_ = f.SetCellStr(sheet, fmt.Sprintf("A%d", n), r.ItemCode)
		_ = f.SetCellFloat(sheet, fmt.Sprintf("B%d", n), r.Price, 2, 64)
	}
	if len(rows) > 0 {
		_ = f.SetCellStyle(sheet, "A3", fmt.Sprintf("A%d", len(rows)+2), left)
		_ = f.SetCellStyle(sheet, "B3", fmt.Sprintf("B%d", len(rows)+2), price)
	}

	_ = f.SetColWidth(sheet, "A", "A", 30)
	_ = f.SetColWidth(sheet, "B", "B", 18)
	if err := freezeBelow(f, sheet, 2); err != nil {
		return err
	}

	return f.SaveAs(path)
}

// WriteDeactivationWorkbook writes the bulk deactivation file:
// ItemCode | frozenFor | validFor with constant Y/N flags.
func WriteDeactivationWorkbook(path string, codes []string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Deactivate"
	f.SetSheetName("Sheet1", sheet)

	header := []interface{}{"ItemCode", "frozenFor", "validFor"}
	_ = f.SetSheetRow(sheet, "A1", &header)
	_ = f.SetSheetRow(sheet, "A2", &header)

	hdr, err := headerStyle(f, "C00000", 11)
	if err != nil {
		return err
	}
	_ = f.SetCellStyle(sheet, "A1", "C2", hdr)

	center, err := alignStyle(f, "center")
	if err != nil {
		return err
	}

	for i, code := range codes {
		row := []interface{}{code, "Y", "N"}
		_ = f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+3), &row)
	}
	if len(codes) > 0 {
		_ = f.SetCellStyle(sheet, "A3", fmt.Sprintf("C%d", len(codes)+2), center)
	}

	_ = f.SetColWidth(sheet, "A", "A", 35)
	_ = f.SetColWidth(sheet, "B", "C", 15)
	if err := freezeBelow(f, sheet, 2); err != nil {
		return err
	}

	return f.SaveAs(path)
}

// WritePriceSummary writes the run report: a per-vendor summary sheet plus a
// detail sheet of removed SKUs grouped by vendor.
func WritePriceSummary(path string, results []model.VendorPriceSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Processing Summary"
	f.SetSheetName("Sheet1", summary)

	headers := []interface{}{"Vendor", "Total SKUs", "Matched SKUs", "Match Rate %", "Size Mapped", "Removed", "Output File"}
	_ = f.SetSheetRow(summary, "A1", &headers)

	hdr, err := headerStyle(f, "4472C4", 12)
	if err != nil {
		return err
	}
	_ = f.SetCellStyle(summary, "A1", "G1", hdr)

	totalSKUs, totalMatched := 0, 0
	row := 2
	for _, r := range results {
		sizeMapped := interface{}("")
		if r.SizeMapped > 0 {
			sizeMapped = r.SizeMapped
		}
		vals := []interface{}{
			r.Vendor, r.TotalSKUs, r.MatchedSKUs,
			fmt.Sprintf("%.1f%%", r.MatchRate),
			sizeMapped, r.RemovedSKUs, r.OutputFile,
		}
		_ = f.SetSheetRow(summary, fmt.Sprintf("A%d", row), &vals)
		totalSKUs += r.TotalSKUs
		totalMatched += r.MatchedSKUs
		row++
	}

	row++ // blank row before totals
	rate := "0%"
	if totalSKUs > 0 {
		rate = fmt.Sprintf("%.1f%%", float64(totalMatched)/float64(totalSKUs)*100)
	}
	totals := []interface{}{"TOTAL", totalSKUs, totalMatched, rate, "", totalSKUs - totalMatched, ""}
	_ = f.SetSheetRow(summary, fmt.Sprintf("A%d", row), &totals)

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E7E6E6"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	_ = f.SetCellStyle(summary, fmt.Sprintf("A%d", row), fmt.Sprintf("G%d", row), totalStyle)

	for col, w := range map[string]float64{"A": 15, "B": 15, "C": 15, "D": 15, "E": 15, "F": 15, "G": 35} {
		_ = f.SetColWidth(summary, col, col, w)
	}
	if err := freezeBelow(f, summary, 1); err != nil {
		return err
	}

	// detail sheet: removed SKUs per vendor
	const removed = "Removed SKUs"
	if _, err := f.NewSheet(removed); err != nil {
		return err
	}

	removedHeaders := []interface{}{"Vendor", "Item No.", "Reason"}
	_ = f.SetSheetRow(removed, "A1", &removedHeaders)
	redHdr, err := headerStyle(f, "C00000", 12)
	if err != nil {
		return err
	}
	_ = f.SetCellStyle(removed, "A1", "C1", redHdr)

	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC000"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	row = 2
	for _, r := range results {
		if len(r.RemovedItems) == 0 {
			continue
		}
		// vendor section header across all three columns
		_ = f.SetCellStr(removed, fmt.Sprintf("A%d", row), r.Vendor)
		_ = f.MergeCell(removed, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row))
		_ = f.SetCellStyle(removed, fmt.Sprintf("A%d", row), fmt.Sprintf("C%d", row), sectionStyle)
		row++

		for _, item := range r.RemovedItems {
			vals := []interface{}{r.Vendor, item.ItemCode, item.Reason}
			_ = f.SetSheetRow(removed, fmt.Sprintf("A%d", row), &vals)
			row++
		}
		row++ // blank row between vendors
	}

	_ = f.SetColWidth(removed, "A", "A", 15)
	_ = f.SetColWidth(removed, "B", "B", 35)
	_ = f.SetColWidth(removed, "C", "C", 30)
	if err := freezeBelow(f, removed, 1); err != nil {
		return err
	}

	return f.SaveAs(path)
}

// WriteDeactivationSummary writes the deactivation run report.
func WriteDeactivationSummary(path string, results []model.VendorDeactivationSummary) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Deactivation Summary"
	f.SetSheetName("Sheet1", sheet)

	headers := []interface{}{"Vendor", "Total OITM Items", "Discontinued in DTW", "Items to Deactivate", "Output File"}
	_ = f.SetSheetRow(sheet, "A1", &headers)

	hdr, err := headerStyle(f, "4472C4", 12)
	if err != nil {
		return err
	}
	_ = f.SetCellStyle(sheet, "A1", "E1", hdr)

	totalInternal, totalDiscontinued, totalDeactivate := 0, 0, 0
	row := 2
	for _, r := range results {
		out := r.OutputFile
		if out == "" {
			out = "No items to deactivate"
		}
		vals := []interface{}{r.Vendor, r.TotalInternal, r.Discontinued, r.ToDeactivate, out}
		_ = f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &vals)
		totalInternal += r.TotalInternal
		totalDiscontinued += r.Discontinued
		totalDeactivate += r.ToDeactivate
		row++
	}

	row++
	totals := []interface{}{"TOTAL", totalInternal, totalDiscontinued, totalDeactivate, ""}
	_ = f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &totals)

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E7E6E6"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), totalStyle)

	for col, w := range map[string]float64{"A": 15, "B": 20, "C": 25, "D": 25, "E": 40} {
		_ = f.SetColWidth(sheet, col, col, w)
	}
	if err := freezeBelow(f, sheet, 1); err != nil {
		return err
	}

	return f.SaveAs(path)
}
