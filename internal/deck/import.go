package deck

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportFile reads word/translation pairs from a CSV or Excel file. The
// first two columns are word and translation; a first row that doesn't look
// like data is taken as the header. sheet selects the Excel worksheet and is
// ignored for CSV.
func ImportFile(path, sheet string) ([2]string, []Entry, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return importCSV(path)
	}
	return importExcel(path, sheet)
}

func importCSV(path string) ([2]string, []Entry, error) {
	header, entries, err := readFile(path)
	if err != nil {
		return [2]string{}, nil, err
	}
	return header, entries, nil
}

func importExcel(path, sheet string) ([2]string, []Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return [2]string{}, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return [2]string{}, nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	header := DefaultHeader
	var entries []Entry
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		source := strings.TrimSpace(row[0])
		target := strings.TrimSpace(row[1])
		if source == "" || target == "" {
			continue
		}
		if i == 0 && looksLikeHeader(rows) {
			header = [2]string{source, target}
			continue
		}
		entries = append(entries, Entry{Source: source, Target: target})
	}
	return header, entries, nil
}

// looksLikeHeader treats the first row as a label row unless it is the only
// row in the sheet.
func looksLikeHeader(rows [][]string) bool {
	return len(rows) > 1
}
