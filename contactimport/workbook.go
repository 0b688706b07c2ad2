package contactimport

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook loads the first sheet of an .xlsx/.xls upload into the row
// shape IngestRows expects.
func ReadWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// ReadCSV loads a .csv upload into rows. Ragged records are allowed; the
// ingestor treats every cell independently.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}

// ReadRows dispatches on the uploaded filename extension.
func ReadRows(r io.Reader, filename string) ([][]string, error) {
	lowered := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lowered, ".csv"):
		return ReadCSV(r)
	case strings.HasSuffix(lowered, ".xlsx"), strings.HasSuffix(lowered, ".xls"):
		return ReadWorkbook(r)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filename)
	}
}

// TemplateWorkbook builds the downloadable import template: two columns
// (Index, Number) with a single example row.
func TemplateWorkbook(plan CountryPlan) (*bytes.Buffer, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := xl.GetSheetName(0)
	if err := xl.SetSheetRow(sheet, "A1", &[]any{"Index", "Number"}); err != nil {
		return nil, fmt.Errorf("failed to write template header: %w", err)
	}
	example := "+" + plan.CallingCode + strings.Repeat("9", plan.NationalLength)
	if err := xl.SetSheetRow(sheet, "A2", &[]any{1, example}); err != nil {
		return nil, fmt.Errorf("failed to write template row: %w", err)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write template workbook: %w", err)
	}
	return buf, nil
}
