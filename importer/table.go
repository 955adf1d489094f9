package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/quocvan1999/auto-api-pusher/types"
)

const xlsxMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	ErrEmptyTable   = errors.New("no header row found")
	ErrSheetMissing = errors.New("sheet not found in workbook")
)

type ITableClient interface {
	Import(filePath string) (*types.Table, error)
	ImportText(text string) (*types.Table, error)
}

type TableClient struct {
	Sheet  string
	Logger *logrus.Logger
}

func NewTableClient(sheet string, logger *logrus.Logger) *TableClient {
	return &TableClient{
		Sheet:  sheet,
		Logger: logger,
	}
}

// Import reads a spreadsheet or delimited text file. The content decides the
// format; the extension is only used when detection is inconclusive.
func (tableClient *TableClient) Import(filePath string) (*types.Table, error) {
	mimeType, err := mimetype.DetectFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	if mimeType.Is(xlsxMimeType) || (mimeType.Is("application/zip") && strings.EqualFold(filepath.Ext(filePath), ".xlsx")) {
		tableClient.Logger.Debugf("Reading %s as a workbook", filePath)
		return tableClient.importWorkbook(filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer file.Close()

	decoded := transform.NewReader(file, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	content, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filePath, err)
	}

	tableClient.Logger.Debugf("Reading %s as delimited text (%s)", filePath, mimeType.String())
	return tableClient.ImportText(string(content))
}

// ImportText parses pasted tab- or comma-separated text with a header line.
func (tableClient *TableClient) ImportText(text string) (*types.Table, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	delimiter := DetectDelimiter(text)

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = delimiter != '\t'

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse delimited text: %w", err)
	}

	table, err := buildTable(records)
	if err != nil {
		return nil, err
	}
	tableClient.Logger.Infof("Imported %d rows with %d columns", len(table.Rows), len(table.Headers))
	return table, nil
}

func (tableClient *TableClient) importWorkbook(filePath string) (*types.Table, error) {
	workbook, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", filePath, err)
	}
	defer workbook.Close()

	sheet := tableClient.Sheet
	if sheet == "" {
		sheet = workbook.GetSheetName(workbook.GetActiveSheetIndex())
	} else if index, err := workbook.GetSheetIndex(sheet); err != nil || index < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSheetMissing, sheet)
	}

	records, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	table, err := buildTable(records)
	if err != nil {
		return nil, err
	}
	tableClient.Logger.Infof("Imported %d rows with %d columns from sheet %s", len(table.Rows), len(table.Headers), sheet)
	return table, nil
}

// DetectDelimiter picks tab when the header line contains one, comma otherwise.
func DetectDelimiter(text string) rune {
	firstLine, _, _ := strings.Cut(text, "\n")
	if strings.Contains(firstLine, "\t") {
		return '\t'
	}
	return ','
}

func buildTable(records [][]string) (*types.Table, error) {
	records = dropBlankRecords(records)
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	headers := uniqueHeaders(records[0])
	table := &types.Table{Headers: headers, Rows: []types.Row{}}

	for _, record := range records[1:] {
		row := make(types.Row, len(headers))
		for index, header := range headers {
			value := ""
			if index < len(record) {
				value = stripQuotes(record[index])
			}
			row[header] = value
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func dropBlankRecords(records [][]string) [][]string {
	kept := make([][]string, 0, len(records))
	for _, record := range records {
		for _, field := range record {
			if strings.TrimSpace(field) != "" {
				kept = append(kept, record)
				break
			}
		}
	}
	return kept
}

// uniqueHeaders names blank headers by position and suffixes repeated ones.
func uniqueHeaders(record []string) []string {
	headers := make([]string, 0, len(record))
	seen := map[string]int{}
	for index, field := range record {
		header := stripQuotes(field)
		if header == "" {
			header = fmt.Sprintf("Column %d", index+1)
		}
		seen[header]++
		if seen[header] > 1 {
			header = fmt.Sprintf("%s_%d", header, seen[header])
		}
		headers = append(headers, header)
	}
	return headers
}

// stripQuotes trims whitespace and one pair of surrounding quotes that survived
// lazy CSV parsing, as happens with quoted cells in tab-separated pastes.
func stripQuotes(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return value
}
