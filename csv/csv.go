package csv

import (
	csvwriter "encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/quocvan1999/auto-api-pusher/types"
)

const (
	IssuesFileName  = "issues.csv"
	ResultsFileName = "results.csv"
)

type IIssueCsvClient interface {
	Export(issues map[string]types.Issue) error
}

type IssueCsvClient struct {
	WorkingFolderPath string
	IssueCsv          *IssueCsv
	Logger            *logrus.Logger
}

type IssueCsv struct {
	Header []string
	Rows   []*IssueCsvRow
}

func NewIssueCsvClient(workingFolderPath string, logger *logrus.Logger) *IssueCsvClient {
	return &IssueCsvClient{
		WorkingFolderPath: workingFolderPath,
		IssueCsv:          &IssueCsv{Header: []string{"Issue ID", "Issue Type", "Mapping Index", "JSON Path", "CSV Header", "Detail"}},
		Logger:            logger,
	}
}

func (csv *IssueCsv) AddRow(row *IssueCsvRow) {
	csv.Rows = append(csv.Rows, row)
}

type IssueCsvRow struct {
	IssueID      string
	IssueType    types.IssueType
	MappingIndex int
	JsonPath     string
	CsvHeader    string
	Detail       string
}

func (csvClient *IssueCsvClient) Export(issues map[string]types.Issue) error {
	csvClient.IssueCsv.Rows = nil

	for id, issue := range issues {
		csvClient.IssueCsv.AddRow(&IssueCsvRow{
			IssueID:      id,
			IssueType:    issue.IssueType,
			MappingIndex: issue.MappingIndex,
			JsonPath:     issue.JsonPath,
			CsvHeader:    issue.CsvHeader,
			Detail:       issue.Detail,
		})
	}

	sort.Sort(ByIssueTypeMappingIndexAndDetail(csvClient.IssueCsv.Rows))

	csvData := [][]string{csvClient.IssueCsv.Header}
	for _, issue := range csvClient.IssueCsv.Rows {
		csvData = append(csvData, []string{
			issue.IssueID,
			string(issue.IssueType),
			strconv.Itoa(issue.MappingIndex),
			issue.JsonPath,
			issue.CsvHeader,
			issue.Detail,
		})
	}

	csvFilePath, err := writeCsv(csvClient.WorkingFolderPath, IssuesFileName, csvData)
	if err != nil {
		return err
	}
	csvClient.Logger.Infof("Issues written to %s", csvFilePath)
	return nil
}

type ByIssueTypeMappingIndexAndDetail []*IssueCsvRow

func (o ByIssueTypeMappingIndexAndDetail) Len() int      { return len(o) }
func (o ByIssueTypeMappingIndexAndDetail) Swap(i, j int) { o[i], o[j] = o[j], o[i] }
func (o ByIssueTypeMappingIndexAndDetail) Less(i, j int) bool {
	if o[i].IssueType != o[j].IssueType {
		return o[i].IssueType < o[j].IssueType
	}

	if o[i].MappingIndex != o[j].MappingIndex {
		return o[i].MappingIndex < o[j].MappingIndex
	}

	return o[i].Detail < o[j].Detail
}

type IResultCsvClient interface {
	Export(results []types.SendResult) error
}

type ResultCsvClient struct {
	WorkingFolderPath string
	Logger            *logrus.Logger
}

func NewResultCsvClient(workingFolderPath string, logger *logrus.Logger) *ResultCsvClient {
	return &ResultCsvClient{
		WorkingFolderPath: workingFolderPath,
		Logger:            logger,
	}
}

// Export writes one line per row, ordered by row index.
func (csvClient *ResultCsvClient) Export(results []types.SendResult) error {
	sorted := make([]types.SendResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].RowIndex < sorted[j].RowIndex })

	csvData := [][]string{{"Row", "Status", "OK", "Status Code", "Response Preview", "Error", "Attempts", "Duration"}}
	for _, result := range sorted {
		statusCode := ""
		if result.StatusCode != 0 {
			statusCode = strconv.Itoa(result.StatusCode)
		}
		csvData = append(csvData, []string{
			strconv.Itoa(result.RowIndex),
			string(result.Status()),
			strconv.FormatBool(result.Ok),
			statusCode,
			result.ResponsePreview,
			result.Error,
			strconv.Itoa(result.Attempts),
			result.Duration.String(),
		})
	}

	csvFilePath, err := writeCsv(csvClient.WorkingFolderPath, ResultsFileName, csvData)
	if err != nil {
		return err
	}
	csvClient.Logger.Infof("Results written to %s", csvFilePath)
	return nil
}

func writeCsv(workingFolderPath string, fileName string, csvData [][]string) (string, error) {
	csvFilePath := filepath.Join(workingFolderPath, fileName)
	csvFile, err := os.Create(csvFilePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", csvFilePath, err)
	}
	defer csvFile.Close()

	csvWriter := csvwriter.NewWriter(csvFile)
	if err := csvWriter.WriteAll(csvData); err != nil {
		return "", fmt.Errorf("failed to write CSV file %s: %w", csvFilePath, err)
	}
	return csvFilePath, nil
}
