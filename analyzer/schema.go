package analyzer

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/quocvan1999/auto-api-pusher/csv"
	"github.com/quocvan1999/auto-api-pusher/json"
	"github.com/quocvan1999/auto-api-pusher/payload"
	"github.com/quocvan1999/auto-api-pusher/types"
)

type ISchemaClient interface {
	Analyze(mappings []types.FieldMapping, headers []string) map[string]types.Issue
	Report(mappings []types.FieldMapping, headers []string) (map[string]types.Issue, error)
}

type SchemaClient struct {
	JsonClient     json.IJsonClient
	IssueCsvClient csv.IIssueCsvClient
	Logger         *logrus.Logger
}

func NewSchemaClient(jsonClient json.IJsonClient, issueCsvClient csv.IIssueCsvClient, logger *logrus.Logger) *SchemaClient {
	return &SchemaClient{
		JsonClient:     jsonClient,
		IssueCsvClient: issueCsvClient,
		Logger:         logger,
	}
}

// Report analyzes the mappings and writes issues.json. issues.csv is written
// when anything was found and removed otherwise.
func (schemaClient *SchemaClient) Report(mappings []types.FieldMapping, headers []string) (map[string]types.Issue, error) {
	issues := schemaClient.Analyze(mappings, headers)

	if err := schemaClient.JsonClient.Export(issues, "issues.json"); err != nil {
		return issues, err
	}

	if len(issues) > 0 {
		schemaClient.Logger.Warnf("Found %d issues in the field mappings", len(issues))
		if err := schemaClient.IssueCsvClient.Export(issues); err != nil {
			return issues, err
		}
	} else {
		schemaClient.Logger.Info("No issues found in the field mappings")
		schemaClient.JsonClient.CleanFiles([]string{csv.IssuesFileName})
	}
	return issues, nil
}

// Analyze never rejects a schema. A nil headers slice skips the column checks.
func (schemaClient *SchemaClient) Analyze(mappings []types.FieldMapping, headers []string) map[string]types.Issue {
	issues := map[string]types.Issue{}

	knownHeaders := map[string]bool{}
	for _, header := range headers {
		knownHeaders[header] = true
	}

	for index, mapping := range mappings {
		if strings.TrimSpace(mapping.JsonPath) == "" {
			schemaClient.Logger.Warnf("Mapping %d has no JSON path and will be skipped", index)
			addIssue(issues, issueFromMapping(index, mapping, "mapping has no JSON path"), types.IssueTypeEmptyPath)
		}

		if !mapping.DataType.IsValidDataType() {
			schemaClient.Logger.Warnf("Mapping %d (%s) has an unknown data type %q", index, mapping.JsonPath, mapping.DataType)
			addIssue(issues, issueFromMapping(index, mapping, fmt.Sprintf("unknown data type %q", mapping.DataType)), types.IssueTypeInvalidDataType)
		}

		for _, field := range mapping.InternalFields {
			if field.DataType != "" && !field.DataType.IsValidDataType() {
				detail := fmt.Sprintf("internal field %q has unknown data type %q", field.Key, field.DataType)
				addIssue(issues, issueFromMapping(index, mapping, detail), types.IssueTypeInvalidDataType)
			}
		}

		if mapping.CsvHeader == "" && mapping.DefaultValue == "" {
			schemaClient.Logger.Debugf("Mapping %d (%s) has neither a column nor a default value", index, mapping.JsonPath)
			addIssue(issues, issueFromMapping(index, mapping, "no column and no default value, field is never written"), types.IssueTypeMissingSource)
		}

		if mapping.CsvHeader != "" && headers != nil && !knownHeaders[mapping.CsvHeader] {
			detail := fmt.Sprintf("column %q is not in the data", mapping.CsvHeader)
			if mapping.DefaultValue != "" {
				detail += ", default value is used"
			}
			addIssue(issues, issueFromMapping(index, mapping, detail), types.IssueTypeUnknownColumn)
		}

		if len(mapping.InternalFields) > 0 {
			if mapping.DataType != types.DataTypeArrayObject {
				addIssue(issues, issueFromMapping(index, mapping, fmt.Sprintf("internal fields are only used by %s mappings", types.DataTypeArrayObject)), types.IssueTypeInternalFieldsIgnored)
			} else if mapping.CsvHeader == "" {
				addIssue(issues, issueFromMapping(index, mapping, "internal fields are only used when the value comes from a column"), types.IssueTypeInternalFieldsIgnored)
			}
		}
	}

	for _, issue := range findPathCollisions(mappings) {
		schemaClient.Logger.Warnf("Mapping %d (%s): %s", issue.MappingIndex, issue.JsonPath, issue.Detail)
		addIssue(issues, issue, types.IssueTypePathCollision)
	}

	return issues
}

// findPathCollisions reports the later mapping of every pair whose writes overlap.
// A deeper path written after an object-typed mapping merges into it and is not a collision.
func findPathCollisions(mappings []types.FieldMapping) []types.Issue {
	collisions := []types.Issue{}
	paths := make([][]string, len(mappings))
	for index, mapping := range mappings {
		paths[index] = payload.ParsePath(strings.TrimSpace(mapping.JsonPath)).Keys()
	}

	for later := range mappings {
		if len(paths[later]) == 0 {
			continue
		}
		for earlier := 0; earlier < later; earlier++ {
			if len(paths[earlier]) == 0 {
				continue
			}

			shorter, longer := earlier, later
			if len(paths[later]) < len(paths[earlier]) {
				shorter, longer = later, earlier
			}
			if !isPrefix(paths[shorter], paths[longer]) {
				continue
			}

			if len(paths[shorter]) != len(paths[longer]) && shorter == earlier {
				dataType := mappings[shorter].DataType
				if dataType == types.DataTypeObject || dataType == types.DataTypeArrayObject {
					continue
				}
			}

			detail := fmt.Sprintf("overlaps mapping %d (%s), the later mapping wins", earlier, mappings[earlier].JsonPath)
			collisions = append(collisions, issueFromMapping(later, mappings[later], detail))
		}
	}
	return collisions
}

func isPrefix(prefix []string, keys []string) bool {
	if len(prefix) > len(keys) {
		return false
	}
	for index := range prefix {
		if prefix[index] != keys[index] {
			return false
		}
	}
	return true
}

func addIssue(issues map[string]types.Issue, issue types.Issue, issueType types.IssueType) {
	issue.IssueType = issueType
	issue.IssueID = getIdentityHash(fmt.Sprintf("%s|%d|%s|%s", issueType, issue.MappingIndex, issue.JsonPath, issue.Detail))
	issues[issue.IssueID] = issue
}

func issueFromMapping(index int, mapping types.FieldMapping, detail string) types.Issue {
	return types.Issue{
		MappingIndex: index,
		JsonPath:     mapping.JsonPath,
		CsvHeader:    mapping.CsvHeader,
		Detail:       detail,
	}
}

func getIdentityHash(id string) string {
	sha256ID := sha256.Sum256([]byte(id))
	return fmt.Sprintf("%x", sha256ID)[0:7]
}
