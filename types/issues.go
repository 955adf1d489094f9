package types

type Issue struct {
	IssueID      string
	IssueType    IssueType
	MappingIndex int
	JsonPath     string
	CsvHeader    string
	Detail       string
}

type IssueType string

const (
	IssueTypeNone                  IssueType = "None"
	IssueTypeMissingSource         IssueType = "MissingSource"
	IssueTypeUnknownColumn         IssueType = "UnknownColumn"
	IssueTypePathCollision         IssueType = "PathCollision"
	IssueTypeInvalidDataType       IssueType = "InvalidDataType"
	IssueTypeInternalFieldsIgnored IssueType = "InternalFieldsIgnored"
	IssueTypeEmptyPath             IssueType = "EmptyPath"
)

func (issueType IssueType) IsValidIssueType() bool {
	switch issueType {
	case IssueTypeNone,
		IssueTypeMissingSource,
		IssueTypeUnknownColumn,
		IssueTypePathCollision,
		IssueTypeInvalidDataType,
		IssueTypeInternalFieldsIgnored,
		IssueTypeEmptyPath:
		return true
	default:
		return false
	}
}

// IsBlocking reports whether the issue makes a send pointless rather than merely suspicious.
func (issueType IssueType) IsBlocking() bool {
	switch issueType {
	case IssueTypeInvalidDataType, IssueTypeEmptyPath:
		return true
	default:
		return false
	}
}
