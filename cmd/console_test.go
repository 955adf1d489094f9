package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quocvan1999/auto-api-pusher/payload"
	"github.com/quocvan1999/auto-api-pusher/types"
)

func init() {
	color.NoColor = true
}

func TestPrintResult(t *testing.T) {
	var out bytes.Buffer

	printResult(&out, types.SendResult{RowIndex: 1, Ok: true, StatusCode: 201, Duration: 1500 * time.Millisecond, ResponsePreview: "{}", Attempts: 1})
	printResult(&out, types.SendResult{RowIndex: 2, Error: "connection refused", Attempts: 1})
	printResult(&out, types.SendResult{RowIndex: 3, StatusCode: 422, ResponsePreview: "bad", Attempts: 1})

	assert.Equal(t,
		"OK   row 1: 201 in 1.5s {}\n"+
			"FAIL row 2: connection refused\n"+
			"FAIL row 3: 422 bad\n",
		out.String())
}

func TestPrintPayload(t *testing.T) {
	var out bytes.Buffer

	err := printPayload(&out, 4, payload.Object{"a": payload.Number(1)})

	require.NoError(t, err)
	assert.Equal(t, "# row 4\n{\n  \"a\": 1\n}\n", out.String())
}

func TestPrintIssues(t *testing.T) {
	var out bytes.Buffer
	issues := map[string]types.Issue{
		"b": {IssueID: "b", IssueType: types.IssueTypeUnknownColumn, MappingIndex: 2, JsonPath: "x", Detail: "column \"X\" is not in the data"},
		"a": {IssueID: "a", IssueType: types.IssueTypeEmptyPath, MappingIndex: 0, Detail: "mapping has no JSON path"},
	}

	printIssues(&out, issues)

	assert.Equal(t,
		"EmptyPath [a] mapping 0 \"\": mapping has no JSON path\n"+
			"UnknownColumn [b] mapping 2 \"x\": column \"X\" is not in the data\n",
		out.String())
	assert.Equal(t, 1, countBlocking(issues))
}

func TestSummarize(t *testing.T) {
	ok, failed, pending := summarize([]types.SendResult{
		{Ok: true, Attempts: 1},
		{Attempts: 2},
		{},
		{Ok: true, Attempts: 1},
	})

	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, pending)
}
