package cmd

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/quocvan1999/auto-api-pusher/payload"
	"github.com/quocvan1999/auto-api-pusher/types"
)

var (
	okLabel      = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel    = color.New(color.FgRed, color.Bold).SprintFunc()
	warnLabel    = color.New(color.FgYellow, color.Bold).SprintFunc()
	headingLabel = color.New(color.FgCyan, color.Bold).SprintFunc()
	faint        = color.New(color.Faint).SprintFunc()
)

func printResult(out io.Writer, result types.SendResult) {
	if result.Ok {
		fmt.Fprintf(out, "%s row %d: %d in %s %s\n", okLabel("OK  "), result.RowIndex, result.StatusCode, result.Duration.Round(time.Millisecond), faint(result.ResponsePreview))
		return
	}
	if result.Error != "" {
		fmt.Fprintf(out, "%s row %d: %s\n", failLabel("FAIL"), result.RowIndex, result.Error)
		return
	}
	fmt.Fprintf(out, "%s row %d: %d %s\n", failLabel("FAIL"), result.RowIndex, result.StatusCode, result.ResponsePreview)
}

func printPayload(out io.Writer, index int, body payload.Object) error {
	data, err := payload.MarshalIndent(body)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n%s\n", headingLabel(fmt.Sprintf("# row %d", index)), data)
	return nil
}

func printIssues(out io.Writer, issues map[string]types.Issue) {
	sorted := make([]types.Issue, 0, len(issues))
	for _, issue := range issues {
		sorted = append(sorted, issue)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].MappingIndex != sorted[j].MappingIndex {
			return sorted[i].MappingIndex < sorted[j].MappingIndex
		}
		return sorted[i].IssueType < sorted[j].IssueType
	})

	for _, issue := range sorted {
		label := warnLabel(string(issue.IssueType))
		if issue.IssueType.IsBlocking() {
			label = failLabel(string(issue.IssueType))
		}
		fmt.Fprintf(out, "%s [%s] mapping %d %q: %s\n", label, issue.IssueID, issue.MappingIndex, issue.JsonPath, issue.Detail)
	}
}

func countBlocking(issues map[string]types.Issue) int {
	blocking := 0
	for _, issue := range issues {
		if issue.IssueType.IsBlocking() {
			blocking++
		}
	}
	return blocking
}

func summarize(results []types.SendResult) (ok int, failed int, pending int) {
	for _, result := range results {
		switch result.Status() {
		case types.SendStatusOk:
			ok++
		case types.SendStatusFailed:
			failed++
		default:
			pending++
		}
	}
	return ok, failed, pending
}
