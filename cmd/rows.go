package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quocvan1999/auto-api-pusher/session"
)

type rowEdit struct {
	Index  int
	Column string
	Value  string
}

// parseRowSelection reads zero-based row numbers such as "0,3,5-7". An empty
// selection means every row and is returned as nil.
func parseRowSelection(selection string) ([]int, error) {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		return nil, nil
	}

	indexes := []int{}
	seen := map[int]bool{}
	for _, part := range strings.Split(selection, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		first, last := part, part
		if before, after, found := strings.Cut(part, "-"); found {
			first, last = before, after
		}

		start, err := strconv.Atoi(strings.TrimSpace(first))
		if err != nil {
			return nil, fmt.Errorf("invalid row selection %q", part)
		}
		end, err := strconv.Atoi(strings.TrimSpace(last))
		if err != nil {
			return nil, fmt.Errorf("invalid row selection %q", part)
		}
		if start < 0 || end < start {
			return nil, fmt.Errorf("invalid row range %q", part)
		}

		for index := start; index <= end; index++ {
			if !seen[index] {
				seen[index] = true
				indexes = append(indexes, index)
			}
		}
	}
	return indexes, nil
}

// parseRowEdit reads "N:Column=value"; the value may itself contain '=' or ':'.
func parseRowEdit(edit string) (rowEdit, error) {
	rawIndex, assignment, found := strings.Cut(edit, ":")
	if !found {
		return rowEdit{}, fmt.Errorf("invalid row edit %q, expected N:Column=value", edit)
	}
	index, err := strconv.Atoi(strings.TrimSpace(rawIndex))
	if err != nil || index < 0 {
		return rowEdit{}, fmt.Errorf("invalid row number in edit %q", edit)
	}
	column, value, found := strings.Cut(assignment, "=")
	if !found || strings.TrimSpace(column) == "" {
		return rowEdit{}, fmt.Errorf("invalid row edit %q, expected N:Column=value", edit)
	}
	return rowEdit{Index: index, Column: strings.TrimSpace(column), Value: value}, nil
}

func applyRowEdits(store session.IStore, edits []string) error {
	for _, raw := range edits {
		edit, err := parseRowEdit(raw)
		if err != nil {
			return err
		}
		if err := store.EditRow(edit.Index, edit.Column, edit.Value); err != nil {
			return err
		}
		log.Infof("Row %d: %s set to %q", edit.Index, edit.Column, edit.Value)
	}
	return nil
}
