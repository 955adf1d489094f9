package types

// Row is one flat record of imported tabular data, keyed by column header.
type Row map[string]string

type Table struct {
	Headers []string
	Rows    []Row
}

func (row Row) Clone() Row {
	clone := make(Row, len(row))
	for key, value := range row {
		clone[key] = value
	}
	return clone
}
