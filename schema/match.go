package schema

import (
	"strings"

	"github.com/quocvan1999/auto-api-pusher/payload"
	"github.com/quocvan1999/auto-api-pusher/types"
)

// MatchHeaders fills CsvHeader for mappings that have none when a table header
// equals the last path segment, ignoring case, spaces, '_' and '-'. It returns
// the number of mappings it matched.
func MatchHeaders(mappings []types.FieldMapping, headers []string) int {
	byKey := make(map[string]string, len(headers))
	for _, header := range headers {
		key := normalizeName(header)
		if _, exists := byKey[key]; !exists {
			byKey[key] = header
		}
	}

	matched := 0
	for i := range mappings {
		if mappings[i].CsvHeader != "" {
			continue
		}
		keys := payload.ParsePath(mappings[i].JsonPath).Keys()
		if len(keys) == 0 {
			continue
		}
		if header, ok := byKey[normalizeName(keys[len(keys)-1])]; ok {
			mappings[i].CsvHeader = header
			matched++
		}
	}
	return matched
}

func normalizeName(name string) string {
	replacer := strings.NewReplacer(" ", "", "_", "", "-", "")
	return strings.ToLower(replacer.Replace(strings.TrimSpace(name)))
}
