// Package curl reduces a pasted cURL command to a request seed: method, URL,
// headers and the JSON body used as a template for field mappings.
package curl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/mattn/go-shellwords"

	"github.com/quocvan1999/auto-api-pusher/payload"
	"github.com/quocvan1999/auto-api-pusher/types"
)

var (
	ErrNotCurl      = errors.New("command does not start with curl")
	ErrMissingURL   = errors.New("no URL found in curl command")
	ErrMissingValue = errors.New("flag is missing its value")
)

// flags whose value is consumed and ignored
var ignoredValueFlags = map[string]bool{
	"-o":                true,
	"--output":          true,
	"-m":                true,
	"--max-time":        true,
	"--connect-timeout": true,
	"-A":                true,
	"--user-agent":      true,
	"-e":                true,
	"--referer":         true,
	"-b":                true,
	"--cookie":          true,
	"-x":                true,
	"--proxy":           true,
	"-w":                true,
	"--write-out":       true,
	"--retry":           true,
}

var dataFlags = map[string]bool{
	"-d":            true,
	"--data":        true,
	"--data-raw":    true,
	"--data-binary": true,
	"--data-ascii":  true,
	"--json":        true,
}

// ParseCommand tokenizes command like a POSIX shell and interprets the subset
// of curl options that matter for replaying the request.
func ParseCommand(command string) (*types.RequestSeed, error) {
	normalized := strings.NewReplacer("\\\r\n", " ", "\\\n", " ").Replace(strings.TrimSpace(command))

	parser := shellwords.NewParser()
	parser.ParseEnv = false
	parser.ParseBacktick = false
	args, err := parser.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("tokenizing curl command: %w", err)
	}
	if len(args) == 0 || args[0] != "curl" {
		return nil, ErrNotCurl
	}

	seed := &types.RequestSeed{Headers: map[string]string{}}
	bodyParts := []string{}
	isJsonFlag := false

	for i := 1; i < len(args); i++ {
		arg := args[i]
		name, inlineValue, hasInline := splitLongFlag(arg)

		next := func() (string, error) {
			if hasInline {
				return inlineValue, nil
			}
			if i+1 >= len(args) {
				return "", fmt.Errorf("%w: %s", ErrMissingValue, name)
			}
			i++
			return args[i], nil
		}

		switch {
		case name == "-X" || name == "--request":
			value, err := next()
			if err != nil {
				return nil, err
			}
			seed.Method = strings.ToUpper(value)
		case strings.HasPrefix(arg, "-X") && len(arg) > 2:
			seed.Method = strings.ToUpper(arg[2:])
		case name == "-H" || name == "--header":
			value, err := next()
			if err != nil {
				return nil, err
			}
			addHeader(seed.Headers, value)
		case dataFlags[name]:
			value, err := next()
			if err != nil {
				return nil, err
			}
			if name == "--json" {
				isJsonFlag = true
			}
			bodyParts = append(bodyParts, value)
		case name == "-u" || name == "--user":
			value, err := next()
			if err != nil {
				return nil, err
			}
			seed.Headers["Authorization"] = "Basic " + base64.StdEncoding.EncodeToString([]byte(value))
		case name == "--url":
			value, err := next()
			if err != nil {
				return nil, err
			}
			seed.URL = value
		case ignoredValueFlags[name]:
			if _, err := next(); err != nil {
				return nil, err
			}
		case strings.HasPrefix(arg, "-"):
			// boolean switches such as --compressed, -s, -k, -L
		default:
			if seed.URL == "" {
				seed.URL = arg
			}
		}
	}

	if seed.URL == "" {
		return nil, ErrMissingURL
	}
	if _, err := url.ParseRequestURI(seed.URL); err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", seed.URL, err)
	}

	if isJsonFlag {
		if _, ok := headerValue(seed.Headers, "Content-Type"); !ok {
			seed.Headers["Content-Type"] = types.ContentTypeJSON
		}
		if _, ok := headerValue(seed.Headers, "Accept"); !ok {
			seed.Headers["Accept"] = types.ContentTypeJSON
		}
	}

	if seed.Method == "" {
		seed.Method = "GET"
		if len(bodyParts) > 0 {
			seed.Method = "POST"
		}
	}

	seed.BodyTemplate = ParseBodyTemplate(strings.Join(bodyParts, "&"))
	return seed, nil
}

// ParseBodyTemplate decodes a JSON object body, repairing common damage such
// as single quotes or trailing commas. Anything that is not an object yields
// an empty template.
func ParseBodyTemplate(body string) payload.Object {
	body = strings.TrimSpace(body)
	if body == "" {
		return payload.Object{}
	}

	value, err := payload.Parse([]byte(body))
	if err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(body)
		if repairErr != nil {
			return payload.Object{}
		}
		value, err = payload.Parse([]byte(repaired))
		if err != nil {
			return payload.Object{}
		}
	}

	object, ok := value.(payload.Object)
	if !ok {
		return payload.Object{}
	}
	return object
}

func splitLongFlag(arg string) (name string, value string, hasValue bool) {
	if strings.HasPrefix(arg, "--") {
		if before, after, found := strings.Cut(arg, "="); found {
			return before, after, true
		}
	}
	return arg, "", false
}

func addHeader(headers map[string]string, raw string) {
	name, value, found := strings.Cut(raw, ":")
	if !found {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	headers[name] = strings.TrimSpace(value)
}

func headerValue(headers map[string]string, name string) (string, bool) {
	for key, value := range headers {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return "", false
}
