package types

import (
	"strings"

	"github.com/quocvan1999/auto-api-pusher/payload"
)

const ContentTypeJSON = "application/json"

type RequestTarget struct {
	Method  string            `json:"method" yaml:"method" mapstructure:"method"`
	URL     string            `json:"url" yaml:"url" mapstructure:"url"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty" mapstructure:"headers"`
}

// Header looks a header up case-insensitively.
func (target RequestTarget) Header(name string) (string, bool) {
	for key, value := range target.Headers {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return "", false
}

// HasBody is false for methods that must not carry a request body.
func (target RequestTarget) HasBody() bool {
	switch strings.ToUpper(target.Method) {
	case "GET", "HEAD":
		return false
	default:
		return true
	}
}

// RequestSeed is what a pasted cURL command is reduced to before any mapping exists.
type RequestSeed struct {
	Method       string
	URL          string
	Headers      map[string]string
	BodyTemplate payload.Object
}

func (seed RequestSeed) Target() RequestTarget {
	return RequestTarget{
		Method:  seed.Method,
		URL:     seed.URL,
		Headers: seed.Headers,
	}
}
