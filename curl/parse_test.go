package curl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quocvan1999/auto-api-pusher/payload"
)

func TestParseCommand_PostWithJsonBody(t *testing.T) {
	command := `curl -X POST 'https://api.example.com/v1/orders' \
  -H 'Content-Type: application/json' \
  -H "Authorization: Bearer abc" \
  --data-raw '{"customer":{"name":"Ann","age":30},"tags":["a","b"]}'`

	seed, err := ParseCommand(command)
	require.NoError(t, err)

	assert.Equal(t, "POST", seed.Method)
	assert.Equal(t, "https://api.example.com/v1/orders", seed.URL)
	assert.Equal(t, "application/json", seed.Headers["Content-Type"])
	assert.Equal(t, "Bearer abc", seed.Headers["Authorization"])
	assert.Equal(t, payload.Object{
		"customer": payload.Object{"name": payload.String("Ann"), "age": payload.Number(30)},
		"tags":     payload.List{payload.String("a"), payload.String("b")},
	}, seed.BodyTemplate)
}

func TestParseCommand_DefaultsMethod(t *testing.T) {
	seed, err := ParseCommand(`curl https://api.example.com/items`)
	require.NoError(t, err)
	assert.Equal(t, "GET", seed.Method)
	assert.Equal(t, payload.Object{}, seed.BodyTemplate)

	seed, err = ParseCommand(`curl https://api.example.com/items -d '{"a":1}'`)
	require.NoError(t, err)
	assert.Equal(t, "POST", seed.Method)
}

func TestParseCommand_LongFlagsWithEquals(t *testing.T) {
	seed, err := ParseCommand(`curl --request=put --url=https://api.example.com/x --header='X-Key: 1' --compressed -s -k`)
	require.NoError(t, err)
	assert.Equal(t, "PUT", seed.Method)
	assert.Equal(t, "https://api.example.com/x", seed.URL)
	assert.Equal(t, "1", seed.Headers["X-Key"])
}

func TestParseCommand_JsonFlagAddsHeaders(t *testing.T) {
	seed, err := ParseCommand(`curl --json '{"a":true}' https://api.example.com/x`)
	require.NoError(t, err)
	assert.Equal(t, "POST", seed.Method)
	assert.Equal(t, "application/json", seed.Headers["Content-Type"])
	assert.Equal(t, "application/json", seed.Headers["Accept"])
	assert.Equal(t, payload.Object{"a": payload.Bool(true)}, seed.BodyTemplate)
}

func TestParseCommand_BasicAuth(t *testing.T) {
	seed, err := ParseCommand(`curl -u user:pass https://api.example.com`)
	require.NoError(t, err)
	assert.Equal(t, "Basic dXNlcjpwYXNz", seed.Headers["Authorization"])
}

func TestParseCommand_IgnoresValueFlags(t *testing.T) {
	seed, err := ParseCommand(`curl -o out.txt --max-time 5 https://api.example.com/y`)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/y", seed.URL)
}

func TestParseCommand_Errors(t *testing.T) {
	_, err := ParseCommand(`wget https://example.com`)
	assert.ErrorIs(t, err, ErrNotCurl)

	_, err = ParseCommand(`curl -X POST`)
	assert.ErrorIs(t, err, ErrMissingValue)

	_, err = ParseCommand(`curl -s`)
	assert.ErrorIs(t, err, ErrMissingURL)

	_, err = ParseCommand(`curl 'https://unterminated`)
	assert.Error(t, err)
}

func TestParseBodyTemplate(t *testing.T) {
	assert.Equal(t, payload.Object{}, ParseBodyTemplate(""))
	assert.Equal(t, payload.Object{}, ParseBodyTemplate("[1,2]"))
	assert.Equal(t, payload.Object{}, ParseBodyTemplate("a=1&b=2"))
	assert.Equal(t,
		payload.Object{"name": payload.String("x"), "n": payload.Number(2)},
		ParseBodyTemplate(`{'name': 'x', "n": 2,}`))
}
