package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestParseJSONPlain(t *testing.T) {
	got, err := ParseJSON[payload](`{"name": "a", "count": 2}`)

	assert.NoError(t, err)
	assert.Equal(t, payload{Name: "a", Count: 2}, got)
}

func TestParseJSONFenced(t *testing.T) {
	got, err := ParseJSON[payload]("```json\n{\"name\": \"a\", \"count\": 2}\n```")

	assert.NoError(t, err)
	assert.Equal(t, "a", got.Name)
}

func TestParseJSONEmbeddedInProse(t *testing.T) {
	got, err := ParseJSON[payload](`Here is the result: {"name": "a", "count": 2} hope it helps`)

	assert.NoError(t, err)
	assert.Equal(t, "a", got.Name)
	assert.Equal(t, 2, got.Count)
}

func TestParseJSONBracesInsideStrings(t *testing.T) {
	got, err := ParseJSON[payload](`sure: {"name": "curly } brace", "count": 1}`)

	assert.NoError(t, err)
	assert.Equal(t, "curly } brace", got.Name)
}

func TestParseJSONNoObject(t *testing.T) {
	_, err := ParseJSON[payload]("I cannot answer that.")

	assert.Error(t, err)
}
