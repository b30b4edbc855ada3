package genai

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONFencedObject(t *testing.T) {
	raw := "Sure, here is the plan:\n```json\n{\"insight\": \"eat well\"}\n```\nLet me know!"

	msg, err := ExtractJSON(raw, ShapeObject)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, "eat well", got["insight"])
}

func TestExtractJSONArrayWithCommentary(t *testing.T) {
	raw := "Here are your meals: [{\"name\":\"breakfast\"},{\"name\":\"lunch\"}] enjoy!"

	msg, err := ExtractJSON(raw, ShapeArray)
	require.NoError(t, err)

	var got []map[string]string
	require.NoError(t, json.Unmarshal(msg, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "lunch", got[1]["name"])
}

func TestExtractJSONControlCharacterRecovery(t *testing.T) {
	// Raw newline and tab inside a string value: invalid JSON until the
	// control run is collapsed to a space.
	raw := "{\"advice\": \"drink water\nevery\tday\"}"

	msg, err := ExtractJSON(raw, ShapeObject)
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, "drink water every day", got["advice"])
}

func TestExtractJSONUnrecoverable(t *testing.T) {
	_, err := ExtractJSON("{\"broken\": ", ShapeObject)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, parseErr.Raw, "broken")
}

func TestExtractJSONUnwrapsObjectWhenArrayExpected(t *testing.T) {
	raw := `{"note": "here you go", "meals": [{"name": "dinner"}], "extra": [1]}`

	msg, err := ExtractJSON(raw, ShapeArray)
	require.NoError(t, err)

	// First embedded array in document order, not the later one.
	var got []map[string]string
	require.NoError(t, json.Unmarshal(msg, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "dinner", got[0]["name"])
}

func TestExtractJSONShapeInference(t *testing.T) {
	msg, err := ExtractJSON("noise [1,2,3] and {\"a\":1} later", ShapeAny)
	require.NoError(t, err)

	var got []int
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, []int{1, 2, 3}, got)
}
