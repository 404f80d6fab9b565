package swagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDocIsValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed struct {
		Info struct {
			Description string `json:"description"`
		} `json:"info"`
		Paths map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Contains(t, parsed.Paths, "/sessions/{id}/events")
	assert.Contains(t, parsed.Paths, "/curriculum/language-check")
	assert.Contains(t, parsed.Paths, "/curriculum/point-card")
	assert.Contains(t, parsed.Paths, "/curriculum/quizzes")
	assert.Contains(t, parsed.Info.Description, "Psychoeducational Treatment Model")
}
