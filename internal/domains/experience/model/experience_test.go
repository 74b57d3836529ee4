package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryMarshalAlwaysIncludesLinks(t *testing.T) {
	raw, err := json.Marshal(Entry{ID: "e1", Title: "Backend Engineer"})
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))

	// Clients rely on links being an object, not an absent field.
	links, ok := out["links"].(map[string]interface{})
	require.True(t, ok, "links must marshal as an object, got %T", out["links"])
	assert.Empty(t, links)
}

func TestUpdateEntryRequestValidate(t *testing.T) {
	assert.Error(t, UpdateEntryRequest{}.Validate())

	blank := ""
	assert.Error(t, UpdateEntryRequest{ID: "e1", Title: &blank}.Validate())

	title := "Tech Lead"
	assert.NoError(t, UpdateEntryRequest{ID: "e1", Title: &title}.Validate())
}
