package ordered

import (
	"encoding/json"
	"fmt"
)

// Fields converts a request struct into the field map the store persists.
// Nil pointer fields marked omitempty drop out, which is what makes partial
// updates merge instead of overwrite.
func Fields(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return fields, nil
}
