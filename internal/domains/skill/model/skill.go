package model

import (
	"encoding/json"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Skill is one entry in the skills collection. Older data persisted skills
// as bare strings; BulkSkill accepts both shapes and everything is
// normalized to this record before any persistence call.
type Skill struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Order     *int   `json:"order,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type CreateSkillRequest struct {
	Name string `json:"name"`
}

func (r CreateSkillRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.By(notBlank),
			validation.Length(1, 255),
		),
	)
}

type UpdateSkillRequest struct {
	ID    string  `json:"id"`
	Name  *string `json:"name,omitempty"`
	Order *int    `json:"order,omitempty"`
}

func (r UpdateSkillRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required.Error("id is required")),
		validation.Field(&r.Name, validation.NilOrNotEmpty.Error("name cannot be blank")),
		validation.Field(&r.Order, validation.Min(0)),
	)
}

// BulkSkill is one element of the bulk-save payload. It unmarshals from
// either a JSON string ("Go") or an object ({"name":"Go","order":2}). The
// order field is parsed but deliberately discarded by the bulk save, which
// renumbers from input position.
type BulkSkill struct {
	Name  string `json:"name"`
	Order *int   `json:"order,omitempty"`
}

func (b *BulkSkill) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		b.Name = name
		b.Order = nil
		return nil
	}

	type bulkSkillObject BulkSkill
	var obj bulkSkillObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("skill must be a string or an object with a name: %w", err)
	}
	*b = BulkSkill(obj)
	return nil
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("must not be blank")
	}
	return nil
}
