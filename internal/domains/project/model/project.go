package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Project is a portfolio project as persisted in the projects collection.
// The id is store-assigned; order, createdAt and updatedAt are owned by the
// service and never trusted from client input on creation.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Link        string   `json:"link,omitempty"`
	Year        string   `json:"year,omitempty"`
	Tech        []string `json:"tech,omitempty"`
	Featured    bool     `json:"featured"`
	Order       *int     `json:"order,omitempty"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// CreateProjectRequest carries the client-editable fields. Order and
// featured are absent on purpose: new projects append at the end,
// unfeatured.
type CreateProjectRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Link        string   `json:"link"`
	Year        string   `json:"year"`
	Tech        []string `json:"tech"`
}

func (r CreateProjectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Description, validation.Length(0, 4000)),
	)
}

// UpdateProjectRequest is a partial update; nil fields are left untouched.
// Featured is read by the handler to detect a toggle and is never written
// through the generic merge path.
type UpdateProjectRequest struct {
	ID          string    `json:"id"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	Link        *string   `json:"link,omitempty"`
	Year        *string   `json:"year,omitempty"`
	Tech        *[]string `json:"tech,omitempty"`
	Order       *int      `json:"order,omitempty"`
	Featured    *bool     `json:"featured,omitempty"`
}

func (r UpdateProjectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required.Error("id is required")),
		validation.Field(&r.Title, validation.NilOrNotEmpty.Error("title cannot be blank")),
		validation.Field(&r.Order, validation.Min(0)),
	)
}
