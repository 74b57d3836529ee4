package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Links collects the optional URLs an experience entry can point at.
type Links struct {
	Site      string `json:"site,omitempty"`
	Repo      string `json:"repo,omitempty"`
	CaseStudy string `json:"caseStudy,omitempty"`
}

// Entry is one experience record in the experience collection.
type Entry struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Company   string   `json:"company,omitempty"`
	Summary   string   `json:"summary,omitempty"`
	Stack     []string `json:"stack,omitempty"`
	Links     Links    `json:"links"`
	Order     *int     `json:"order,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

type CreateEntryRequest struct {
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Summary string   `json:"summary"`
	Stack   []string `json:"stack"`
	Links   Links    `json:"links"`
}

func (r CreateEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
	)
}

type UpdateEntryRequest struct {
	ID      string    `json:"id"`
	Title   *string   `json:"title,omitempty"`
	Company *string   `json:"company,omitempty"`
	Summary *string   `json:"summary,omitempty"`
	Stack   *[]string `json:"stack,omitempty"`
	Links   *Links    `json:"links,omitempty"`
	Order   *int      `json:"order,omitempty"`
}

func (r UpdateEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required.Error("id is required")),
		validation.Field(&r.Title, validation.NilOrNotEmpty.Error("title cannot be blank")),
		validation.Field(&r.Order, validation.Min(0)),
	)
}
