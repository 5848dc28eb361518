package server

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type createProjectRequest struct {
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

func (r createProjectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.UserID, validation.Required),
	)
}

type generateRequest struct {
	Keywords []string `json:"keywords"`
}

type updateSettingRequest struct {
	UserID string `json:"user_id"`
	Value  string `json:"value"`
}

func (r updateSettingRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
	)
}

type updatePhotoRequest struct {
	Caption      *string `json:"caption"`
	Category     *string `json:"category"`
	DisplayOrder *int    `json:"display_order"`
}

func (r updatePhotoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category, validation.In("전시부스", "인테리어", "사인물", "기타")),
		validation.Field(&r.DisplayOrder, validation.Min(1)),
	)
}

type reorderPhotosRequest struct {
	PhotoIDs []string `json:"photo_ids"`
}

func (r reorderPhotosRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PhotoIDs, validation.Required),
	)
}

type addReferenceRequest struct {
	UserID      string `json:"user_id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r addReferenceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.URL, validation.Required, is.URL),
		validation.Field(&r.Title, validation.Length(0, 300)),
	)
}

type updateReferenceRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Active      *bool   `json:"is_active"`
}

func (r updateReferenceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(0, 300)),
	)
}
