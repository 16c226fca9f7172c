package models

import (
	"time"

	"github.com/google/uuid"
)

// Location is a geographic coordinate pair derived from a place's address
// at creation time. It is immutable afterwards.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Place represents a geocoded point of interest owned by exactly one user.
type Place struct {
	// PlaceID is the unique identifier of the place, generated server-side.
	PlaceID uuid.UUID `json:"id"`

	// Title is the display title of the place. Mutable by the creator.
	Title string `json:"title"`

	// Description is the free-text description. Mutable by the creator.
	Description string `json:"description"`

	// Address is the textual address the location was geocoded from.
	// Immutable after creation.
	Address string `json:"address"`

	// Location holds the coordinates resolved from Address at creation.
	// Immutable after creation.
	Location Location `json:"location"`

	// Image is the storage path of the uploaded place image.
	// Immutable after creation.
	Image string `json:"image"`

	// Creator is the identifier of the owning user. Set at creation,
	// immutable, and authorization on update/delete is checked against it.
	Creator uuid.UUID `json:"creator"`

	// CreatedAt is the timestamp when the place was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Place model.
func (p Place) TableName() string {
	return "places"
}

// PlaceUpdate describes a partial update of a place. Only the mutable
// fields are present; a nil pointer means "leave unchanged".
type PlaceUpdate struct {
	// PlaceID identifies the place being updated.
	PlaceID uuid.UUID

	// Title replaces the place title when non-nil.
	Title *string

	// Description replaces the place description when non-nil.
	Description *string
}
