package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatusColors are the color tags the dashboard accepts for a catalog entry.
var StatusColors = []string{
	"gray", "yellow", "blue", "green", "purple", "indigo", "emerald", "red", "orange",
}

// ShipmentStatus is one entry in the configurable status catalog.
// The catalog drives dashboard display (badge color, emoji) only; quote
// statuses are matched against it by name equality and nothing prevents a
// quote from carrying a status the catalog does not know.
type ShipmentStatus struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Emoji       string    `json:"emoji"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidStatusColor reports whether c is one of the accepted color tags.
func ValidStatusColor(c string) bool {
	for _, v := range StatusColors {
		if v == c {
			return true
		}
	}
	return false
}

// ShipmentStatusUpdate carries optional catalog fields for a PATCH.
type ShipmentStatusUpdate struct {
	Name        *string
	Color       *string
	Emoji       *string
	Description *string
	IsActive    *bool
}
