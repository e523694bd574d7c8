// Package domain contains the core data types for the Modest Cargo API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatusPending is the status every quote starts in.
const StatusPending = "pending"

// StatusQuoted is forced onto a quote whenever a staff reply is appended,
// regardless of the prior status.
const StatusQuoted = "quoted"

// Quote is the central entity: a customer-submitted shipment quote request
// that staff track through to delivery. The tracking number is assigned once
// at creation and never changes.
type Quote struct {
	ID             uuid.UUID `json:"id"`
	TrackingNumber string    `json:"trackingNumber"`

	FullName              string     `json:"fullName"`
	Email                 string     `json:"email"`
	Phone                 string     `json:"phone,omitempty"`
	Company               string     `json:"company,omitempty"`
	PickupLocation        string     `json:"pickupLocation"`
	DeliveryLocation      string     `json:"deliveryLocation"`
	ServiceType           string     `json:"serviceType"`
	CargoType             string     `json:"cargoType,omitempty"`
	Weight                float64    `json:"weight,omitempty"`
	Quantity              int        `json:"quantity,omitempty"`
	Description           string     `json:"description,omitempty"`
	PreferredDeliveryDate *time.Time `json:"preferredDeliveryDate,omitempty"`

	// Status is a free-form string; the ShipmentStatus catalog is display-only
	// and never enforced here.
	Status string `json:"status"`

	// AssignedTo is the ID of the staff/admin user handling this quote.
	// Nil means unassigned, which is the initial state.
	AssignedTo *uuid.UUID `json:"assignedTo,omitempty"`

	// Assignee carries the expanded assigned user when the caller asked for it
	// (assignment responses and staff list views). Not persisted on the quote row.
	Assignee *User `json:"assignee,omitempty"`

	// Replies is append-only; entries are never edited or removed.
	Replies []Reply `json:"replies"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Reply is one staff response threaded onto a quote.
type Reply struct {
	ID         uuid.UUID `json:"id"`
	QuoteID    uuid.UUID `json:"quoteId"`
	Sender     uuid.UUID `json:"sender"`
	SenderName string    `json:"senderName"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// StatusEvent is one entry in a quote's status history, recorded at creation
// and on every status change.
type StatusEvent struct {
	ID        uuid.UUID `json:"-"`
	QuoteID   uuid.UUID `json:"-"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// QuoteUpdate carries the editable quote fields for a PATCH. Nil pointers
// mean "leave unchanged"; the tracking number is deliberately absent.
type QuoteUpdate struct {
	FullName              *string
	Email                 *string
	Phone                 *string
	Company               *string
	PickupLocation        *string
	DeliveryLocation      *string
	ServiceType           *string
	CargoType             *string
	Weight                *float64
	Quantity              *int
	Description           *string
	PreferredDeliveryDate *time.Time
}
