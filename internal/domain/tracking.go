package domain

import (
	"fmt"
	"regexp"
	"time"
)

// TrackingNumberPattern matches the business identifier format
// MC-YYYYMMDD-XXXXX (MC = Modest Cargo, creation date, 5 random digits).
var TrackingNumberPattern = regexp.MustCompile(`^MC-\d{8}-\d{5}$`)

// FormatTrackingNumber builds a candidate tracking number from a date and a
// random draw in [0, 100000). Uniqueness is the service layer's problem;
// this function is deterministic given its inputs.
func FormatTrackingNumber(year int, month int, day int, random int) string {
	return fmt.Sprintf("MC-%04d%02d%02d-%05d", year, month, day, random)
}

// TrackingInfo is the public tracking view of a quote. It exposes only what a
// customer holding the tracking number is entitled to see.
type TrackingInfo struct {
	TrackingNumber    string        `json:"trackingNumber"`
	Status            string        `json:"status"`
	FullName          string        `json:"fullName"`
	PickupLocation    string        `json:"pickupLocation"`
	DeliveryLocation  string        `json:"deliveryLocation"`
	ServiceType       string        `json:"serviceType"`
	EstimatedDelivery *time.Time    `json:"estimatedDelivery,omitempty"`
	History           []StatusEvent `json:"statusHistory"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}
