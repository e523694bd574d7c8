package domain

import (
	"time"

	"github.com/google/uuid"
)

// StatusCount is one pie-chart slice: quotes grouped by normalized status.
type StatusCount struct {
	Name      string `json:"name"`
	Value     int64  `json:"value"`
	RawStatus string `json:"rawStatus"`
}

// MonthCount is one bar-chart column: quote volume for a calendar month.
type MonthCount struct {
	Month     string `json:"month"`
	Quotes    int64  `json:"quotes"`
	Delivered int64  `json:"delivered"`
}

// MonthBucket is a raw month aggregate as it comes out of the repo layer,
// before the service maps it onto the fixed six-month chart window.
type MonthBucket struct {
	Year      int
	Month     int
	Quotes    int64
	Delivered int64
}

// ChartData is the dashboard chart payload.
type ChartData struct {
	ByStatus []StatusCount `json:"byStatus"`
	ByMonth  []MonthCount  `json:"byMonth"`
}

// PendingQuote is one entry in the dashboard notification feed: a quote still
// awaiting review.
type PendingQuote struct {
	ID             uuid.UUID `json:"id"`
	TrackingNumber string    `json:"trackingNumber"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}
