package domain

import (
	"strings"
	"time"
)

// Waybill is the read-only shipping document derived from a quote.
// It is never persisted; both the JSON view and the PDF download are built
// from the quote record on demand.
type Waybill struct {
	WaybillNumber    string         `json:"waybillNumber"`
	TrackingNumber   string         `json:"trackingNumber"`
	Status           string         `json:"status"`
	SenderName       string         `json:"senderName"`
	SenderAddress    string         `json:"senderAddress"`
	SenderPhone      string         `json:"senderPhone"`
	ReceiverName     string         `json:"receiverName"`
	ReceiverAddress  string         `json:"receiverAddress"`
	ReceiverPhone    string         `json:"receiverPhone"`
	CargoDescription string         `json:"cargoDescription"`
	Weight           float64        `json:"weight"`
	Dimensions       string         `json:"dimensions"`
	ServiceType      string         `json:"serviceType"`
	TrackingHistory  []WaybillEvent `json:"trackingHistory"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// WaybillEvent is one line of the waybill's tracking history block.
type WaybillEvent struct {
	Status    string    `json:"status"`
	Location  string    `json:"location"`
	Timestamp time.Time `json:"timestamp"`
}

// WaybillNumber derives the document number from a quote ID: "WB-" plus the
// last 8 hex characters of the UUID, uppercased.
func WaybillNumber(quoteID [16]byte) string {
	const hexdigits = "0123456789ABCDEF"
	var b strings.Builder
	b.WriteString("WB-")
	for _, c := range quoteID[12:] {
		b.WriteByte(hexdigits[c>>4])
		b.WriteByte(hexdigits[c&0x0f])
	}
	return b.String()
}
