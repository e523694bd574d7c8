package notify

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/modestcargo/cargo-api/internal/domain"
)

// EmailNotifier renders the lifecycle templates and delivers them through a
// Sender. Each quote event produces two emails: one to the customer (or the
// assigned staff member) and one to the operations inbox.
type EmailNotifier struct {
	sender     Sender
	adminEmail string
	appURL     string
}

// NewEmailNotifier constructs an EmailNotifier. appURL is the public site
// origin used to build tracking links, e.g. "https://modestcargo.com".
func NewEmailNotifier(sender Sender, adminEmail, appURL string) *EmailNotifier {
	return &EmailNotifier{
		sender:     sender,
		adminEmail: adminEmail,
		appURL:     strings.TrimRight(appURL, "/"),
	}
}

var _ Notifier = (*EmailNotifier)(nil)

// trackingURL builds the public tracking page link for a quote.
func (n *EmailNotifier) trackingURL(q domain.Quote) string {
	if n.appURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/track?number=%s", n.appURL, q.TrackingNumber)
}

// quoteDetails lists the fields shown in every quote email body.
func quoteDetails(q domain.Quote) []detail {
	d := []detail{
		{Label: "Name", Value: q.FullName},
		{Label: "Route", Value: q.PickupLocation + " to " + q.DeliveryLocation},
		{Label: "Service", Value: q.ServiceType},
		{Label: "Cargo", Value: q.CargoType},
		{Label: "Weight", Value: fmt.Sprintf("%g kg", q.Weight)},
		{Label: "Quantity", Value: fmt.Sprintf("%d", q.Quantity)},
	}
	if q.PreferredDeliveryDate != nil {
		d = append(d, detail{Label: "Preferred delivery", Value: q.PreferredDeliveryDate.Format("Jan 2, 2006")})
	}
	return d
}

// send renders and delivers a single email.
func (n *EmailNotifier) send(ctx context.Context, to, toName, subject string, data emailData) error {
	html, err := renderEmail(data)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, Email{To: to, ToName: toName, Subject: subject, HTMLContent: html})
}

// sendPair delivers the customer email and the admin copy, returning both
// failures joined so the caller's log line covers whichever leg broke.
func (n *EmailNotifier) sendPair(ctx context.Context, customer, admin Email) error {
	var errs []error
	if customer.To != "" {
		if err := n.sender.Send(ctx, customer); err != nil {
			errs = append(errs, err)
		}
	}
	if n.adminEmail != "" {
		admin.To = n.adminEmail
		admin.ToName = "ModestCargo Operations"
		if err := n.sender.Send(ctx, admin); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// renderPair renders the customer and admin variants of one event.
func (n *EmailNotifier) renderPair(q domain.Quote, customerSubject string, customerData emailData, adminSubject string, adminData emailData) (Email, Email, error) {
	customerHTML, err := renderEmail(customerData)
	if err != nil {
		return Email{}, Email{}, err
	}
	adminHTML, err := renderEmail(adminData)
	if err != nil {
		return Email{}, Email{}, err
	}
	customer := Email{To: q.Email, ToName: q.FullName, Subject: customerSubject, HTMLContent: customerHTML}
	admin := Email{Subject: adminSubject, HTMLContent: adminHTML}
	return customer, admin, nil
}

// QuoteCreated sends the confirmation (with tracking number) to the customer
// and a new-request alert to the operations inbox.
func (n *EmailNotifier) QuoteCreated(ctx context.Context, q domain.Quote) error {
	customer, admin, err := n.renderPair(q,
		"Your quote request has been received",
		emailData{
			Title:          "Quote request received",
			Intro:          fmt.Sprintf("Hi %s, thank you for choosing ModestCargo. We have received your quote request and our team will get back to you shortly.", q.FullName),
			Details:        quoteDetails(q),
			TrackingNumber: q.TrackingNumber,
			TrackingURL:    n.trackingURL(q),
			Outro:          "Keep your tracking number handy. You can use it any time to check the status of your shipment.",
		},
		"New quote request: "+q.TrackingNumber,
		emailData{
			Title:          "New quote request",
			Intro:          fmt.Sprintf("%s (%s) submitted a new quote request.", q.FullName, q.Email),
			Details:        quoteDetails(q),
			TrackingNumber: q.TrackingNumber,
		},
	)
	if err != nil {
		return err
	}
	return n.sendPair(ctx, customer, admin)
}

// QuoteEdited notifies both parties which fields changed. The changed map is
// field name to new value; keys are sorted for a stable body.
func (n *EmailNotifier) QuoteEdited(ctx context.Context, q domain.Quote, changed map[string]string) error {
	if len(changed) == 0 {
		return nil
	}

	fields := make([]string, 0, len(changed))
	for f := range changed {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	details := make([]detail, 0, len(fields))
	for _, f := range fields {
		details = append(details, detail{Label: f, Value: changed[f]})
	}

	customer, admin, err := n.renderPair(q,
		"Your quote request has been updated",
		emailData{
			Title:          "Quote request updated",
			Intro:          fmt.Sprintf("Hi %s, the following details of your quote request were updated:", q.FullName),
			Details:        details,
			TrackingNumber: q.TrackingNumber,
			TrackingURL:    n.trackingURL(q),
		},
		"Quote updated: "+q.TrackingNumber,
		emailData{
			Title:          "Quote request updated",
			Intro:          fmt.Sprintf("The quote request from %s (%s) was updated:", q.FullName, q.Email),
			Details:        details,
			TrackingNumber: q.TrackingNumber,
		},
	)
	if err != nil {
		return err
	}
	return n.sendPair(ctx, customer, admin)
}

// QuoteDeleted notifies both parties that the request was cancelled.
func (n *EmailNotifier) QuoteDeleted(ctx context.Context, q domain.Quote) error {
	customer, admin, err := n.renderPair(q,
		"Your quote request has been cancelled",
		emailData{
			Title: "Quote request cancelled",
			Intro: fmt.Sprintf("Hi %s, your quote request %s has been cancelled and removed from our system. If this was a mistake, please submit a new request.", q.FullName, q.TrackingNumber),
		},
		"Quote deleted: "+q.TrackingNumber,
		emailData{
			Title:   "Quote request deleted",
			Intro:   fmt.Sprintf("The quote request from %s (%s) was deleted.", q.FullName, q.Email),
			Details: quoteDetails(q),
		},
	)
	if err != nil {
		return err
	}
	return n.sendPair(ctx, customer, admin)
}

// StatusChanged notifies both parties of a shipment status transition.
func (n *EmailNotifier) StatusChanged(ctx context.Context, q domain.Quote, oldStatus, newStatus string) error {
	transition := []detail{
		{Label: "Previous status", Value: oldStatus},
		{Label: "New status", Value: newStatus},
	}

	customer, admin, err := n.renderPair(q,
		"Your shipment status has been updated",
		emailData{
			Title:          "Shipment status updated",
			Intro:          fmt.Sprintf("Hi %s, the status of your shipment has changed.", q.FullName),
			Details:        transition,
			TrackingNumber: q.TrackingNumber,
			TrackingURL:    n.trackingURL(q),
		},
		fmt.Sprintf("Status changed to %s: %s", newStatus, q.TrackingNumber),
		emailData{
			Title:          "Shipment status updated",
			Intro:          fmt.Sprintf("The shipment for %s (%s) moved from %q to %q.", q.FullName, q.Email, oldStatus, newStatus),
			TrackingNumber: q.TrackingNumber,
		},
	)
	if err != nil {
		return err
	}
	return n.sendPair(ctx, customer, admin)
}

// ReplyAdded sends the staff reply to the customer and a copy to the
// operations inbox.
func (n *EmailNotifier) ReplyAdded(ctx context.Context, q domain.Quote, reply domain.Reply) error {
	customer, admin, err := n.renderPair(q,
		"You have a new message about your quote",
		emailData{
			Title:          "New message from ModestCargo",
			Intro:          fmt.Sprintf("Hi %s, our team has replied to your quote request:", q.FullName),
			Details:        []detail{{Label: "Message", Value: reply.Message}},
			TrackingNumber: q.TrackingNumber,
			TrackingURL:    n.trackingURL(q),
		},
		"Reply sent: "+q.TrackingNumber,
		emailData{
			Title:          "Reply sent to customer",
			Intro:          fmt.Sprintf("A reply was sent to %s (%s):", q.FullName, q.Email),
			Details:        []detail{{Label: "Message", Value: reply.Message}},
			TrackingNumber: q.TrackingNumber,
		},
	)
	if err != nil {
		return err
	}
	return n.sendPair(ctx, customer, admin)
}

// Assigned notifies the staff member who picked up the quote, with a copy to
// the operations inbox. The customer is not emailed for assignments.
func (n *EmailNotifier) Assigned(ctx context.Context, q domain.Quote, assignee domain.User) error {
	data := emailData{
		Title:          "Quote assigned to you",
		Intro:          fmt.Sprintf("Hi %s, the quote request below has been assigned to you.", assignee.Name()),
		Details:        quoteDetails(q),
		TrackingNumber: q.TrackingNumber,
	}
	html, err := renderEmail(data)
	if err != nil {
		return err
	}

	staff := Email{
		To:          assignee.Email,
		ToName:      assignee.Name(),
		Subject:     "Quote assigned to you: " + q.TrackingNumber,
		HTMLContent: html,
	}

	adminHTML, err := renderEmail(emailData{
		Title:          "Quote assigned",
		Intro:          fmt.Sprintf("The quote %s was assigned to %s (%s).", q.TrackingNumber, assignee.Name(), assignee.Email),
		TrackingNumber: q.TrackingNumber,
	})
	if err != nil {
		return err
	}
	admin := Email{Subject: "Quote assigned: " + q.TrackingNumber, HTMLContent: adminHTML}

	return n.sendPair(ctx, staff, admin)
}

// Test sends a plain probe email, used by the admin test endpoint to verify
// provider credentials.
func (n *EmailNotifier) Test(ctx context.Context, to, subject string) error {
	if subject == "" {
		subject = "ModestCargo test email"
	}
	return n.send(ctx, to, "", subject, emailData{
		Title: "Test email",
		Intro: "This is a test email from the ModestCargo API. If you are reading this, outbound email delivery is working.",
	})
}

// NoopNotifier is a Notifier that delivers nothing. It stands in when no
// provider key is configured, e.g. local development.
type NoopNotifier struct{}

var _ Notifier = NoopNotifier{}

func (NoopNotifier) QuoteCreated(context.Context, domain.Quote) error { return nil }
func (NoopNotifier) QuoteEdited(context.Context, domain.Quote, map[string]string) error {
	return nil
}
func (NoopNotifier) QuoteDeleted(context.Context, domain.Quote) error { return nil }
func (NoopNotifier) StatusChanged(context.Context, domain.Quote, string, string) error {
	return nil
}
func (NoopNotifier) ReplyAdded(context.Context, domain.Quote, domain.Reply) error { return nil }
func (NoopNotifier) Assigned(context.Context, domain.Quote, domain.User) error    { return nil }
func (NoopNotifier) Test(context.Context, string, string) error                   { return nil }
