// Package notify sends the transactional emails that accompany quote
// lifecycle changes. Delivery is best-effort by contract: callers log and
// swallow any error so the primary mutation never depends on the email
// provider being up.
package notify

import (
	"context"

	"github.com/modestcargo/cargo-api/internal/domain"
)

// Email is one outbound message handed to a Sender.
type Email struct {
	To          string
	ToName      string
	Subject     string
	HTMLContent string
}

// Sender delivers a single email. The production implementation posts to the
// Brevo transactional API; tests substitute a recorder.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// Notifier dispatches the templated email pair (customer + admin, or staff +
// admin for assignments) for each quote lifecycle event.
type Notifier interface {
	QuoteCreated(ctx context.Context, quote domain.Quote) error
	QuoteEdited(ctx context.Context, quote domain.Quote, changed map[string]string) error
	QuoteDeleted(ctx context.Context, quote domain.Quote) error
	StatusChanged(ctx context.Context, quote domain.Quote, oldStatus, newStatus string) error
	ReplyAdded(ctx context.Context, quote domain.Quote, reply domain.Reply) error
	Assigned(ctx context.Context, quote domain.Quote, assignee domain.User) error
	Test(ctx context.Context, to, subject string) error
}
