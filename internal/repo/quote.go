package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/modestcargo/cargo-api/internal/domain"
)

// quoteColumns is the column list shared by every query that returns full
// quote rows, so scanQuote stays in sync with a single definition.
const quoteColumns = `id, tracking_number, full_name, email, phone, company,
	pickup_location, delivery_location, service_type, cargo_type, weight,
	quantity, description, preferred_delivery_date, status, assigned_to,
	created_at, updated_at`

// QuoteRepo defines the persistence operations for quotes, their reply
// threads, and their status history.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type QuoteRepo interface {
	// Create inserts a new quote and returns the persisted record.
	// Returns domain.ErrConflict if the tracking number is already taken;
	// the caller is expected to redraw and retry.
	Create(ctx context.Context, quote domain.Quote) (domain.Quote, error)

	// GetByID retrieves a quote with its reply thread.
	// Returns domain.ErrNotFound if no quote with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Quote, error)

	// GetByTrackingNumber retrieves a quote by its business identifier.
	// Returns domain.ErrNotFound if the tracking number is unassigned.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (domain.Quote, error)

	// TrackingNumberExists reports whether any quote already carries the
	// given tracking number.
	TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error)

	// List returns one page of quotes ordered by created_at descending,
	// together with the total count.
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Quote, int64, error)

	// Update overwrites the fields set in upd (nil pointers are left
	// unchanged) and returns the updated record.
	Update(ctx context.Context, id uuid.UUID, upd domain.QuoteUpdate) (domain.Quote, error)

	// UpdateStatus overwrites the status and returns the updated record.
	// Last write wins; there is no conflict detection.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (domain.Quote, error)

	// AppendReply adds one entry to the quote's reply thread and returns it.
	AppendReply(ctx context.Context, reply domain.Reply) (domain.Reply, error)

	// Assign sets assigned_to and returns the updated record.
	Assign(ctx context.Context, id, userID uuid.UUID) (domain.Quote, error)

	// Delete removes a quote and returns the deleted record so the caller
	// can still notify the customer. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) (domain.Quote, error)

	// AddStatusEvent appends one entry to the quote's status history.
	AddStatusEvent(ctx context.Context, ev domain.StatusEvent) error

	// ListStatusEvents returns the status history oldest-first.
	ListStatusEvents(ctx context.Context, quoteID uuid.UUID) ([]domain.StatusEvent, error)

	// CountByStatus groups all quotes by lowercased status, largest first.
	CountByStatus(ctx context.Context) ([]domain.StatusCount, error)

	// MonthlyCounts returns per-month quote and delivered counts for quotes
	// created at or after since.
	MonthlyCounts(ctx context.Context, since time.Time) ([]domain.MonthBucket, error)

	// ListPending returns the newest quotes still in status 'pending',
	// capped at limit.
	ListPending(ctx context.Context, limit int) ([]domain.PendingQuote, error)
}

// pgQuoteRepo is the Postgres implementation of QuoteRepo.
type pgQuoteRepo struct {
	db db
}

// NewQuoteRepo constructs a QuoteRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewQuoteRepo(db db) QuoteRepo {
	return &pgQuoteRepo{db: db}
}

// Create inserts a new quote row. The tracking_number unique index is the
// authoritative guard against the creation race; a violation surfaces as
// domain.ErrConflict so the service can redraw.
func (r *pgQuoteRepo) Create(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	const q = `
		INSERT INTO quotes (tracking_number, full_name, email, phone, company,
			pickup_location, delivery_location, service_type, cargo_type,
			weight, quantity, description, preferred_delivery_date, status)
		VALUES (@tracking_number, @full_name, @email, @phone, @company,
			@pickup_location, @delivery_location, @service_type, @cargo_type,
			@weight, @quantity, @description, @preferred_delivery_date, @status)
		RETURNING ` + quoteColumns

	args := pgx.NamedArgs{
		"tracking_number":         quote.TrackingNumber,
		"full_name":               quote.FullName,
		"email":                   quote.Email,
		"phone":                   quote.Phone,
		"company":                 quote.Company,
		"pickup_location":         quote.PickupLocation,
		"delivery_location":       quote.DeliveryLocation,
		"service_type":            quote.ServiceType,
		"cargo_type":              quote.CargoType,
		"weight":                  quote.Weight,
		"quantity":                quote.Quantity,
		"description":             quote.Description,
		"preferred_delivery_date": quote.PreferredDeliveryDate, // nil becomes NULL
		"status":                  quote.Status,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanQuote(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.Create: %w", domain.ErrConflict)
		}
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a quote by primary key, reply thread included.
func (r *pgQuoteRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Quote, error) {
	const q = `SELECT ` + quoteColumns + ` FROM quotes WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanQuote(row)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.GetByID: %w", err)
	}
	if result.Replies, err = r.listReplies(ctx, result.ID); err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.GetByID: %w", err)
	}
	return result, nil
}

// GetByTrackingNumber retrieves a quote by its business identifier.
func (r *pgQuoteRepo) GetByTrackingNumber(ctx context.Context, trackingNumber string) (domain.Quote, error) {
	const q = `SELECT ` + quoteColumns + ` FROM quotes WHERE tracking_number = @tracking_number`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"tracking_number": trackingNumber})
	result, err := scanQuote(row)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.GetByTrackingNumber: %w", err)
	}
	if result.Replies, err = r.listReplies(ctx, result.ID); err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.GetByTrackingNumber: %w", err)
	}
	return result, nil
}

// TrackingNumberExists probes for an existing tracking number.
func (r *pgQuoteRepo) TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM quotes WHERE tracking_number = @tracking_number)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"tracking_number": trackingNumber}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.QuoteRepo.TrackingNumberExists: %w", err)
	}
	return exists, nil
}

// List returns one page of quotes, newest first, plus the total count.
// Reply threads are not loaded for list views.
func (r *pgQuoteRepo) List(ctx context.Context, p domain.PaginationParams) ([]domain.Quote, int64, error) {
	const q = `
		SELECT ` + quoteColumns + `, count(*) OVER () AS total
		FROM quotes
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.QuoteRepo.List: %w", err)
	}
	defer rows.Close()

	var (
		quotes []domain.Quote
		total  int64
	)
	for rows.Next() {
		quote, n, err := scanQuoteWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.QuoteRepo.List: scan: %w", err)
		}
		quotes = append(quotes, quote)
		total = n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.QuoteRepo.List: rows: %w", err)
	}
	return quotes, total, nil
}

// Update overwrites the fields set in upd; nil pointers keep the stored value
// via COALESCE. The tracking number is immutable and deliberately absent.
func (r *pgQuoteRepo) Update(ctx context.Context, id uuid.UUID, upd domain.QuoteUpdate) (domain.Quote, error) {
	const q = `
		UPDATE quotes
		SET full_name               = COALESCE(@full_name, full_name),
		    email                   = COALESCE(@email, email),
		    phone                   = COALESCE(@phone, phone),
		    company                 = COALESCE(@company, company),
		    pickup_location         = COALESCE(@pickup_location, pickup_location),
		    delivery_location       = COALESCE(@delivery_location, delivery_location),
		    service_type            = COALESCE(@service_type, service_type),
		    cargo_type              = COALESCE(@cargo_type, cargo_type),
		    weight                  = COALESCE(@weight, weight),
		    quantity                = COALESCE(@quantity, quantity),
		    description             = COALESCE(@description, description),
		    preferred_delivery_date = COALESCE(@preferred_delivery_date, preferred_delivery_date),
		    updated_at              = now()
		WHERE id = @id
		RETURNING ` + quoteColumns

	args := pgx.NamedArgs{
		"id":                      id,
		"full_name":               upd.FullName,
		"email":                   upd.Email,
		"phone":                   upd.Phone,
		"company":                 upd.Company,
		"pickup_location":         upd.PickupLocation,
		"delivery_location":       upd.DeliveryLocation,
		"service_type":            upd.ServiceType,
		"cargo_type":              upd.CargoType,
		"weight":                  upd.Weight,
		"quantity":                upd.Quantity,
		"description":             upd.Description,
		"preferred_delivery_date": upd.PreferredDeliveryDate,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanQuote(row)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.Update: %w", err)
	}
	return result, nil
}

// UpdateStatus overwrites the status column. Last write wins.
func (r *pgQuoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (domain.Quote, error) {
	const q = `
		UPDATE quotes
		SET status = @status, updated_at = now()
		WHERE id = @id
		RETURNING ` + quoteColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "status": status})
	result, err := scanQuote(row)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.UpdateStatus: %w", err)
	}
	return result, nil
}

// AppendReply inserts one reply row. The replies table is append-only; there
// is no update or delete path.
func (r *pgQuoteRepo) AppendReply(ctx context.Context, reply domain.Reply) (domain.Reply, error) {
	const q = `
		INSERT INTO quote_replies (quote_id, sender, sender_name, message)
		VALUES (@quote_id, @sender, @sender_name, @message)
		RETURNING id, quote_id, sender, sender_name, message, created_at`

	args := pgx.NamedArgs{
		"quote_id":    reply.QuoteID,
		"sender":      reply.Sender,
		"sender_name": reply.SenderName,
		"message":     reply.Message,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanReply(row)
	if err != nil {
		return domain.Reply{}, fmt.Errorf("repo.QuoteRepo.AppendReply: %w", err)
	}
	return result, nil
}

// Assign overwrites assigned_to. Whether the assignee is staff is the
// service layer's decision.
func (r *pgQuoteRepo) Assign(ctx context.Context, id, userID uuid.UUID) (domain.Quote, error) {
	const q = `
		UPDATE quotes
		SET assigned_to = @assigned_to, updated_at = now()
		WHERE id = @id
		RETURNING ` + quoteColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "assigned_to": userID})
	result, err := scanQuote(row)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.Assign: %w", err)
	}
	return result, nil
}

// Delete removes a quote and returns the deleted record. Replies and status
// events go with it via ON DELETE CASCADE.
func (r *pgQuoteRepo) Delete(ctx context.Context, id uuid.UUID) (domain.Quote, error) {
	const q = `DELETE FROM quotes WHERE id = @id RETURNING ` + quoteColumns

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanQuote(row)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("repo.QuoteRepo.Delete: %w", err)
	}
	return result, nil
}

// AddStatusEvent appends one history entry.
func (r *pgQuoteRepo) AddStatusEvent(ctx context.Context, ev domain.StatusEvent) error {
	const q = `
		INSERT INTO quote_status_events (quote_id, status, notes)
		VALUES (@quote_id, @status, @notes)`

	args := pgx.NamedArgs{"quote_id": ev.QuoteID, "status": ev.Status, "notes": ev.Notes}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.QuoteRepo.AddStatusEvent: %w", err)
	}
	return nil
}

// ListStatusEvents returns the history oldest-first.
func (r *pgQuoteRepo) ListStatusEvents(ctx context.Context, quoteID uuid.UUID) ([]domain.StatusEvent, error) {
	const q = `
		SELECT id, quote_id, status, notes, created_at
		FROM quote_status_events
		WHERE quote_id = @quote_id
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"quote_id": quoteID})
	if err != nil {
		return nil, fmt.Errorf("repo.QuoteRepo.ListStatusEvents: %w", err)
	}
	defer rows.Close()

	var events []domain.StatusEvent
	for rows.Next() {
		var (
			ev      domain.StatusEvent
			id, qid pgtype.UUID
		)
		if err := rows.Scan(&id, &qid, &ev.Status, &ev.Notes, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("repo.QuoteRepo.ListStatusEvents: scan: %w", err)
		}
		ev.ID = uuid.UUID(id.Bytes)
		ev.QuoteID = uuid.UUID(qid.Bytes)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.QuoteRepo.ListStatusEvents: rows: %w", err)
	}
	return events, nil
}

// CountByStatus groups all quotes by lowercased status, largest group first.
func (r *pgQuoteRepo) CountByStatus(ctx context.Context) ([]domain.StatusCount, error) {
	const q = `
		SELECT lower(status), count(*)
		FROM quotes
		GROUP BY lower(status)
		ORDER BY count(*) DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.QuoteRepo.CountByStatus: %w", err)
	}
	defer rows.Close()

	var counts []domain.StatusCount
	for rows.Next() {
		var c domain.StatusCount
		if err := rows.Scan(&c.RawStatus, &c.Value); err != nil {
			return nil, fmt.Errorf("repo.QuoteRepo.CountByStatus: scan: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.QuoteRepo.CountByStatus: rows: %w", err)
	}
	return counts, nil
}

// MonthlyCounts aggregates quote volume per calendar month since the given time.
func (r *pgQuoteRepo) MonthlyCounts(ctx context.Context, since time.Time) ([]domain.MonthBucket, error) {
	const q = `
		SELECT extract(year FROM created_at)::int,
		       extract(month FROM created_at)::int,
		       count(*),
		       count(*) FILTER (WHERE lower(status) = 'delivered')
		FROM quotes
		WHERE created_at >= @since
		GROUP BY 1, 2
		ORDER BY 1, 2`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"since": since})
	if err != nil {
		return nil, fmt.Errorf("repo.QuoteRepo.MonthlyCounts: %w", err)
	}
	defer rows.Close()

	var buckets []domain.MonthBucket
	for rows.Next() {
		var b domain.MonthBucket
		if err := rows.Scan(&b.Year, &b.Month, &b.Quotes, &b.Delivered); err != nil {
			return nil, fmt.Errorf("repo.QuoteRepo.MonthlyCounts: scan: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.QuoteRepo.MonthlyCounts: rows: %w", err)
	}
	return buckets, nil
}

// ListPending returns the newest quotes awaiting review.
func (r *pgQuoteRepo) ListPending(ctx context.Context, limit int) ([]domain.PendingQuote, error) {
	const q = `
		SELECT id, tracking_number, full_name, email, status, created_at
		FROM quotes
		WHERE status = 'pending'
		ORDER BY created_at DESC
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.QuoteRepo.ListPending: %w", err)
	}
	defer rows.Close()

	var pending []domain.PendingQuote
	for rows.Next() {
		var (
			p  domain.PendingQuote
			id pgtype.UUID
		)
		if err := rows.Scan(&id, &p.TrackingNumber, &p.FullName, &p.Email, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("repo.QuoteRepo.ListPending: scan: %w", err)
		}
		p.ID = uuid.UUID(id.Bytes)
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.QuoteRepo.ListPending: rows: %w", err)
	}
	return pending, nil
}

// listReplies loads the reply thread for a quote, oldest first.
func (r *pgQuoteRepo) listReplies(ctx context.Context, quoteID uuid.UUID) ([]domain.Reply, error) {
	const q = `
		SELECT id, quote_id, sender, sender_name, message, created_at
		FROM quote_replies
		WHERE quote_id = @quote_id
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"quote_id": quoteID})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	replies := []domain.Reply{}
	for rows.Next() {
		reply, err := scanReply(rows)
		if err != nil {
			return nil, err
		}
		replies = append(replies, reply)
	}
	return replies, rows.Err()
}

// scanQuote maps a single database row into a domain.Quote.
// It handles the UUID, nullable assigned_to, and nullable date conversions.
func scanQuote(s scanner) (domain.Quote, error) {
	var (
		quote      domain.Quote
		id         pgtype.UUID
		assignedTo pgtype.UUID
		prefDate   pgtype.Timestamptz
	)

	err := s.Scan(&id, &quote.TrackingNumber, &quote.FullName, &quote.Email,
		&quote.Phone, &quote.Company, &quote.PickupLocation, &quote.DeliveryLocation,
		&quote.ServiceType, &quote.CargoType, &quote.Weight, &quote.Quantity,
		&quote.Description, &prefDate, &quote.Status, &assignedTo,
		&quote.CreatedAt, &quote.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Quote{}, domain.ErrNotFound
		}
		return domain.Quote{}, err
	}

	quote.ID = uuid.UUID(id.Bytes)
	if assignedTo.Valid {
		u := uuid.UUID(assignedTo.Bytes)
		quote.AssignedTo = &u
	}
	if prefDate.Valid {
		d := prefDate.Time
		quote.PreferredDeliveryDate = &d
	}
	quote.Replies = []domain.Reply{}
	return quote, nil
}

// scanQuoteWithTotal is scanQuote plus the window-function total column used
// by List.
func scanQuoteWithTotal(s scanner) (domain.Quote, int64, error) {
	var (
		quote      domain.Quote
		id         pgtype.UUID
		assignedTo pgtype.UUID
		prefDate   pgtype.Timestamptz
		total      int64
	)

	err := s.Scan(&id, &quote.TrackingNumber, &quote.FullName, &quote.Email,
		&quote.Phone, &quote.Company, &quote.PickupLocation, &quote.DeliveryLocation,
		&quote.ServiceType, &quote.CargoType, &quote.Weight, &quote.Quantity,
		&quote.Description, &prefDate, &quote.Status, &assignedTo,
		&quote.CreatedAt, &quote.UpdatedAt, &total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Quote{}, 0, domain.ErrNotFound
		}
		return domain.Quote{}, 0, err
	}

	quote.ID = uuid.UUID(id.Bytes)
	if assignedTo.Valid {
		u := uuid.UUID(assignedTo.Bytes)
		quote.AssignedTo = &u
	}
	if prefDate.Valid {
		d := prefDate.Time
		quote.PreferredDeliveryDate = &d
	}
	quote.Replies = []domain.Reply{}
	return quote, total, nil
}

// scanReply maps a single database row into a domain.Reply.
func scanReply(s scanner) (domain.Reply, error) {
	var (
		reply       domain.Reply
		id, qid, su pgtype.UUID
	)
	err := s.Scan(&id, &qid, &su, &reply.SenderName, &reply.Message, &reply.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Reply{}, domain.ErrNotFound
		}
		return domain.Reply{}, err
	}
	reply.ID = uuid.UUID(id.Bytes)
	reply.QuoteID = uuid.UUID(qid.Bytes)
	reply.Sender = uuid.UUID(su.Bytes)
	return reply, nil
}
