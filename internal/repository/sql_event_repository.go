package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/malenagianoglio/ventas-eventos/internal/domain"
	"github.com/malenagianoglio/ventas-eventos/pkg/database"
)

// SQLEventRepository implements EventRepository
type SQLEventRepository struct {
	db *sqlx.DB
}

// NewSQLEventRepository creates a new SQLEventRepository
func NewSQLEventRepository(db *sqlx.DB) *SQLEventRepository {
	return &SQLEventRepository{db: db}
}

const eventColumns = `id, name, type, access_code, event_date, created_at`

// Create inserts the event and sets its ID
func (r *SQLEventRepository) Create(ctx context.Context, event *domain.Event) error {
	var accessCode sql.NullString
	if event.AccessCode != nil {
		accessCode = nullString(*event.AccessCode)
	}
	var date sql.NullString
	if event.Date != nil {
		date = nullString(event.Date.Format(domain.DateLayout))
	}

	query := r.db.Rebind(`
		INSERT INTO events (name, type, access_code, event_date, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := r.db.QueryRowxContext(ctx, query,
		event.Name, string(event.Type), accessCode, date, formatTimestamp(event.CreatedAt),
	).Scan(&event.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicateAccessCode
		}
		return domain.NewStorageError("create event", err)
	}
	return nil
}

// GetByID retrieves an event, nil when absent
func (r *SQLEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	return r.getOne(ctx, "get event", `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
}

// GetByAccessCode retrieves an event by exact access code, nil when absent
func (r *SQLEventRepository) GetByAccessCode(ctx context.Context, code string) (*domain.Event, error) {
	return r.getOne(ctx, "get event by access code", `SELECT `+eventColumns+` FROM events WHERE access_code = ?`, code)
}

func (r *SQLEventRepository) getOne(ctx context.Context, op, query string, arg interface{}) (*domain.Event, error) {
	var row eventRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.NewStorageError(op, err)
	}
	return row.toDomain()
}

// List returns every event, newest first
func (r *SQLEventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+eventColumns+` FROM events ORDER BY id DESC`); err != nil {
		return nil, domain.NewStorageError("list events", err)
	}

	events := make([]*domain.Event, 0, len(rows))
	for i := range rows {
		e, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
