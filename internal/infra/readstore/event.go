package readstore

import (
	"context"

	"member-portal/internal/infra"
	"member-portal/internal/pkg/pgconv"
	"member-portal/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const eventColumns = `
	id, title, starts_at, program_tag, tickets_required,
	created_at, updated_at, canceled_at
`

type EventReadStore struct {
	pool *pgxpool.Pool
}

func NewEventReadStore(pool *pgxpool.Pool) *EventReadStore {
	return &EventReadStore{pool: pool}
}

func (r *EventReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.EventView, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	view, err := scanEvent(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("event not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find event by ID", err)
	}
	return view, nil
}

func (r *EventReadStore) ListUpcoming(ctx context.Context, limit int32) ([]*queries.EventView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE starts_at > now() AND canceled_at IS NULL
		ORDER BY starts_at
		LIMIT $1`, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list upcoming events", err)
	}
	defer rows.Close()

	var result []*queries.EventView
	for rows.Next() {
		view, scanErr := scanEvent(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan event row", scanErr)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate event rows", err)
	}
	return result, nil
}

func scanEvent(row pgx.Row) (*queries.EventView, error) {
	var (
		view       queries.EventView
		startsAt   pgtype.Timestamptz
		programTag pgtype.Text
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
		canceledAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&view.ID, &view.Title, &startsAt, &programTag, &view.TicketsRequired,
		&createdAt, &updatedAt, &canceledAt,
	); err != nil {
		return nil, err
	}
	view.StartsAt = pgconv.TimeFromPgtype(startsAt)
	view.ProgramTag = pgconv.StringPtrFromPgtype(programTag)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	view.CanceledAt = pgconv.TimePtrFromPgtype(canceledAt)
	return &view, nil
}
