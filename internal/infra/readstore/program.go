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

const programColumns = `
	id, tag, name, price, offer_type,
	bogo_buy_quantity, bogo_get_free_quantity, bogo_logic_type,
	bulk_discount_quantity, bulk_discount_percentage,
	created_at, updated_at
`

type ProgramReadStore struct {
	pool *pgxpool.Pool
}

func NewProgramReadStore(pool *pgxpool.Pool) *ProgramReadStore {
	return &ProgramReadStore{pool: pool}
}

func (r *ProgramReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProgramView, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+programColumns+` FROM programs WHERE id = $1`, id)
	view, err := scanProgram(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("program not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find program by ID", err)
	}
	return view, nil
}

func (r *ProgramReadStore) FindByTag(ctx context.Context, tag string) (*queries.ProgramView, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+programColumns+` FROM programs WHERE tag = $1`, tag)
	view, err := scanProgram(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("program not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find program by tag", err)
	}
	return view, nil
}

func (r *ProgramReadStore) List(ctx context.Context) ([]*queries.ProgramView, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+programColumns+` FROM programs ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list programs", err)
	}
	defer rows.Close()

	var result []*queries.ProgramView
	for rows.Next() {
		view, scanErr := scanProgram(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan program row", scanErr)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate program rows", err)
	}
	return result, nil
}

func scanProgram(row pgx.Row) (*queries.ProgramView, error) {
	var (
		view        queries.ProgramView
		price       pgtype.Numeric
		bogoBuy     pgtype.Int4
		bogoFree    pgtype.Int4
		bogoLogic   pgtype.Text
		bulkQty     pgtype.Int4
		bulkPercent pgtype.Numeric
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	if err := row.Scan(
		&view.ID, &view.Tag, &view.Name, &price, &view.OfferType,
		&bogoBuy, &bogoFree, &bogoLogic,
		&bulkQty, &bulkPercent,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	priceVal, err := pgconv.Float64FromNumeric(price)
	if err != nil {
		return nil, err
	}
	bulkPercentVal, err := pgconv.Float64PtrFromNumeric(bulkPercent)
	if err != nil {
		return nil, err
	}

	view.Price = priceVal
	view.BogoBuyQuantity = pgconv.Int32PtrFromPgtype(bogoBuy)
	view.BogoGetFreeQuantity = pgconv.Int32PtrFromPgtype(bogoFree)
	view.BogoLogicType = pgconv.StringPtrFromPgtype(bogoLogic)
	view.BulkDiscountQuantity = pgconv.Int32PtrFromPgtype(bulkQty)
	view.BulkDiscountPercentage = bulkPercentVal
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}
