package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wellywell/orderboard/internal/types"
)

type Database struct {
	pool  *pgxpool.Pool
	newID func() string
}

func NewDatabase(connString string) (*Database, error) {

	err := Migrate(connString)

	if err != nil {
		return nil, fmt.Errorf("failed to migrate %w", err)
	}

	ctx := context.Background()
	p, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	return &Database{
		pool:  p,
		newID: uuid.NewString,
	}, nil
}

func (d *Database) Close() {
	d.pool.Close()
}

func (d *Database) AddOrder(ctx context.Context, o types.NewOrder) (*types.Order, error) {

	query := `
		INSERT INTO orders (id, name, room, order_text, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, name, room, order_text, status
		`
	rows, err := d.pool.Query(ctx, query, d.newID(), o.Name, o.Room, o.Text, types.PendingStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to add order %w", err)
	}

	order, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[types.Order])
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return nil, fmt.Errorf("%w", types.ErrOrderExists)
		}
		return nil, fmt.Errorf("failed to add order %w", err)
	}
	return &order, nil
}

func (d *Database) ListOrders(ctx context.Context) ([]types.Order, error) {
	query := `
		SELECT id, created_at, name, room, order_text, status
		FROM orders
		ORDER BY seq
	`
	rows, err := d.pool.Query(ctx, query)
	if err != nil {
		return []types.Order{}, fmt.Errorf("failed collecting rows %w", err)
	}

	orders, err := pgx.CollectRows(rows, pgx.RowToStructByName[types.Order])
	if err != nil {
		return []types.Order{}, fmt.Errorf("failed unpacking rows %w", err)
	}
	return orders, nil
}

// MarkDone only touches a pending order; a miss is resolved into
// not-found or already-done by a second lookup.
func (d *Database) MarkDone(ctx context.Context, id string) (*types.Order, error) {
	query := `
		UPDATE orders
		SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING id, created_at, name, room, order_text, status`

	rows, err := d.pool.Query(ctx, query, types.DoneStatus, id, types.PendingStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to update order %w", err)
	}

	order, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[types.Order])
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to update order %w", err)
	}

	var status types.Status
	row := d.pool.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, id)
	if err := row.Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", types.ErrOrderNotFound, id)
		}
		return nil, fmt.Errorf("unexpected DB error %w", err)
	}
	return nil, fmt.Errorf("%w: %s", types.ErrOrderAlreadyDone, id)
}

func (d *Database) UpsertUser(ctx context.Context, u types.User) (*types.User, error) {
	query := `
		INSERT INTO users (name, job, gender)
		VALUES ($1, $2, $3)
		ON CONFLICT(name)
		DO UPDATE SET job = EXCLUDED.job, gender = EXCLUDED.gender
		RETURNING name, job, gender, to_char(join_date, 'YYYY-MM-DD') AS join_date
	`
	rows, err := d.pool.Query(ctx, query, u.Name, u.Job, u.Gender)
	if err != nil {
		return nil, fmt.Errorf("failed to save user %w", err)
	}

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[types.User])
	if err != nil {
		return nil, fmt.Errorf("failed to save user %w", err)
	}
	return &user, nil
}
