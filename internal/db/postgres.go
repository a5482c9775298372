package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Queries runs the link queries against PostgreSQL.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Migrate creates the links table and its index if they do not exist.
func (q *Queries) Migrate(ctx context.Context) error {
	_, err := q.db.Exec(ctx, schema("postgres.sql"))
	return err
}

const linkColumns = `id, name, url, description, tag, sort_order, created_at, updated_at`

const listLinks = `SELECT ` + linkColumns + `
FROM links
ORDER BY sort_order ASC, created_at ASC, id ASC`

func (q *Queries) ListLinks(ctx context.Context) ([]Link, error) {
	rows, err := q.db.Query(ctx, listLinks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Link{}
	for rows.Next() {
		var i Link
		if err := scanLink(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countLinks = `SELECT count(*) FROM links`

func (q *Queries) CountLinks(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRow(ctx, countLinks).Scan(&n)
	return n, err
}

const createLink = `INSERT INTO links (id, name, url, description, tag, sort_order, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
RETURNING ` + linkColumns

func (q *Queries) CreateLink(ctx context.Context, arg CreateLinkParams) (Link, error) {
	return createLinkWith(ctx, q.db, arg)
}

func createLinkWith(ctx context.Context, db DBTX, arg CreateLinkParams) (Link, error) {
	row := db.QueryRow(ctx, createLink,
		arg.ID,
		arg.Name,
		arg.URL,
		arg.Description,
		arg.Tag,
		arg.SortOrder,
		arg.CreatedAt,
	)
	var i Link
	err := scanLink(row, &i)
	return i, err
}

const deleteAllLinks = `DELETE FROM links`

// ImportLinks inserts every row in a single transaction, optionally
// deleting the existing rows first. Either all rows are stored or none.
func (q *Queries) ImportLinks(ctx context.Context, args []CreateLinkParams, replace bool) ([]Link, error) {
	items := make([]Link, 0, len(args))
	err := pgx.BeginFunc(ctx, q.db, func(tx pgx.Tx) error {
		if replace {
			if _, err := tx.Exec(ctx, deleteAllLinks); err != nil {
				return err
			}
		}
		for _, arg := range args {
			i, err := createLinkWith(ctx, tx, arg)
			if err != nil {
				return err
			}
			items = append(items, i)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

const updateLink = `UPDATE links SET
    name        = COALESCE($2, name),
    url         = COALESCE($3, url),
    description = COALESCE($4, description),
    tag         = CASE WHEN $5::boolean THEN $6::text ELSE tag END,
    sort_order  = COALESCE($7, sort_order),
    updated_at  = GREATEST($8::bigint, updated_at + 1)
WHERE id = $1
RETURNING ` + linkColumns

func (q *Queries) UpdateLink(ctx context.Context, arg UpdateLinkParams) (Link, error) {
	row := q.db.QueryRow(ctx, updateLink,
		arg.ID,
		arg.Name,
		arg.URL,
		arg.Description,
		arg.SetTag,
		arg.Tag,
		arg.SortOrder,
		arg.UpdatedAt,
	)
	var i Link
	if err := scanLink(row, &i); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Link{}, ErrNoRows
		}
		return Link{}, err
	}
	return i, nil
}

const deleteLink = `DELETE FROM links WHERE id = $1`

func (q *Queries) DeleteLink(ctx context.Context, id string) error {
	_, err := q.db.Exec(ctx, deleteLink, id)
	return err
}

func scanLink(row pgx.Row, i *Link) error {
	return row.Scan(
		&i.ID,
		&i.Name,
		&i.URL,
		&i.Description,
		&i.Tag,
		&i.SortOrder,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
}
