package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteQueries runs the link queries against an embedded SQLite database.
type SQLiteQueries struct {
	db *sql.DB
}

// OpenSQLite opens the database at path (":memory:" for a private
// in-memory database). The pool is limited to one connection since an
// in-memory database exists per connection.
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	}
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)
	return conn, nil
}

func NewSQLite(db *sql.DB) *SQLiteQueries {
	return &SQLiteQueries{db: db}
}

// Migrate creates the links table and its index if they do not exist.
func (q *SQLiteQueries) Migrate(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, schema("sqlite.sql"))
	return err
}

func (q *SQLiteQueries) ListLinks(ctx context.Context) ([]Link, error) {
	rows, err := q.db.QueryContext(ctx, listLinks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Link{}
	for rows.Next() {
		var i Link
		if err := scanSQLiteLink(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (q *SQLiteQueries) CountLinks(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countLinks).Scan(&n)
	return n, err
}

const sqliteCreateLink = `INSERT INTO links (id, name, url, description, tag, sort_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + linkColumns

type sqliteRunner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (q *SQLiteQueries) CreateLink(ctx context.Context, arg CreateLinkParams) (Link, error) {
	return sqliteCreateLinkWith(ctx, q.db, arg)
}

func sqliteCreateLinkWith(ctx context.Context, db sqliteRunner, arg CreateLinkParams) (Link, error) {
	row := db.QueryRowContext(ctx, sqliteCreateLink,
		arg.ID,
		arg.Name,
		arg.URL,
		arg.Description,
		arg.Tag,
		arg.SortOrder,
		arg.CreatedAt,
		arg.CreatedAt,
	)
	var i Link
	err := scanSQLiteLink(row, &i)
	return i, err
}

// ImportLinks inserts every row in a single transaction, optionally
// deleting the existing rows first.
func (q *SQLiteQueries) ImportLinks(ctx context.Context, args []CreateLinkParams, replace bool) (_ []Link, err error) {
	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if replace {
		if _, err = tx.ExecContext(ctx, deleteAllLinks); err != nil {
			return nil, err
		}
	}

	items := make([]Link, 0, len(args))
	for _, arg := range args {
		var i Link
		i, err = sqliteCreateLinkWith(ctx, tx, arg)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return items, nil
}

const sqliteUpdateLink = `UPDATE links SET
    name        = COALESCE(?, name),
    url         = COALESCE(?, url),
    description = COALESCE(?, description),
    tag         = CASE WHEN ? THEN ? ELSE tag END,
    sort_order  = COALESCE(?, sort_order),
    updated_at  = MAX(?, updated_at + 1)
WHERE id = ?
RETURNING ` + linkColumns

func (q *SQLiteQueries) UpdateLink(ctx context.Context, arg UpdateLinkParams) (Link, error) {
	row := q.db.QueryRowContext(ctx, sqliteUpdateLink,
		arg.Name,
		arg.URL,
		arg.Description,
		arg.SetTag,
		arg.Tag,
		arg.SortOrder,
		arg.UpdatedAt,
		arg.ID,
	)
	var i Link
	if err := scanSQLiteLink(row, &i); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Link{}, ErrNoRows
		}
		return Link{}, err
	}
	return i, nil
}

const sqliteDeleteLink = `DELETE FROM links WHERE id = ?`

func (q *SQLiteQueries) DeleteLink(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, sqliteDeleteLink, id)
	return err
}

type sqlScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteLink(row sqlScanner, i *Link) error {
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
