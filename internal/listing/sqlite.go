package listing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const selectColumns = `id, title, description, image, price, location, country`

const insertSQL = `INSERT INTO listings (id, title, description, image, price, location, country)
	VALUES (:id, :title, :description, :image, :price, :location, :country)`

// SQLRepository stores listings in the SQLite listings table.
type SQLRepository struct {
	db *sqlx.DB
}

// NewSQLRepository creates a repository over an open SQLite database.
func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: sqlx.NewDb(db, "sqlite3")}
}

// List returns every listing in insertion order.
func (r *SQLRepository) List(ctx context.Context) ([]*Listing, error) {
	listings := []*Listing{}
	query := fmt.Sprintf("SELECT %s FROM listings ORDER BY rowid", selectColumns)
	if err := r.db.SelectContext(ctx, &listings, query); err != nil {
		return nil, fmt.Errorf("listing listings: %w", err)
	}
	return listings, nil
}

// Get returns a listing by its UUID.
func (r *SQLRepository) Get(ctx context.Context, id string) (*Listing, error) {
	if err := validateUUID(id); err != nil {
		return nil, err
	}

	var l Listing
	query := fmt.Sprintf("SELECT %s FROM listings WHERE id = ?", selectColumns)
	err := r.db.GetContext(ctx, &l, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying listing %s: %w", id, err)
	}

	return &l, nil
}

// Create inserts a new listing with a random UUID.
func (r *SQLRepository) Create(ctx context.Context, f Fields) (*Listing, error) {
	l := newListing(f)
	l.ID = uuid.NewString()

	if _, err := r.db.NamedExecContext(ctx, insertSQL, l); err != nil {
		return nil, fmt.Errorf("inserting listing: %w", err)
	}

	return l, nil
}

// Update sets the supplied columns and returns the updated listing.
func (r *SQLRepository) Update(ctx context.Context, id string, f Fields) (*Listing, error) {
	if err := validateUUID(id); err != nil {
		return nil, err
	}

	sets, args := updateColumns(f)
	if len(sets) == 0 {
		return r.Get(ctx, id)
	}
	args["id"] = id

	query := fmt.Sprintf("UPDATE listings SET %s WHERE id = :id", strings.Join(sets, ", "))
	result, err := r.db.NamedExecContext(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("updating listing %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}

	return r.Get(ctx, id)
}

// Delete removes a listing. A missing row is not an error.
func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	if err := validateUUID(id); err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, "DELETE FROM listings WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting listing %s: %w", id, err)
	}
	return nil
}

// Ping checks the database handle is usable.
func (r *SQLRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging sqlite: %w", err)
	}
	return nil
}

// Close closes the database.
func (r *SQLRepository) Close(_ context.Context) error {
	return r.db.Close()
}

// updateColumns returns SET clauses and named args for the supplied fields.
func updateColumns(f Fields) ([]string, map[string]interface{}) {
	var sets []string
	args := map[string]interface{}{}

	add := func(col string, v interface{}) {
		sets = append(sets, fmt.Sprintf("%s = :%s", col, col))
		args[col] = v
	}

	if f.Title != nil {
		add("title", *f.Title)
	}
	if f.Description != nil {
		add("description", *f.Description)
	}
	if f.Image != nil {
		add("image", *f.Image)
	}
	if f.Price != nil {
		add("price", *f.Price)
	} else if f.ClearPrice {
		add("price", nil)
	}
	if f.Location != nil {
		add("location", *f.Location)
	}
	if f.Country != nil {
		add("country", *f.Country)
	}

	return sets, args
}

func validateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return nil
}
