package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"fleetdocs/internal/model"
	"fleetdocs/internal/repository"
)

const documentColumns = "id, vehicle_id, type, expiry_date, file_url, notes, created_at, updated_at"

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// dateArg converts an optional calendar date to a SQL DATE bind value.
func dateArg(d *model.Date) any {
	if d == nil {
		return nil
	}
	return d.Format("2006-01-02")
}

type docScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row docScanner) (*model.Document, error) {
	var (
		d      model.Document
		expiry sql.NullTime
	)
	if err := row.Scan(
		&d.ID,
		&d.VehicleID,
		&d.Type,
		&expiry,
		&d.FileURL,
		&d.Notes,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if expiry.Valid {
		t := expiry.Time
		d.ExpiryDate = &model.Date{Time: t}
	}
	return &d, nil
}

func listDocuments(ctx context.Context, q querier, vehicleID string) ([]model.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE vehicle_id = $1
		ORDER BY created_at, id
	`
	rows, err := q.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

func insertDocument(ctx context.Context, q querier, doc *model.Document) (*model.Document, error) {
	const query = `
		INSERT INTO documents (id, vehicle_id, type, expiry_date, file_url, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + documentColumns + `
	`
	return scanDocument(q.QueryRowContext(ctx, query,
		doc.ID,
		doc.VehicleID,
		doc.Type,
		dateArg(doc.ExpiryDate),
		doc.FileURL,
		doc.Notes,
		doc.CreatedAt,
		doc.UpdatedAt,
	))
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	return insertDocument(ctx, r.db, doc)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// ListByVehicle returns every document attached to the vehicle.
func (r *DocumentPostgres) ListByVehicle(ctx context.Context, vehicleID string) ([]model.Document, error) {
	return listDocuments(ctx, r.db, vehicleID)
}

// Update applies a partial update and returns the stored record.
func (r *DocumentPostgres) Update(ctx context.Context, id string, patch repository.DocumentPatch) (*model.Document, error) {
	sets := []string{"updated_at = now()"}
	args := []any{}
	n := 1
	add := func(col string, val any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, n))
		args = append(args, val)
		n++
	}
	if patch.Type != nil {
		add("type", *patch.Type)
	}
	if patch.ExpiryDate != nil {
		add("expiry_date", dateArg(patch.ExpiryDate))
	}
	if patch.FileURL != nil {
		add("file_url", *patch.FileURL)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE documents SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), n, documentColumns)

	return scanDocument(r.db.QueryRowContext(ctx, q, args...))
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
