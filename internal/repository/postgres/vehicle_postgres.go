package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"fleetdocs/internal/model"
	"fleetdocs/internal/repository"
)

const vehicleColumns = "id, registration_number, owner_name, owner_mobile, user_id, created_at, updated_at"

// VehiclePostgres is a PostgreSQL implementation of repository.VehicleRepository.
// It uses database/sql with parameterized queries. The registration-number
// uniqueness guard runs inside the same transaction as the write it protects;
// the UNIQUE constraint on the column is the authoritative backstop for
// concurrent writers that both pass the pre-check.
type VehiclePostgres struct {
	db *sql.DB
}

// NewVehiclePostgres creates a new VehiclePostgres repository.
func NewVehiclePostgres(db *sql.DB) *VehiclePostgres {
	return &VehiclePostgres{db: db}
}

var _ repository.VehicleRepository = (*VehiclePostgres)(nil)

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func scanVehicle(row *sql.Row) (*model.Vehicle, error) {
	var v model.Vehicle
	if err := row.Scan(
		&v.ID,
		&v.RegistrationNumber,
		&v.OwnerName,
		&v.OwnerMobile,
		&v.UserID,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

// checkRegistrationFree returns ErrDuplicateRegistration when another vehicle
// already holds the registration number. excludeID skips the row being
// updated so a vehicle can keep its own number.
func checkRegistrationFree(ctx context.Context, q querier, registrationNumber, excludeID string) error {
	const qDup = `SELECT id FROM vehicles WHERE registration_number = $1 LIMIT 1`
	var existingID string
	err := q.QueryRowContext(ctx, qDup, registrationNumber).Scan(&existingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if excludeID != "" && existingID == excludeID {
		return nil
	}
	return repository.ErrDuplicateRegistration
}

// List returns the user's vehicles newest-created first with documents attached.
func (r *VehiclePostgres) List(ctx context.Context, userID, search string) ([]model.VehicleWithDocuments, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	args := []any{userID}
	if search != "" {
		query = `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE user_id = $1 AND registration_number ILIKE '%' || $2 || '%'
		ORDER BY created_at DESC, id DESC
	`
		args = append(args, search)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.VehicleWithDocuments, 0)
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(
			&v.ID,
			&v.RegistrationNumber,
			&v.OwnerName,
			&v.OwnerMobile,
			&v.UserID,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, model.VehicleWithDocuments{Vehicle: v, Documents: []model.Document{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		docs, err := listDocuments(ctx, r.db, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Documents = docs
	}

	return items, nil
}

// FindByID fetches a single vehicle with its documents.
func (r *VehiclePostgres) FindByID(ctx context.Context, id string) (*model.VehicleWithDocuments, error) {
	q := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	v, err := scanVehicle(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}

	docs, err := listDocuments(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return &model.VehicleWithDocuments{Vehicle: *v, Documents: docs}, nil
}

// Create inserts a new vehicle row guarded by the uniqueness pre-check.
func (r *VehiclePostgres) Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	out, err := insertVehicle(ctx, tx, v)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateWithDocuments inserts the vehicle and every document in one
// transaction. Any failure rolls back the whole batch.
func (r *VehiclePostgres) CreateWithDocuments(ctx context.Context, v *model.Vehicle, docs []model.Document) (*model.VehicleWithDocuments, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	vehicle, err := insertVehicle(ctx, tx, v)
	if err != nil {
		return nil, err
	}

	created := make([]model.Document, 0, len(docs))
	for i := range docs {
		docs[i].VehicleID = vehicle.ID
		doc, err := insertDocument(ctx, tx, &docs[i])
		if err != nil {
			return nil, err
		}
		created = append(created, *doc)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &model.VehicleWithDocuments{Vehicle: *vehicle, Documents: created}, nil
}

func insertVehicle(ctx context.Context, tx *sql.Tx, v *model.Vehicle) (*model.Vehicle, error) {
	if err := checkRegistrationFree(ctx, tx, v.RegistrationNumber, ""); err != nil {
		return nil, err
	}

	const q = `
		INSERT INTO vehicles (id, registration_number, owner_name, owner_mobile, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + vehicleColumns + `
	`
	out, err := scanVehicle(tx.QueryRowContext(ctx, q,
		v.ID,
		v.RegistrationNumber,
		v.OwnerName,
		v.OwnerMobile,
		v.UserID,
		v.CreatedAt,
		v.UpdatedAt,
	))
	if isUniqueViolation(err) {
		return nil, repository.ErrDuplicateRegistration
	}
	return out, err
}

// Update applies a partial update, re-checking uniqueness when the patch
// carries a registration number (excluding the vehicle's own row).
func (r *VehiclePostgres) Update(ctx context.Context, id string, patch repository.VehiclePatch) (*model.Vehicle, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if patch.RegistrationNumber != nil {
		if err := checkRegistrationFree(ctx, tx, *patch.RegistrationNumber, id); err != nil {
			return nil, err
		}
	}

	sets := []string{"updated_at = now()"}
	args := []any{}
	n := 1
	add := func(col string, val any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, n))
		args = append(args, val)
		n++
	}
	if patch.RegistrationNumber != nil {
		add("registration_number", *patch.RegistrationNumber)
	}
	if patch.OwnerName != nil {
		add("owner_name", *patch.OwnerName)
	}
	if patch.OwnerMobile != nil {
		add("owner_mobile", *patch.OwnerMobile)
	}
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE vehicles SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), n, vehicleColumns)

	out, err := scanVehicle(tx.QueryRowContext(ctx, q, args...))
	if isUniqueViolation(err) {
		return nil, repository.ErrDuplicateRegistration
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the vehicle and its documents in one transaction. The
// explicit document delete keeps the cascade visible even though the schema
// also declares ON DELETE CASCADE.
func (r *VehiclePostgres) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE vehicle_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}
