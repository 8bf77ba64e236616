package repository

import (
	"context"

	"fleetdocs/internal/model"
)

// VehiclePatch is a partial vehicle update. Nil fields are left untouched.
type VehiclePatch struct {
	RegistrationNumber *string
	OwnerName          *string
	OwnerMobile        *string
}

// VehicleRepository defines data access for vehicles using SQL queries only.
// No business logic here — strictly persistence operations, except for the
// registration-number uniqueness guard, which must share a transaction with
// the write it protects.
type VehicleRepository interface {
	// List returns the user's vehicles with their documents attached,
	// newest-created first. A non-empty search filters by case-insensitive
	// substring match on the registration number.
	List(ctx context.Context, userID, search string) ([]model.VehicleWithDocuments, error)

	// FindByID returns a vehicle with its documents, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.VehicleWithDocuments, error)

	// Create inserts a new vehicle. Returns ErrDuplicateRegistration if the
	// registration number is already taken by any vehicle.
	Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error)

	// CreateWithDocuments inserts a vehicle and all its documents in a
	// single transaction: either everything commits or nothing does.
	CreateWithDocuments(ctx context.Context, v *model.Vehicle, docs []model.Document) (*model.VehicleWithDocuments, error)

	// Update applies a partial update. When the patch carries a
	// registration number, the uniqueness check excludes the vehicle's own
	// row. Returns sql.ErrNoRows if the vehicle does not exist.
	Update(ctx context.Context, id string, patch VehiclePatch) (*model.Vehicle, error)

	// Delete removes a vehicle and all of its documents atomically.
	Delete(ctx context.Context, id string) error
}
