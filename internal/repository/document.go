package repository

import (
	"context"

	"fleetdocs/internal/model"
)

// DocumentPatch is a partial document update. Nil fields are left untouched.
type DocumentPatch struct {
	Type       *model.DocumentType
	ExpiryDate *model.Date
	FileURL    *string
	Notes      *string
}

// DocumentRepository defines data access for documents using SQL queries only.
type DocumentRepository interface {
	// Create inserts a new document record. The caller provides required
	// fields (ID, timestamps); a document always references an existing
	// vehicle.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByVehicle returns all documents attached to a vehicle.
	ListByVehicle(ctx context.Context, vehicleID string) ([]model.Document, error)

	// Update applies a partial update. Returns sql.ErrNoRows if the
	// document does not exist.
	Update(ctx context.Context, id string, patch DocumentPatch) (*model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
