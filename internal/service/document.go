package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"fleetdocs/internal/model"
	"fleetdocs/internal/repository"
)

// CreateDocumentInput attaches a new document to an existing vehicle.
type CreateDocumentInput struct {
	VehicleID string `json:"vehicleId"`
	DocumentInput
}

// UpdateDocumentInput is a partial document update; nil fields stay unchanged.
type UpdateDocumentInput struct {
	Type       *model.DocumentType `json:"type"`
	ExpiryDate *model.Date         `json:"expiryDate"`
	FileURL    *string             `json:"fileUrl"`
	Notes      *string             `json:"notes"`
}

// DocumentService defines the document use cases. Ownership of a document is
// resolved transitively through its parent vehicle.
type DocumentService interface {
	// Create validates the conditional required fields and attaches the
	// document to the caller's vehicle.
	Create(ctx context.Context, userID string, in CreateDocumentInput) (*model.Document, error)

	// Get returns a document after the ownership check.
	Get(ctx context.Context, userID, id string) (*model.Document, error)

	// Update applies a partial update; the merged record must still satisfy
	// the per-type validation rules.
	Update(ctx context.Context, userID, id string, in UpdateDocumentInput) (*model.Document, error)

	// Delete removes a document by ID.
	Delete(ctx context.Context, userID, id string) error
}

type documentService struct {
	repo     repository.DocumentRepository
	vehicles repository.VehicleRepository
	now      func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(repo repository.DocumentRepository, vehicles repository.VehicleRepository) DocumentService {
	return &documentService{repo: repo, vehicles: vehicles, now: time.Now}
}

// requireVehicleOwned checks that the vehicle exists and belongs to the user.
func (s *documentService) requireVehicleOwned(ctx context.Context, userID, vehicleID string) error {
	v, err := s.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if v.UserID != userID {
		return ErrUnauthorized
	}
	return nil
}

// requireOwned loads a document and verifies the caller owns its parent
// vehicle. The document's existence is checked before ownership.
func (s *documentService) requireOwned(ctx context.Context, userID, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	v, err := s.vehicles.FindByID(ctx, doc.VehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if v.UserID != userID {
		return nil, ErrUnauthorized
	}
	return doc, nil
}

func (s *documentService) Create(ctx context.Context, userID string, in CreateDocumentInput) (*model.Document, error) {
	if in.VehicleID == "" {
		return nil, validationErr("vehicleId", "vehicle id is required")
	}
	in.ExpiryDate = normalizeExpiry(in.ExpiryDate)
	if verr := validateDocumentFields(in.Type, in.ExpiryDate, in.FileURL); verr != nil {
		return nil, verr
	}
	if err := s.requireVehicleOwned(ctx, userID, in.VehicleID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	doc := &model.Document{
		ID:         uuid.New().String(),
		VehicleID:  in.VehicleID,
		Type:       in.Type,
		ExpiryDate: in.ExpiryDate,
		FileURL:    in.FileURL,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return s.repo.Create(ctx, doc)
}

func (s *documentService) Get(ctx context.Context, userID, id string) (*model.Document, error) {
	return s.requireOwned(ctx, userID, id)
}

func (s *documentService) Update(ctx context.Context, userID, id string, in UpdateDocumentInput) (*model.Document, error) {
	existing, err := s.requireOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	// An empty-string expiry date in the patch is treated as omitted.
	in.ExpiryDate = normalizeExpiry(in.ExpiryDate)

	// Validate the record as it will look after the patch is applied.
	typ := existing.Type
	if in.Type != nil {
		typ = *in.Type
	}
	expiryDate := existing.ExpiryDate
	if in.ExpiryDate != nil {
		expiryDate = in.ExpiryDate
	}
	fileURL := existing.FileURL
	if in.FileURL != nil {
		fileURL = *in.FileURL
	}
	if verr := validateDocumentFields(typ, expiryDate, fileURL); verr != nil {
		return nil, verr
	}

	updated, err := s.repo.Update(ctx, id, repository.DocumentPatch{
		Type:       in.Type,
		ExpiryDate: in.ExpiryDate,
		FileURL:    in.FileURL,
		Notes:      in.Notes,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *documentService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.requireOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
