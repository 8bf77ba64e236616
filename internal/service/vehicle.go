package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"fleetdocs/internal/expiry"
	"fleetdocs/internal/model"
	"fleetdocs/internal/repository"
)

// VehicleInput carries the caller-supplied fields for creating a vehicle.
// The owning user is never part of the input; it is taken from the session.
type VehicleInput struct {
	RegistrationNumber string `json:"registrationNumber"`
	OwnerName          string `json:"ownerName"`
	OwnerMobile        string `json:"ownerMobile"`
}

// DocumentInput is a document embedded in a bulk vehicle creation; the
// vehicle id is assigned server-side.
type DocumentInput struct {
	Type       model.DocumentType `json:"type"`
	ExpiryDate *model.Date        `json:"expiryDate"`
	FileURL    string             `json:"fileUrl"`
	Notes      string             `json:"notes"`
}

// VehicleWithDocumentsInput creates a vehicle and its documents in one request.
type VehicleWithDocumentsInput struct {
	VehicleInput
	Documents []DocumentInput `json:"documents"`
}

// UpdateVehicleInput is a partial vehicle update; nil fields stay unchanged.
type UpdateVehicleInput struct {
	RegistrationNumber *string `json:"registrationNumber"`
	OwnerName          *string `json:"ownerName"`
	OwnerMobile        *string `json:"ownerMobile"`
}

// VehicleService defines the vehicle use cases. Every operation that targets
// an existing vehicle verifies it exists first and then that the caller owns
// it, in that order.
type VehicleService interface {
	// List returns the user's vehicles with documents, optionally filtered
	// by a registration-number substring.
	List(ctx context.Context, userID, search string) ([]model.VehicleWithDocuments, error)

	// Get returns one vehicle with its documents after the ownership check.
	Get(ctx context.Context, userID, id string) (*model.VehicleWithDocuments, error)

	// Create registers a new vehicle for the user.
	Create(ctx context.Context, userID string, in VehicleInput) (*model.Vehicle, error)

	// CreateWithDocuments registers a vehicle plus its documents atomically.
	// Every document is validated before any row is written.
	CreateWithDocuments(ctx context.Context, userID string, in VehicleWithDocumentsInput) (*model.VehicleWithDocuments, error)

	// Update applies a partial update after the ownership check.
	Update(ctx context.Context, userID, id string, in UpdateVehicleInput) (*model.Vehicle, error)

	// Delete removes the vehicle and all of its documents.
	Delete(ctx context.Context, userID, id string) error

	// Alerts computes the expiry alert feed over the user's whole fleet.
	Alerts(ctx context.Context, userID string) (*model.AlertSummary, error)
}

type vehicleService struct {
	repo repository.VehicleRepository
	now  func() time.Time
}

// NewVehicleService constructs a new VehicleService.
func NewVehicleService(repo repository.VehicleRepository) VehicleService {
	return &vehicleService{repo: repo, now: time.Now}
}

func (s *vehicleService) List(ctx context.Context, userID, search string) ([]model.VehicleWithDocuments, error) {
	return s.repo.List(ctx, userID, search)
}

// requireOwned loads a vehicle and runs the access guard: existence first,
// then ownership.
func (s *vehicleService) requireOwned(ctx context.Context, userID, id string) (*model.VehicleWithDocuments, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if v.UserID != userID {
		return nil, ErrUnauthorized
	}
	return v, nil
}

func (s *vehicleService) Get(ctx context.Context, userID, id string) (*model.VehicleWithDocuments, error) {
	return s.requireOwned(ctx, userID, id)
}

func (s *vehicleService) Create(ctx context.Context, userID string, in VehicleInput) (*model.Vehicle, error) {
	if verr := validateVehicleFields(in); verr != nil {
		return nil, verr
	}

	now := s.now().UTC()
	v := &model.Vehicle{
		ID:                 uuid.New().String(),
		RegistrationNumber: in.RegistrationNumber,
		OwnerName:          in.OwnerName,
		OwnerMobile:        in.OwnerMobile,
		UserID:             userID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	return s.repo.Create(ctx, v)
}

func (s *vehicleService) CreateWithDocuments(ctx context.Context, userID string, in VehicleWithDocumentsInput) (*model.VehicleWithDocuments, error) {
	if verr := validateVehicleFields(in.VehicleInput); verr != nil {
		return nil, verr
	}
	// Validate every document before anything touches the database so a
	// failure in the middle of the batch cannot leave partial state.
	for i, d := range in.Documents {
		in.Documents[i].ExpiryDate = normalizeExpiry(d.ExpiryDate)
		if verr := validateDocumentFields(d.Type, in.Documents[i].ExpiryDate, d.FileURL); verr != nil {
			return nil, verr
		}
	}

	now := s.now().UTC()
	v := &model.Vehicle{
		ID:                 uuid.New().String(),
		RegistrationNumber: in.RegistrationNumber,
		OwnerName:          in.OwnerName,
		OwnerMobile:        in.OwnerMobile,
		UserID:             userID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	docs := make([]model.Document, 0, len(in.Documents))
	for _, d := range in.Documents {
		docs = append(docs, model.Document{
			ID:         uuid.New().String(),
			Type:       d.Type,
			ExpiryDate: d.ExpiryDate,
			FileURL:    d.FileURL,
			Notes:      d.Notes,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return s.repo.CreateWithDocuments(ctx, v, docs)
}

func (s *vehicleService) Update(ctx context.Context, userID, id string, in UpdateVehicleInput) (*model.Vehicle, error) {
	if _, err := s.requireOwned(ctx, userID, id); err != nil {
		return nil, err
	}
	if in.RegistrationNumber != nil && *in.RegistrationNumber == "" {
		return nil, validationErr("registrationNumber", "registration number is required")
	}
	if in.OwnerName != nil && *in.OwnerName == "" {
		return nil, validationErr("ownerName", "owner name is required")
	}
	if in.OwnerMobile != nil && len(*in.OwnerMobile) < 10 {
		return nil, validationErr("ownerMobile", "valid mobile number is required")
	}

	updated, err := s.repo.Update(ctx, id, repository.VehiclePatch{
		RegistrationNumber: in.RegistrationNumber,
		OwnerName:          in.OwnerName,
		OwnerMobile:        in.OwnerMobile,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *vehicleService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.requireOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Alerts recomputes the feed from the current snapshot; nothing is stored.
func (s *vehicleService) Alerts(ctx context.Context, userID string) (*model.AlertSummary, error) {
	vehicles, err := s.repo.List(ctx, userID, "")
	if err != nil {
		return nil, err
	}
	summary := expiry.BuildSummary(vehicles, s.now())
	return &summary, nil
}
