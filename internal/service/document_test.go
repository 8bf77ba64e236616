package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"fleetdocs/internal/model"
	"fleetdocs/internal/repository"
	repoMocks "fleetdocs/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDocumentServiceForTest(repo repository.DocumentRepository, vehicles repository.VehicleRepository, now time.Time) *documentService {
	return &documentService{repo: repo, vehicles: vehicles, now: func() time.Time { return now }}
}

func TestDocumentService_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	expiry := model.NewDate(2027, 1, 15)

	tests := []struct {
		name       string
		in         CreateDocumentInput
		setupMocks func(docs *repoMocks.MockDocumentRepository, vehicles *repoMocks.MockVehicleRepository)
		wantErr    error
		wantField  string
	}{
		{
			name: "insurance with expiry date",
			in: CreateDocumentInput{
				VehicleID:     "v-1",
				DocumentInput: DocumentInput{Type: model.DocumentTypeInsurance, ExpiryDate: &expiry},
			},
			setupMocks: func(docs *repoMocks.MockDocumentRepository, vehicles *repoMocks.MockVehicleRepository) {
				vehicles.On("FindByID", ctx, "v-1").Return(ownedVehicle("v-1", "user-1"), nil)
				docs.On("Create", ctx, mock.MatchedBy(func(d *model.Document) bool {
					return d.ID != "" && d.VehicleID == "v-1" && d.Type == model.DocumentTypeInsurance
				})).Return(&model.Document{ID: "gen-id"}, nil)
			},
		},
		{
			name: "insurance without expiry date",
			in: CreateDocumentInput{
				VehicleID:     "v-1",
				DocumentInput: DocumentInput{Type: model.DocumentTypeInsurance},
			},
			setupMocks: func(docs *repoMocks.MockDocumentRepository, vehicles *repoMocks.MockVehicleRepository) {},
			wantField:  "expiryDate",
		},
		{
			name: "owner book without file",
			in: CreateDocumentInput{
				VehicleID:     "v-1",
				DocumentInput: DocumentInput{Type: model.DocumentTypeOwnerBook},
			},
			setupMocks: func(docs *repoMocks.MockDocumentRepository, vehicles *repoMocks.MockVehicleRepository) {},
			wantField:  "fileUrl",
		},
		{
			name: "owner book with file and no expiry date",
			in: CreateDocumentInput{
				VehicleID:     "v-1",
				DocumentInput: DocumentInput{Type: model.DocumentTypeOwnerBook, FileURL: "/uploads/book.pdf"},
			},
			setupMocks: func(docs *repoMocks.MockDocumentRepository, vehicles *repoMocks.MockVehicleRepository) {
				vehicles.On("FindByID", ctx, "v-1").Return(ownedVehicle("v-1", "user-1"), nil)
				docs.On("Create", ctx, mock.Anything).Return(&model.Document{ID: "gen-id"}, nil)
			},
		},
		{
			name: "unknown type",
			in: CreateDocumentInput{
				VehicleID:     "v-1",
				DocumentInput: DocumentInput{Type: "warranty", ExpiryDate: &expiry},
			},
			setupMocks: func(docs *repoMocks.MockDocumentRepository, vehicles *repoMocks.MockVehicleRepository) {},
			wantField:  "type",
		},
		{
			name: "missing vehicle id",
			in: CreateDocumentInput{
				DocumentInput: DocumentInput{Type: model.DocumentTypeInsurance, ExpiryDate: &expiry},
			},
			setupMocks: func(docs *repoMocks.MockDocumentRepository, vehicles *repoMocks.MockVehicleRepository) {},
			wantField:  "vehicleId",
		},
		{
			name: "vehicle does not exist",
			in: CreateDocumentInput{
				VehicleID:     "v-404",
				DocumentInput: DocumentInput{Type: model.DocumentTypeInsurance, ExpiryDate: &expiry},
			},
			setupMocks: func(docs *repoMocks.MockDocumentRepository, vehicles *repoMocks.MockVehicleRepository) {
				vehicles.On("FindByID", ctx, "v-404").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "vehicle owned by someone else",
			in: CreateDocumentInput{
				VehicleID:     "v-1",
				DocumentInput: DocumentInput{Type: model.DocumentTypeInsurance, ExpiryDate: &expiry},
			},
			setupMocks: func(docs *repoMocks.MockDocumentRepository, vehicles *repoMocks.MockVehicleRepository) {
				vehicles.On("FindByID", ctx, "v-1").Return(ownedVehicle("v-1", "other-user"), nil)
			},
			wantErr: ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockDocs := new(repoMocks.MockDocumentRepository)
			mockVehicles := new(repoMocks.MockVehicleRepository)
			tt.setupMocks(mockDocs, mockVehicles)
			svc := newDocumentServiceForTest(mockDocs, mockVehicles, now)

			doc, err := svc.Create(ctx, "user-1", tt.in)

			switch {
			case tt.wantField != "":
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Field)
				mockDocs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				mockDocs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			default:
				require.NoError(t, err)
				assert.Equal(t, "gen-id", doc.ID)
			}
			mockDocs.AssertExpectations(t)
			mockVehicles.AssertExpectations(t)
		})
	}
}

// An empty-string expiryDate decodes to a zero-valued Date rather than nil,
// so it must be caught by validation and never stored as 0001-01-01.
func TestDocumentService_Create_EmptyExpiryDateJSON(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("insurance with empty expiry date fails validation", func(t *testing.T) {
		var in CreateDocumentInput
		body := `{"vehicleId":"v-1","type":"insurance","expiryDate":"","fileUrl":"/uploads/policy.pdf"}`
		require.NoError(t, json.Unmarshal([]byte(body), &in))
		require.NotNil(t, in.ExpiryDate)
		require.True(t, in.ExpiryDate.IsZero())

		mockDocs := new(repoMocks.MockDocumentRepository)
		mockVehicles := new(repoMocks.MockVehicleRepository)
		svc := newDocumentServiceForTest(mockDocs, mockVehicles, now)

		_, err := svc.Create(ctx, "user-1", in)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "expiryDate", verr.Field)
		mockDocs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("owner book with empty expiry date stores no expiry", func(t *testing.T) {
		var in CreateDocumentInput
		body := `{"vehicleId":"v-1","type":"owner_book","expiryDate":"","fileUrl":"/uploads/book.pdf"}`
		require.NoError(t, json.Unmarshal([]byte(body), &in))

		mockDocs := new(repoMocks.MockDocumentRepository)
		mockVehicles := new(repoMocks.MockVehicleRepository)
		mockVehicles.On("FindByID", ctx, "v-1").Return(ownedVehicle("v-1", "user-1"), nil)
		mockDocs.On("Create", ctx, mock.MatchedBy(func(d *model.Document) bool {
			return d.ExpiryDate == nil
		})).Return(&model.Document{ID: "gen-id"}, nil)
		svc := newDocumentServiceForTest(mockDocs, mockVehicles, now)

		doc, err := svc.Create(ctx, "user-1", in)
		require.NoError(t, err)
		assert.Equal(t, "gen-id", doc.ID)
		mockDocs.AssertExpectations(t)
	})
}

func TestDocumentService_Get_TransitiveOwnership(t *testing.T) {
	ctx := context.Background()
	doc := &model.Document{ID: "d-1", VehicleID: "v-1", Type: model.DocumentTypeTax}

	t.Run("missing document is not found", func(t *testing.T) {
		mockDocs := new(repoMocks.MockDocumentRepository)
		mockVehicles := new(repoMocks.MockVehicleRepository)
		mockDocs.On("FindByID", ctx, "d-1").Return(nil, sql.ErrNoRows)

		svc := newDocumentServiceForTest(mockDocs, mockVehicles, time.Now())
		_, err := svc.Get(ctx, "user-1", "d-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("parent vehicle gone reads as unauthorized", func(t *testing.T) {
		mockDocs := new(repoMocks.MockDocumentRepository)
		mockVehicles := new(repoMocks.MockVehicleRepository)
		mockDocs.On("FindByID", ctx, "d-1").Return(doc, nil)
		mockVehicles.On("FindByID", ctx, "v-1").Return(nil, sql.ErrNoRows)

		svc := newDocumentServiceForTest(mockDocs, mockVehicles, time.Now())
		_, err := svc.Get(ctx, "user-1", "d-1")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("parent vehicle owned by someone else", func(t *testing.T) {
		mockDocs := new(repoMocks.MockDocumentRepository)
		mockVehicles := new(repoMocks.MockVehicleRepository)
		mockDocs.On("FindByID", ctx, "d-1").Return(doc, nil)
		mockVehicles.On("FindByID", ctx, "v-1").Return(ownedVehicle("v-1", "other-user"), nil)

		svc := newDocumentServiceForTest(mockDocs, mockVehicles, time.Now())
		_, err := svc.Get(ctx, "user-1", "d-1")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("owned through the parent vehicle", func(t *testing.T) {
		mockDocs := new(repoMocks.MockDocumentRepository)
		mockVehicles := new(repoMocks.MockVehicleRepository)
		mockDocs.On("FindByID", ctx, "d-1").Return(doc, nil)
		mockVehicles.On("FindByID", ctx, "v-1").Return(ownedVehicle("v-1", "user-1"), nil)

		svc := newDocumentServiceForTest(mockDocs, mockVehicles, time.Now())
		got, err := svc.Get(ctx, "user-1", "d-1")
		require.NoError(t, err)
		assert.Equal(t, "d-1", got.ID)
	})
}

func TestDocumentService_Update(t *testing.T) {
	ctx := context.Background()
	expiry := model.NewDate(2027, 1, 15)
	existing := &model.Document{
		ID:         "d-1",
		VehicleID:  "v-1",
		Type:       model.DocumentTypeInsurance,
		ExpiryDate: &expiry,
		FileURL:    "/uploads/old.pdf",
	}

	setup := func() (*repoMocks.MockDocumentRepository, *repoMocks.MockVehicleRepository, *documentService) {
		mockDocs := new(repoMocks.MockDocumentRepository)
		mockVehicles := new(repoMocks.MockVehicleRepository)
		mockDocs.On("FindByID", ctx, "d-1").Return(existing, nil)
		mockVehicles.On("FindByID", ctx, "v-1").Return(ownedVehicle("v-1", "user-1"), nil)
		return mockDocs, mockVehicles, newDocumentServiceForTest(mockDocs, mockVehicles, time.Now())
	}

	t.Run("merged record is validated", func(t *testing.T) {
		// Switching to owner_book while clearing the file must fail even
		// though each field change is fine on its own.
		mockDocs, _, svc := setup()
		ownerBook := model.DocumentTypeOwnerBook
		empty := ""

		_, err := svc.Update(ctx, "user-1", "d-1", UpdateDocumentInput{
			Type:    &ownerBook,
			FileURL: &empty,
		})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "fileUrl", verr.Field)
		mockDocs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("type change keeps the existing expiry date", func(t *testing.T) {
		mockDocs, _, svc := setup()
		tax := model.DocumentTypeTax
		mockDocs.On("Update", ctx, "d-1", mock.MatchedBy(func(p repository.DocumentPatch) bool {
			return p.Type != nil && *p.Type == tax && p.ExpiryDate == nil
		})).Return(&model.Document{ID: "d-1", Type: tax}, nil)

		got, err := svc.Update(ctx, "user-1", "d-1", UpdateDocumentInput{Type: &tax})

		require.NoError(t, err)
		assert.Equal(t, tax, got.Type)
		mockDocs.AssertExpectations(t)
	})

	t.Run("zero-valued expiry date in the patch is treated as omitted", func(t *testing.T) {
		mockDocs, _, svc := setup()
		mockDocs.On("Update", ctx, "d-1", mock.MatchedBy(func(p repository.DocumentPatch) bool {
			return p.ExpiryDate == nil
		})).Return(existing, nil)

		_, err := svc.Update(ctx, "user-1", "d-1", UpdateDocumentInput{ExpiryDate: &model.Date{}})

		require.NoError(t, err)
		mockDocs.AssertExpectations(t)
	})
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()
	doc := &model.Document{ID: "d-1", VehicleID: "v-1", Type: model.DocumentTypeTax}

	mockDocs := new(repoMocks.MockDocumentRepository)
	mockVehicles := new(repoMocks.MockVehicleRepository)
	mockDocs.On("FindByID", ctx, "d-1").Return(doc, nil)
	mockVehicles.On("FindByID", ctx, "v-1").Return(ownedVehicle("v-1", "user-1"), nil)
	mockDocs.On("Delete", ctx, "d-1").Return(nil)

	svc := newDocumentServiceForTest(mockDocs, mockVehicles, time.Now())
	assert.NoError(t, svc.Delete(ctx, "user-1", "d-1"))
	mockDocs.AssertExpectations(t)
}
