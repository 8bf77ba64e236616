package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetdocs/internal/model"
	"fleetdocs/internal/repository"
)

var documentCols = []string{"id", "vehicle_id", "type", "expiry_date", "file_url", "notes", "created_at", "updated_at"}

func TestDocumentPostgres_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	expiry := model.NewDate(2027, 1, 15)

	t.Run("with expiry date", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		doc := &model.Document{
			ID:         "d-1",
			VehicleID:  "v-1",
			Type:       model.DocumentTypeInsurance,
			ExpiryDate: &expiry,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		rows := sqlmock.NewRows(documentCols).
			AddRow("d-1", "v-1", "insurance", time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC), "", "", now, now)

		mock.ExpectQuery("INSERT INTO documents").
			WithArgs("d-1", "v-1", model.DocumentTypeInsurance, "2027-01-15", "", "", now, now).
			WillReturnRows(rows)

		repo := NewDocumentPostgres(db)
		out, err := repo.Create(ctx, doc)

		require.NoError(t, err)
		require.NotNil(t, out.ExpiryDate)
		assert.Equal(t, "2027-01-15", out.ExpiryDate.Format("2006-01-02"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without expiry date binds NULL", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		doc := &model.Document{
			ID:        "d-2",
			VehicleID: "v-1",
			Type:      model.DocumentTypeOwnerBook,
			FileURL:   "/uploads/book.pdf",
			CreatedAt: now,
			UpdatedAt: now,
		}
		rows := sqlmock.NewRows(documentCols).
			AddRow("d-2", "v-1", "owner_book", nil, "/uploads/book.pdf", "", now, now)

		mock.ExpectQuery("INSERT INTO documents").
			WithArgs("d-2", "v-1", model.DocumentTypeOwnerBook, nil, "/uploads/book.pdf", "", now, now).
			WillReturnRows(rows)

		repo := NewDocumentPostgres(db)
		out, err := repo.Create(ctx, doc)

		require.NoError(t, err)
		assert.Nil(t, out.ExpiryDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(documentCols).
			AddRow("d-1", "v-1", "tax", nil, "", "paid till march", now, now)
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id").
			WithArgs("d-1").
			WillReturnRows(rows)

		repo := NewDocumentPostgres(db)
		out, err := repo.FindByID(ctx, "d-1")

		require.NoError(t, err)
		assert.Equal(t, model.DocumentTypeTax, out.Type)
		assert.Equal(t, "paid till march", out.Notes)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewDocumentPostgres(db)
		_, err = repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestDocumentPostgres_ListByVehicle(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(documentCols).
		AddRow("d-1", "v-1", "insurance", time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC), "", "", now, now).
		AddRow("d-2", "v-1", "owner_book", nil, "/uploads/book.pdf", "", now, now)
	mock.ExpectQuery("SELECT (.+) FROM documents WHERE vehicle_id").
		WithArgs("v-1").
		WillReturnRows(rows)

	repo := NewDocumentPostgres(db)
	docs, err := repo.ListByVehicle(ctx, "v-1")

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.NotNil(t, docs[0].ExpiryDate)
	assert.Nil(t, docs[1].ExpiryDate)
}

func TestDocumentPostgres_Update(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("only patched columns appear in the statement", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(documentCols).
			AddRow("d-1", "v-1", "tax", nil, "", "updated", now, now)
		mock.ExpectQuery(`UPDATE documents SET updated_at = now\(\), notes = \$1 WHERE id = \$2`).
			WithArgs("updated", "d-1").
			WillReturnRows(rows)

		notes := "updated"
		repo := NewDocumentPostgres(db)
		out, err := repo.Update(ctx, "d-1", repository.DocumentPatch{Notes: &notes})

		require.NoError(t, err)
		assert.Equal(t, "updated", out.Notes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("expiry date patch binds the calendar date", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		expiry := model.NewDate(2027, 6, 30)
		rows := sqlmock.NewRows(documentCols).
			AddRow("d-1", "v-1", "insurance", time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC), "", "", now, now)
		mock.ExpectQuery("UPDATE documents SET").
			WithArgs("2027-06-30", "d-1").
			WillReturnRows(rows)

		repo := NewDocumentPostgres(db)
		out, err := repo.Update(ctx, "d-1", repository.DocumentPatch{ExpiryDate: &expiry})

		require.NoError(t, err)
		require.NotNil(t, out.ExpiryDate)
		assert.Equal(t, "2027-06-30", out.ExpiryDate.Format("2006-01-02"))
	})

	t.Run("missing row surfaces sql.ErrNoRows", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("UPDATE documents SET").
			WithArgs("x", "missing").
			WillReturnError(sql.ErrNoRows)

		notes := "x"
		repo := NewDocumentPostgres(db)
		_, err = repo.Update(ctx, "missing", repository.DocumentPatch{Notes: &notes})

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestDocumentPostgres_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("existing row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("DELETE FROM documents WHERE id").
			WithArgs("d-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewDocumentPostgres(db)
		assert.NoError(t, repo.Delete(ctx, "d-1"))
	})

	t.Run("missing row is not an error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("DELETE FROM documents WHERE id").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewDocumentPostgres(db)
		assert.NoError(t, repo.Delete(ctx, "missing"))
	})
}
