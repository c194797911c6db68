package feedback

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	rec := Record{
		ID:               "0b6f4a8e-6f6c-4a57-9d9e-3d1c5b1f2a10",
		Rating:           5,
		Comments:         "spot on",
		RecommendationID: "6a1d0f9e-0a52-4c8f-8f3e-7f6f4a1b2c3d",
		CreatedAt:        time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO feedback").
		WithArgs(
			rec.ID,
			rec.Rating,
			rec.Comments,
			sql.NullString{String: rec.RecommendationID, Valid: true},
			sql.NullString{},
			rec.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Append(context.Background(), rec); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoAppendPropagatesError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("INSERT INTO feedback").WillReturnError(errors.New("check constraint"))

	repo := &PGRepo{DB: db}
	if err := repo.Append(context.Background(), Record{ID: "x", Rating: 9}); err == nil {
		t.Fatal("expected error")
	}
}
