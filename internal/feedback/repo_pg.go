package feedback

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Append inserts a feedback row.
func (r *PGRepo) Append(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO feedback (
    id,
    rating,
    comments,
    recommendation_id,
    predicted_career,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.Rating,
		rec.Comments,
		nullString(rec.RecommendationID),
		nullString(rec.PredictedCareer),
		rec.CreatedAt,
	)
	return err
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
