package repository

import (
	"context"
	"database/sql"

	"artifactvault/internal/artifact/model"
	"artifactvault/pkg/logger"
)

type LikeRepository struct {
	DB *sql.DB
}

func NewLikeRepository(db *sql.DB) *LikeRepository {
	return &LikeRepository{DB: db}
}

func (r *LikeRepository) Status(ctx context.Context, artifactID, userID string) (bool, error) {
	var liked bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM artifact_likes WHERE artifact_id = $1 AND user_id = $2)`,
		artifactID, userID).Scan(&liked)
	if err != nil {
		logger.Sugar.Errorf("Failed to check like status for artifact %s: %v", artifactID, err)
	}
	return liked, err
}

// Toggle flips the like state for one (artifact, user) pair and keeps the
// denormalized counter in step, all in one transaction. The unique
// (artifact_id, user_id) index plus the conditional insert/delete make
// concurrent toggles safe: at most one like row can ever exist per pair.
func (r *LikeRepository) Toggle(ctx context.Context, artifactID, userID string) (liked bool, likeCount int64, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		logger.Sugar.Errorf("Failed to begin like toggle for artifact %s: %v", artifactID, err)
		return false, 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO artifact_likes (artifact_id, user_id) VALUES ($1, $2)
		 ON CONFLICT (artifact_id, user_id) DO NOTHING`,
		artifactID, userID)
	if err != nil {
		logger.Sugar.Errorf("Failed to insert like for artifact %s: %v", artifactID, err)
		return false, 0, err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, 0, err
	}

	if inserted == 1 {
		liked = true
		likeCount, err = r.adjustCount(ctx, tx, artifactID, +1)
	} else {
		if _, err = tx.ExecContext(ctx,
			`DELETE FROM artifact_likes WHERE artifact_id = $1 AND user_id = $2`,
			artifactID, userID); err != nil {
			logger.Sugar.Errorf("Failed to delete like for artifact %s: %v", artifactID, err)
			return false, 0, err
		}
		liked = false
		likeCount, err = r.adjustCount(ctx, tx, artifactID, -1)
	}
	if err != nil {
		return false, 0, err
	}

	if err = tx.Commit(); err != nil {
		logger.Sugar.Errorf("Failed to commit like toggle for artifact %s: %v", artifactID, err)
		return false, 0, err
	}
	return liked, likeCount, nil
}

// adjustCount moves like_count by delta, floored at zero. A like row may
// reference an artifact that was since deleted; that is not an error, the
// counter adjustment simply has nothing to touch.
func (r *LikeRepository) adjustCount(ctx context.Context, tx *sql.Tx, artifactID string, delta int64) (int64, error) {
	var count int64
	err := tx.QueryRowContext(ctx,
		`UPDATE artifacts SET like_count = GREATEST(like_count + $1, 0)
		 WHERE id = $2 RETURNING like_count`,
		delta, artifactID).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to adjust like count for artifact %s: %v", artifactID, err)
		return 0, err
	}
	return count, nil
}

// ListLiked returns the artifacts a user has liked. The inner join drops
// like rows whose artifact no longer exists.
func (r *LikeRepository) ListLiked(ctx context.Context, userID string) ([]model.Artifact, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT a.id, a.doc, a.like_count
		 FROM artifact_likes l
		 JOIN artifacts a ON a.id = l.artifact_id
		 WHERE l.user_id = $1`, userID)
	if err != nil {
		logger.Sugar.Errorf("Failed to list liked artifacts for user %s: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	artifacts := []model.Artifact{}
	for rows.Next() {
		var a model.Artifact
		if err := rows.Scan(&a.ID, (*[]byte)(&a.Fields), &a.LikeCount); err != nil {
			logger.Sugar.Errorf("Failed to scan liked artifact row: %v", err)
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}
