package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"artifactvault/internal/artifact/model"
	"artifactvault/pkg/logger"
)

var (
	// ErrNotFound is returned when no artifact has the requested id.
	ErrNotFound = errors.New("artifact not found")
	// ErrForbidden is returned when an owned mutation matches no row. A
	// missing artifact and an ownership mismatch are deliberately
	// indistinguishable here.
	ErrForbidden = errors.New("artifact not owned by caller")
)

type ArtifactRepository struct {
	DB *sql.DB
}

func NewArtifactRepository(db *sql.DB) *ArtifactRepository {
	return &ArtifactRepository{DB: db}
}

func (r *ArtifactRepository) ListAll(ctx context.Context) ([]model.Artifact, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, doc, like_count FROM artifacts`)
	if err != nil {
		logger.Sugar.Errorf("Failed to list artifacts: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanArtifacts(rows)
}

func (r *ArtifactRepository) GetByID(ctx context.Context, id string) (*model.Artifact, error) {
	var a model.Artifact
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, doc, like_count FROM artifacts WHERE id = $1`, id).
		Scan(&a.ID, (*[]byte)(&a.Fields), &a.LikeCount)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get artifact %s: %v", id, err)
		return nil, err
	}
	return &a, nil
}

// Create stores the submitted document verbatim and returns the generated id.
func (r *ArtifactRepository) Create(ctx context.Context, doc json.RawMessage) (string, error) {
	var id string
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO artifacts (doc) VALUES ($1) RETURNING id`, []byte(doc)).Scan(&id)
	if err != nil {
		logger.Sugar.Errorf("Failed to create artifact: %v", err)
	}
	return id, err
}

func (r *ArtifactRepository) ListByOwner(ctx context.Context, email string) ([]model.Artifact, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, doc, like_count FROM artifacts WHERE doc->>'adderEmail' = $1`, email)
	if err != nil {
		logger.Sugar.Errorf("Failed to list artifacts for %s: %v", email, err)
		return nil, err
	}
	defer rows.Close()
	return scanArtifacts(rows)
}

// UpdateOwned merges the patch into the stored document, but only when the
// row exists and its adderEmail matches the caller.
func (r *ArtifactRepository) UpdateOwned(ctx context.Context, id, email string, patch json.RawMessage) (*model.Artifact, error) {
	var a model.Artifact
	err := r.DB.QueryRowContext(ctx,
		`UPDATE artifacts SET doc = doc || $1
		 WHERE id = $2 AND doc->>'adderEmail' = $3
		 RETURNING id, doc, like_count`,
		[]byte(patch), id, email).
		Scan(&a.ID, (*[]byte)(&a.Fields), &a.LikeCount)
	if err == sql.ErrNoRows {
		return nil, ErrForbidden
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to update artifact %s: %v", id, err)
		return nil, err
	}
	return &a, nil
}

func (r *ArtifactRepository) DeleteOwned(ctx context.Context, id, email string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM artifacts WHERE id = $1 AND doc->>'adderEmail' = $2`, id, email)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete artifact %s: %v", id, err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrForbidden
	}
	return nil
}

func scanArtifacts(rows *sql.Rows) ([]model.Artifact, error) {
	artifacts := []model.Artifact{}
	for rows.Next() {
		var a model.Artifact
		if err := rows.Scan(&a.ID, (*[]byte)(&a.Fields), &a.LikeCount); err != nil {
			logger.Sugar.Errorf("Failed to scan artifact row: %v", err)
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}
