package service

import (
	"context"
	"encoding/json"

	"artifactvault/internal/artifact/model"
	"artifactvault/internal/artifact/repository"
	"artifactvault/socket"

	"github.com/google/uuid"
)

type ArtifactService struct {
	Repo *repository.ArtifactRepository
	Hub  *socket.Hub
}

func NewArtifactService(repo *repository.ArtifactRepository, hub *socket.Hub) *ArtifactService {
	return &ArtifactService{Repo: repo, Hub: hub}
}

func (s *ArtifactService) ListAll(ctx context.Context) ([]model.Artifact, error) {
	return s.Repo.ListAll(ctx)
}

// Get treats a syntactically invalid id as a miss: store ids are UUIDs, so
// such an id cannot name a row and never reaches the store.
func (s *ArtifactService) Get(ctx context.Context, id string) (*model.Artifact, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

func (s *ArtifactService) Create(ctx context.Context, doc json.RawMessage) (string, error) {
	id, err := s.Repo.Create(ctx, doc)
	if err != nil {
		return "", err
	}
	s.Hub.Publish(socket.Event{Type: socket.ArtifactCreatedType, ArtifactID: id, Payload: doc})
	return id, nil
}

func (s *ArtifactService) ListByOwner(ctx context.Context, email string) ([]model.Artifact, error) {
	return s.Repo.ListByOwner(ctx, email)
}

// UpdateOwned and DeleteOwned report a malformed id the same way as an
// ownership mismatch: the caller owns no such artifact.
func (s *ArtifactService) UpdateOwned(ctx context.Context, id, email string, patch json.RawMessage) (*model.Artifact, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrForbidden
	}
	updated, err := s.Repo.UpdateOwned(ctx, id, email, patch)
	if err != nil {
		return nil, err
	}
	s.Hub.Publish(socket.Event{Type: socket.ArtifactUpdatedType, ArtifactID: id, LikeCount: updated.LikeCount, Payload: patch})
	return updated, nil
}

func (s *ArtifactService) DeleteOwned(ctx context.Context, id, email string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrForbidden
	}
	if err := s.Repo.DeleteOwned(ctx, id, email); err != nil {
		return err
	}
	s.Hub.Publish(socket.Event{Type: socket.ArtifactDeletedType, ArtifactID: id})
	return nil
}
