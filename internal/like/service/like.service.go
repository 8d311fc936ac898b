package service

import (
	"context"

	"artifactvault/internal/artifact/model"
	artifactrepo "artifactvault/internal/artifact/repository"
	"artifactvault/internal/like/repository"
	"artifactvault/socket"

	"github.com/google/uuid"
)

type LikeService struct {
	Repo *repository.LikeRepository
	Hub  *socket.Hub
}

func NewLikeService(repo *repository.LikeRepository, hub *socket.Hub) *LikeService {
	return &LikeService{Repo: repo, Hub: hub}
}

// Status reports whether the user currently likes the artifact. An id that
// is not a UUID cannot name a stored artifact, so it is simply not liked.
func (s *LikeService) Status(ctx context.Context, artifactID, userID string) (bool, error) {
	if _, err := uuid.Parse(artifactID); err != nil {
		return false, nil
	}
	return s.Repo.Status(ctx, artifactID, userID)
}

func (s *LikeService) Toggle(ctx context.Context, artifactID, userID string) (bool, int64, error) {
	if _, err := uuid.Parse(artifactID); err != nil {
		return false, 0, artifactrepo.ErrNotFound
	}

	liked, likeCount, err := s.Repo.Toggle(ctx, artifactID, userID)
	if err != nil {
		return false, 0, err
	}

	eventType := socket.ArtifactUnlikedType
	if liked {
		eventType = socket.ArtifactLikedType
	}
	s.Hub.Publish(socket.Event{Type: eventType, ArtifactID: artifactID, LikeCount: likeCount})
	return liked, likeCount, nil
}

func (s *LikeService) ListLiked(ctx context.Context, userID string) ([]model.Artifact, error) {
	return s.Repo.ListLiked(ctx, userID)
}
