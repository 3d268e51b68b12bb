// Package categorize suggests a transaction category from a raw
// statement description, based on patterns learned from earlier user
// choices.
package categorize

import (
	"context"

	"github.com/google/uuid"

	"github.com/osadebe/kobo/internal/category"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=categorize
type Repository interface {
	FindCategory(ctx context.Context, ownerID uuid.UUID, description string) (string, error)
	CreateRule(ctx context.Context, ownerID uuid.UUID, pattern, categoryID string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the learned category id for the given description, or
// empty string when no rule matches or the matched category no longer
// exists in the catalog.
func (s *Service) Suggest(ctx context.Context, ownerID uuid.UUID, description string) (string, error) {
	id, err := s.repo.FindCategory(ctx, ownerID, description)
	if err != nil {
		return "", err
	}

	if _, ok := category.ByID(id); !ok {
		return "", nil
	}

	return id, nil
}

// Learn remembers that descriptions containing pattern belong to the
// given category.
func (s *Service) Learn(ctx context.Context, ownerID uuid.UUID, pattern, categoryID string) error {
	return s.repo.CreateRule(ctx, ownerID, pattern, categoryID)
}
