package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rs/xid"
	"github.com/sakif/paperpal/internal/apperror"
	"github.com/sakif/paperpal/internal/model"
	"github.com/sakif/paperpal/internal/repository"
)

// TagService handles the global tag registry.
//
// The duplicate-name check lives HERE, not in the directory: the
// directory appends blindly, and this service is "the caller's own
// check" that keeps names unique in practice. The mutex keeps the
// check-then-add sequence atomic within the process.
type TagService struct {
	tags   repository.TagDirectory
	logger *slog.Logger

	mu sync.Mutex
}

// NewTagService creates a new TagService.
func NewTagService(tags repository.TagDirectory, logger *slog.Logger) *TagService {
	return &TagService{tags: tags, logger: logger}
}

// List returns all registered tags in insertion order.
func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		s.logger.Error("failed to list tags", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

// Add registers a new tag name. The name is trimmed, must be non-empty,
// and must not duplicate an existing tag ignoring case.
func (s *TagService) Add(ctx context.Context, name string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "tag name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	for _, tag := range existing {
		if strings.EqualFold(tag.Name, name) {
			return nil, apperror.Conflict("tag", "tag already exists")
		}
	}

	tag := model.Tag{
		ID:   xid.New().String(),
		Name: name,
	}
	if err := s.tags.Add(ctx, tag); err != nil {
		s.logger.Error("failed to add tag",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("adding tag: %w", err)
	}

	s.logger.Info("tag added", slog.String("id", tag.ID), slog.String("name", tag.Name))
	return &tag, nil
}
