package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/paperpal/internal/apperror"
	"github.com/sakif/paperpal/internal/model"
	"github.com/sakif/paperpal/internal/repository"
)

// Defaults applied to brand-new entries, matching what the app's "New
// Entry" button pre-filled before the user touched anything.
const (
	DefaultEntryTitle = "New Entry"
	dateLayout        = "2006-01-02"
)

// EntryService handles business logic for diary entries.
type EntryService struct {
	entries repository.EntryDirectory
	logger  *slog.Logger
	// now is stubbed in tests so ID and timestamp assignment is
	// deterministic.
	now func() time.Time
}

// NewEntryService creates a new EntryService.
func NewEntryService(entries repository.EntryDirectory, logger *slog.Logger) *EntryService {
	return &EntryService{
		entries: entries,
		logger:  logger,
		now:     time.Now,
	}
}

// List returns all diary entries in stored order.
func (s *EntryService) List(ctx context.Context) ([]model.DiaryEntry, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		s.logger.Error("failed to list entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}

// Get returns the entry with the given ID, or a not-found error.
func (s *EntryService) Get(ctx context.Context, id int64) (*model.DiaryEntry, error) {
	if id <= 0 {
		return nil, apperror.ValidationFailed("id", "entry ID is required")
	}
	return s.entries.GetByID(ctx, id)
}

// Save upserts a diary entry.
//
// A zero ID marks a new entry: the service assigns the ID from the
// creation instant (Unix milliseconds — the numbering scheme every
// stored entry already uses) and fills the date, title, mood, and
// category defaults the app's new-entry screen pre-filled. Every save,
// new or not, stamps LastEdited.
//
// Mood and category are NOT validated against the known lists: stored
// data may carry values from newer app versions, and rejecting them
// would make old servers eat new data.
func (s *EntryService) Save(ctx context.Context, entry *model.DiaryEntry) (*model.DiaryEntry, error) {
	if entry == nil {
		return nil, apperror.ValidationFailed("entry", "entry is required")
	}
	if entry.ID < 0 {
		return nil, apperror.ValidationFailed("id", "entry ID must not be negative")
	}

	now := s.now()
	created := entry.ID == 0
	if created {
		entry.ID = now.UnixMilli()
	}
	if entry.Date == "" {
		entry.Date = now.Format(dateLayout)
	}
	if strings.TrimSpace(entry.Title) == "" {
		entry.Title = DefaultEntryTitle
	}
	if entry.Mood == "" {
		entry.Mood = model.MoodHappy
	}
	if entry.Category == "" {
		entry.Category = model.CategoryDaily
	}
	entry.LastEdited = now.UTC().Format(time.RFC3339)

	if err := s.entries.Save(ctx, entry); err != nil {
		s.logger.Error("failed to save entry",
			slog.Int64("id", entry.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("saving entry: %w", err)
	}

	if created {
		s.logger.Info("entry created", slog.Int64("id", entry.ID), slog.String("date", entry.Date))
	} else {
		s.logger.Info("entry updated", slog.Int64("id", entry.ID))
	}

	return entry, nil
}

// Delete removes the entry with the given ID. Deleting an ID that does
// not exist succeeds silently — delete is idempotent all the way down.
func (s *EntryService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperror.ValidationFailed("id", "entry ID is required")
	}

	if err := s.entries.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete entry",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("deleting entry: %w", err)
	}

	s.logger.Info("entry deleted", slog.Int64("id", id))
	return nil
}
