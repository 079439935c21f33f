package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"uloggd/core/apierror"
	"uloggd/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100
)

// Field names accepted by UpdateState.
const (
	FieldStatus   = "status"
	FieldPlaying  = "playing"
	FieldBacklog  = "backlog"
	FieldWishlist = "wishlist"
	FieldLiked    = "liked"
)

// Query selects a page of one shelf.
type Query struct {
	Shelf string
	Page  int
	Limit int
}

// Library is a page of a user's reconciled library.
type Library struct {
	UserID     string                `json:"user_id"`
	ShortID    string                `json:"short_id,omitempty"`
	Games      []reconcile.Aggregate `json:"games"`
	Summary    reconcile.Summary     `json:"counts"`
	Shelf      reconcile.Shelf       `json:"shelf"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"total_pages"`
}

// Update changes one field of a user's game state.
type Update struct {
	GameID   int64
	GameSlug string
	Field    string
	// Value is a bool for flag fields, a string or nil for status.
	Value any
}

// UpdateResult reports what the write path did. Deleted and Skipped mark pruned records.
type UpdateResult struct {
	GameID   int64     `json:"game_id"`
	GameSlug string    `json:"game_slug"`
	Deleted  bool      `json:"deleted,omitempty"`
	Skipped  bool      `json:"skipped,omitempty"`
	State    *UserGame `json:"state,omitempty"`
}

// Service serves reconciled libraries and owns the state write path.
type Service struct {
	repo   *Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a library service.
func NewService(repo *Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Aggregates loads both library sources of userID concurrently and reconciles them.
func (s *Service) Aggregates(ctx context.Context, userID string) (map[string]reconcile.Aggregate, error) {
	var (
		states []UserGame
		events []GameLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		states, err = s.repo.States(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load library state: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		events, err = s.repo.Events(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load library events: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stateRecords := make([]reconcile.StateRecord, len(states))
	for i, row := range states {
		stateRecords[i] = row.ToState()
	}
	eventRecords := make([]reconcile.EventRecord, len(events))
	for i, row := range events {
		eventRecords[i] = row.ToEvent()
	}

	return reconcile.Reconcile(stateRecords, eventRecords), nil
}

// Library returns one page of a shelf together with the counters of every shelf.
func (s *Service) Library(ctx context.Context, userID string, q Query) (*Library, error) {
	shelf, err := reconcile.ParseShelf(q.Shelf)
	if err != nil {
		return nil, apierror.Validation("%s", err.Error())
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	limit = min(limit, maxPageSize)
	page := max(q.Page, 1)

	aggs, err := s.Aggregates(ctx, userID)
	if err != nil {
		return nil, err
	}

	selected := reconcile.Select(aggs, shelf)
	totalPages := max((len(selected)+limit-1)/limit, 1)

	start := min((page-1)*limit, len(selected))
	end := min(start+limit, len(selected))

	return &Library{
		UserID:     userID,
		Games:      selected[start:end],
		Summary:    reconcile.Summarize(aggs),
		Shelf:      shelf,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// UpdateState applies one field change. A state that would become empty is deleted, or not
// created at all, so empty rows never reach storage.
func (s *Service) UpdateState(ctx context.Context, userID string, u Update) (*UpdateResult, error) {
	slug := strings.TrimSpace(u.GameSlug)
	if u.GameID <= 0 || slug == "" {
		return nil, apierror.Validation("game_id and game_slug are required")
	}
	slug = truncateSlug(slug)

	existing, err := s.repo.FindState(ctx, userID, u.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	row := UserGame{UserID: userID, GameID: u.GameID, GameSlug: slug}
	if existing != nil {
		row = *existing
	}
	if err := apply(&row, u.Field, u.Value); err != nil {
		return nil, err
	}

	result := &UpdateResult{GameID: u.GameID, GameSlug: slug}
	if row.ToState().Empty() {
		if existing == nil {
			result.Skipped = true
			return result, nil
		}
		if err := s.repo.DeleteState(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to delete state: %w", err)
		}
		s.logger.Debug("Pruned empty library state", zap.String("user_id", userID), zap.Int64("game_id", u.GameID))
		result.Deleted = true
		return result, nil
	}

	row.UpdatedAt = s.now()
	if err := s.repo.SaveState(ctx, &row); err != nil {
		return nil, fmt.Errorf("failed to save state: %w", err)
	}
	result.State = &row
	return result, nil
}

// AppendEvent records a log entry.
func (s *Service) AppendEvent(ctx context.Context, userID string, ev *GameLog) error {
	ev.GameSlug = strings.TrimSpace(ev.GameSlug)
	if ev.GameID <= 0 || ev.GameSlug == "" {
		return apierror.Validation("game_id and game_slug are required")
	}
	if ev.Rating != nil && (*ev.Rating < 0 || *ev.Rating > 100) {
		return apierror.Validation("rating must be between 0 and 100")
	}
	if !statusOf(ev.Status).Valid() {
		return apierror.Validation("invalid status %q", *ev.Status)
	}
	ev.GameSlug = truncateSlug(ev.GameSlug)

	ev.ID = 0
	ev.UserID = userID
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = s.now()
	}
	if err := s.repo.AppendEvent(ctx, ev); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func apply(row *UserGame, field string, value any) error {
	switch field {
	case FieldStatus:
		if value == nil {
			row.Status = nil
			return nil
		}
		raw, ok := value.(string)
		if !ok {
			return apierror.Validation("status must be a string or null")
		}
		st, err := reconcile.ParseStatus(raw)
		if err != nil {
			return apierror.Validation("%s", err.Error())
		}
		row.Status = statusPtr(st)
		return nil
	case FieldPlaying, FieldBacklog, FieldWishlist, FieldLiked:
		b, ok := value.(bool)
		if !ok {
			return apierror.Validation("value must be boolean")
		}
		switch field {
		case FieldPlaying:
			row.Playing = b
		case FieldBacklog:
			row.Backlog = b
		case FieldWishlist:
			row.Wishlist = b
		case FieldLiked:
			row.Liked = b
		}
		return nil
	}
	return apierror.Validation("invalid field %q", field)
}
