// This file defines the user event state service: saving, joining and
// leaving events and commenting on them. Every mutation is one
// read-modify-write of the user_data record.

package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/eventreg/internal/catalog"
	"github.com/dmitrijs2005/eventreg/internal/logging"
	"github.com/dmitrijs2005/eventreg/internal/models"
	"github.com/dmitrijs2005/eventreg/internal/repositories/userdata"
)

// EventStateService manages a user's saved/joined events and comments.
//
// Get creates and persists the empty state on first access; Peek never
// writes. Mutations apply a pure transformation to a deep copy of the stored
// state and write the whole mapping back. Within one process mutations are
// serialized; processes sharing a medium can still overwrite each other.
type EventStateService interface {
	Get(ctx context.Context, userID string) (*models.UserEventState, error)
	Peek(ctx context.Context, userID string) (*models.UserEventState, error)
	ToggleSaved(ctx context.Context, userID, eventID string) (bool, error)
	Join(ctx context.Context, userID, eventID string) (bool, error)
	Leave(ctx context.Context, userID, eventID string) (*models.UserEventState, error)
	SetComment(ctx context.Context, userID, eventID, text string) (*models.UserEventState, error)
	JoinedEvents(ctx context.Context, userID string) ([]models.JoinedEvent, error)
}

type eventStateService struct {
	repo    userdata.Repository
	catalog *catalog.Catalog
	log     logging.Logger

	mu sync.Mutex
}

// NewEventStateService constructs an EventStateService. The catalog is only
// used by JoinedEvents.
func NewEventStateService(repo userdata.Repository, c *catalog.Catalog, log logging.Logger) EventStateService {
	return &eventStateService{repo: repo, catalog: c, log: log.With("service", "eventstate")}
}

// Get returns the user's state, storing the empty default first if the user
// has none yet.
func (s *eventStateService) Get(ctx context.Context, userID string) (*models.UserEventState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading user data: %w", err)
	}
	if st, ok := all[userID]; ok && st != nil {
		return st.Clone(), nil
	}

	st := models.NewUserEventState()
	all[userID] = st
	if err := s.repo.SaveAll(ctx, all); err != nil {
		return nil, fmt.Errorf("error saving user data: %w", err)
	}
	s.log.Debug(ctx, "user data initialized", "user_id", userID)
	return st.Clone(), nil
}

// Peek returns the user's state, or the empty default, without writing.
func (s *eventStateService) Peek(ctx context.Context, userID string) (*models.UserEventState, error) {
	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading user data: %w", err)
	}
	return all[userID].Clone(), nil
}

// ToggleSaved removes eventID from saved if present, appends it otherwise,
// and reports whether it ended up saved. Joined is not touched.
func (s *eventStateService) ToggleSaved(ctx context.Context, userID, eventID string) (bool, error) {
	next, err := s.update(ctx, userID, func(st *models.UserEventState) {
		if st.IsSaved(eventID) {
			st.Saved = without(st.Saved, eventID)
		} else {
			st.Saved = append(st.Saved, eventID)
		}
	})
	if err != nil {
		return false, err
	}

	saved := next.IsSaved(eventID)
	s.log.Debug(ctx, "saved toggled", "user_id", userID, "event_id", eventID, "saved", saved)
	return saved, nil
}

// Join adds eventID to joined and, if missing, to saved. Joining twice
// changes nothing.
func (s *eventStateService) Join(ctx context.Context, userID, eventID string) (bool, error) {
	next, err := s.update(ctx, userID, func(st *models.UserEventState) {
		if !st.IsJoined(eventID) {
			st.Joined = append(st.Joined, eventID)
		}
		if !st.IsSaved(eventID) {
			st.Saved = append(st.Saved, eventID)
		}
	})
	if err != nil {
		return false, err
	}

	s.log.Debug(ctx, "event joined", "user_id", userID, "event_id", eventID)
	return next.IsJoined(eventID), nil
}

// Leave removes eventID from joined. Saved keeps it.
func (s *eventStateService) Leave(ctx context.Context, userID, eventID string) (*models.UserEventState, error) {
	next, err := s.update(ctx, userID, func(st *models.UserEventState) {
		st.Joined = without(st.Joined, eventID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "event left", "user_id", userID, "event_id", eventID)
	return next, nil
}

// SetComment stores the trimmed text as the user's comment on eventID. An
// empty comment is stored as "" and means "no comment".
func (s *eventStateService) SetComment(ctx context.Context, userID, eventID, text string) (*models.UserEventState, error) {
	text = strings.TrimSpace(text)

	next, err := s.update(ctx, userID, func(st *models.UserEventState) {
		st.Comments[eventID] = text
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug(ctx, "comment saved", "user_id", userID, "event_id", eventID, "empty", text == "")
	return next, nil
}

// JoinedEvents lists the catalog events the user joined, in catalog order,
// each with the user's comment. Joined ids missing from the catalog are
// skipped.
func (s *eventStateService) JoinedEvents(ctx context.Context, userID string) ([]models.JoinedEvent, error) {
	st, err := s.Peek(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := []models.JoinedEvent{}
	for _, ev := range s.catalog.List() {
		if st.IsJoined(ev.ID) {
			out = append(out, models.JoinedEvent{Event: ev, Comment: st.Comment(ev.ID)})
		}
	}
	return out, nil
}

// update runs one read-modify-write cycle. patch receives a deep copy of the
// current state, so the stored mapping is untouched until SaveAll succeeds.
func (s *eventStateService) update(ctx context.Context, userID string, patch func(*models.UserEventState)) (*models.UserEventState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading user data: %w", err)
	}

	next := all[userID].Clone()
	patch(next)
	all[userID] = next

	if err := s.repo.SaveAll(ctx, all); err != nil {
		return nil, fmt.Errorf("error saving user data: %w", err)
	}
	return next.Clone(), nil
}

func without(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(x string) bool { return x == id })
}
