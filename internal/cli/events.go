package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/eventreg/internal/models"
)

// Events lists the catalog. For a logged-in user each line carries the
// saved/joined marks; reading them never creates the user's state.
func (a *App) Events(ctx context.Context) error {
	var state *models.UserEventState

	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if u != nil {
		state, err = a.eventService.Peek(ctx, u.ID)
		if err != nil {
			return err
		}
	}

	for _, e := range a.catalog.List() {
		fmt.Fprintf(a.out, "%-4s %s  [%s] %s | %s | %s\n", e.ID, marks(state, e.ID), e.Badge, e.EventName, e.Title, e.Professor)
	}
	return nil
}

func marks(state *models.UserEventState, id string) string {
	if state == nil {
		return ""
	}
	s, j := " ", " "
	if state.IsSaved(id) {
		s = "S"
	}
	if state.IsJoined(id) {
		j = "J"
	}
	return s + j
}

// Save toggles the saved mark of an event.
func (a *App) Save(ctx context.Context, eventID string) error {
	u, e, err := a.userAndEvent(ctx, eventID)
	if err != nil {
		return err
	}

	saved, err := a.eventService.ToggleSaved(ctx, u.ID, e.ID)
	if err != nil {
		return err
	}
	if saved {
		fmt.Fprintf(a.out, "Saved %s\n", e.EventName)
	} else {
		fmt.Fprintf(a.out, "Removed %s from saved\n", e.EventName)
	}
	return nil
}

func (a *App) Join(ctx context.Context, eventID string) error {
	u, e, err := a.userAndEvent(ctx, eventID)
	if err != nil {
		return err
	}

	if _, err := a.eventService.Join(ctx, u.ID, e.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Joined %s\n", e.EventName)
	return nil
}

// Leave removes the event from the joined list; it stays saved.
func (a *App) Leave(ctx context.Context, eventID string) error {
	u, e, err := a.userAndEvent(ctx, eventID)
	if err != nil {
		return err
	}

	if _, err := a.eventService.Leave(ctx, u.ID, e.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Left %s\n", e.EventName)
	return nil
}

// Comment shows the current comment on a joined event and replaces it with
// the next input line. An empty line clears it; end of input cancels.
func (a *App) Comment(ctx context.Context, eventID string) error {
	u, e, err := a.userAndEvent(ctx, eventID)
	if err != nil {
		return err
	}

	state, err := a.eventService.Peek(ctx, u.ID)
	if err != nil {
		return err
	}
	if !state.IsJoined(e.ID) {
		fmt.Fprintf(a.out, "Join %s before commenting on it\n", e.ID)
		return nil
	}

	if c := state.Comment(e.ID); c != "" {
		fmt.Fprintf(a.out, "Current comment: %s\n", c)
	}

	text, err := getSimpleText(ctx, a.reader, "New comment (empty line clears)", a.out)
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(a.out, "Cancelled")
			return nil
		}
		return err
	}

	state, err = a.eventService.SetComment(ctx, u.ID, e.ID, text)
	if err != nil {
		return err
	}
	if state.Comment(e.ID) == "" {
		fmt.Fprintln(a.out, "Comment cleared")
	} else {
		fmt.Fprintln(a.out, "Comment saved")
	}
	return nil
}

// My lists the events the user joined together with their comments.
func (a *App) My(ctx context.Context) error {
	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	joined, err := a.eventService.JoinedEvents(ctx, u.ID)
	if err != nil {
		return err
	}
	if len(joined) == 0 {
		fmt.Fprintln(a.out, "You have not joined any events yet")
		return nil
	}

	for _, j := range joined {
		fmt.Fprintf(a.out, "%-4s %s | %s\n", j.ID, j.EventName, j.Title)
		if j.HasComment() {
			fmt.Fprintf(a.out, "     comment: %s\n", j.Comment)
		}
	}
	return nil
}

func (a *App) userAndEvent(ctx context.Context, eventID string) (*models.User, models.Event, error) {
	u, err := a.currentUser(ctx)
	if err != nil {
		return nil, models.Event{}, err
	}
	e, err := a.catalog.Find(eventID)
	if err != nil {
		return nil, models.Event{}, err
	}
	return u, e, nil
}
