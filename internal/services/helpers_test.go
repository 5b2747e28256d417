package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/eventreg/internal/catalog"
	"github.com/dmitrijs2005/eventreg/internal/logging"
	"github.com/dmitrijs2005/eventreg/internal/models"
	"github.com/dmitrijs2005/eventreg/internal/repositories/sessions"
	"github.com/dmitrijs2005/eventreg/internal/repositories/userdata"
	"github.com/dmitrijs2005/eventreg/internal/repositories/users"
	"github.com/dmitrijs2005/eventreg/internal/storage"
)

// ---- helpers ----

type fixture struct {
	mem      *storage.MemoryBackend
	users    *users.KVRepository
	sessions *sessions.KVRepository
	userdata *userdata.KVRepository
	states   EventStateService
	auth     AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := storage.NewMemoryBackend()
	store := storage.NewStore(mem, storage.DefaultPrefix, logging.Nop())

	f := &fixture{
		mem:      mem,
		users:    users.NewKVRepository(store),
		sessions: sessions.NewKVRepository(store),
		userdata: userdata.NewKVRepository(store),
	}
	f.states = NewEventStateService(f.userdata, catalog.Default(), logging.Nop())
	f.auth = NewAuthService(f.users, f.sessions, f.states, logging.Nop())
	return f
}

func (f *fixture) raw(t *testing.T, key string) []byte {
	t.Helper()
	v, err := f.mem.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("raw get %s: %v", key, err)
	}
	return v
}

func stubUserID(t *testing.T, ids ...string) {
	t.Helper()
	orig := newUserID
	i := 0
	newUserID = func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
	t.Cleanup(func() { newUserID = orig })
}

var errBoom = errors.New("boom")

// ---- fakes ----

type brokenUsers struct {
	listErr error
	saveErr error
	list    []models.User
}

func (b *brokenUsers) List(context.Context) ([]models.User, error) { return b.list, b.listErr }
func (b *brokenUsers) SaveAll(context.Context, []models.User) error { return b.saveErr }
func (b *brokenUsers) GetByID(context.Context, string) (*models.User, error) {
	return nil, b.listErr
}
func (b *brokenUsers) GetByPhone(context.Context, string) (*models.User, error) {
	return nil, b.listErr
}

type brokenSessions struct {
	getErr, setErr, clearErr error
}

func (b *brokenSessions) Get(context.Context) (*models.Session, error) { return nil, b.getErr }
func (b *brokenSessions) Set(context.Context, models.Session) error    { return b.setErr }
func (b *brokenSessions) Clear(context.Context) error                  { return b.clearErr }

type brokenUserData struct {
	loadErr, saveErr error
}

func (b *brokenUserData) LoadAll(context.Context) (map[string]*models.UserEventState, error) {
	if b.loadErr != nil {
		return nil, b.loadErr
	}
	return map[string]*models.UserEventState{}, nil
}
func (b *brokenUserData) SaveAll(context.Context, map[string]*models.UserEventState) error {
	return b.saveErr
}
