package storage

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/dmitrijs2005/eventreg/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

type failingBackend struct{ err error }

func (f failingBackend) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f failingBackend) Set(context.Context, string, []byte) error   { return f.err }
func (f failingBackend) Delete(context.Context, string) error        { return f.err }

func newBufferedStore(t *testing.T, b Backend) (*Store, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	return NewStore(b, DefaultPrefix, log), &buf
}

func TestStore_WriteThenRead(t *testing.T) {
	mem := NewMemoryBackend()
	s, _ := newBufferedStore(t, mem)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "rec", record{Name: "a", Items: []string{"x", "y"}}))

	raw, err := mem.Get(ctx, "ev_rec")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"a","items":["x","y"]}`, string(raw))

	got, err := Read(ctx, s, "rec", record{})
	require.NoError(t, err)
	assert.Equal(t, record{Name: "a", Items: []string{"x", "y"}}, got)
}

func TestStore_Read_MissingReturnsFallback(t *testing.T) {
	s, _ := newBufferedStore(t, NewMemoryBackend())

	got, err := Read(context.Background(), s, "users", []string{})
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)
}

func TestStore_Read_CorruptedReturnsFallbackAndWarns(t *testing.T) {
	mem := NewMemoryBackend()
	s, buf := newBufferedStore(t, mem)
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, "ev_rec", []byte(`{not json`)))

	got, err := Read(ctx, s, "rec", record{Name: "fallback"})
	require.NoError(t, err)
	assert.Equal(t, "fallback", got.Name)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "key=ev_rec")
}

func TestStore_Read_ForeignShapeReturnsFallback(t *testing.T) {
	mem := NewMemoryBackend()
	s, _ := newBufferedStore(t, mem)
	ctx := context.Background()

	require.NoError(t, mem.Set(ctx, "ev_rec", []byte(`"just a string"`)))

	got, err := Read(ctx, s, "rec", map[string]int{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_Read_ReturnsIndependentCopies(t *testing.T) {
	s, _ := newBufferedStore(t, NewMemoryBackend())
	ctx := context.Background()
	require.NoError(t, s.Write(ctx, "rec", record{Items: []string{"x"}}))

	first, err := Read(ctx, s, "rec", record{})
	require.NoError(t, err)
	first.Items[0] = "changed"

	second, err := Read(ctx, s, "rec", record{})
	require.NoError(t, err)
	assert.Equal(t, "x", second.Items[0])
}

func TestStore_Remove(t *testing.T) {
	s, _ := newBufferedStore(t, NewMemoryBackend())
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "session", map[string]string{"userId": "u_1"}))
	require.NoError(t, s.Remove(ctx, "session"))
	require.NoError(t, s.Remove(ctx, "session"))

	got, err := Read[map[string]string](ctx, s, "session", nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_PrefixIsolatesNamespaces(t *testing.T) {
	mem := NewMemoryBackend()
	log := logging.Nop()
	a := NewStore(mem, "a_", log)
	b := NewStore(mem, "b_", log)
	ctx := context.Background()

	require.NoError(t, a.Write(ctx, "users", []string{"alice"}))

	got, err := Read(ctx, b, "users", []string{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_BackendErrorsPropagate(t *testing.T) {
	boom := errors.New("disk full")
	s, _ := newBufferedStore(t, failingBackend{err: boom})
	ctx := context.Background()

	got, err := Read(ctx, s, "rec", record{Name: "fb"})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "fb", got.Name)

	require.ErrorIs(t, s.Write(ctx, "rec", record{}), boom)
	require.ErrorIs(t, s.Remove(ctx, "rec"), boom)
}

func TestStore_Write_EncodeError(t *testing.T) {
	s, _ := newBufferedStore(t, NewMemoryBackend())

	err := s.Write(context.Background(), "bad", make(chan int))
	require.ErrorContains(t, err, "failed to encode kv[ev_bad]")
}
