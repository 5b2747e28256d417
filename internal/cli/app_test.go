package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/dmitrijs2005/eventreg/internal/catalog"
	"github.com/dmitrijs2005/eventreg/internal/common"
	"github.com/dmitrijs2005/eventreg/internal/logging"
	"github.com/dmitrijs2005/eventreg/internal/repositories/sessions"
	"github.com/dmitrijs2005/eventreg/internal/repositories/userdata"
	"github.com/dmitrijs2005/eventreg/internal/repositories/users"
	"github.com/dmitrijs2005/eventreg/internal/services"
	"github.com/dmitrijs2005/eventreg/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	*App
	out *bytes.Buffer
	mem *storage.MemoryBackend
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	mem := storage.NewMemoryBackend()
	store := storage.NewStore(mem, storage.DefaultPrefix, logging.Nop())

	es := services.NewEventStateService(userdata.NewKVRepository(store), catalog.Default(), logging.Nop())
	as := services.NewAuthService(users.NewKVRepository(store), sessions.NewKVRepository(store), es, logging.Nop())

	out := &bytes.Buffer{}
	return &testApp{
		App: NewApp(as, es, catalog.Default(), logging.Nop(), strings.NewReader(""), out),
		out: out,
		mem: mem,
	}
}

// stubAnswers feeds both input seams from one queue, in prompt order.
// An exhausted queue answers io.EOF.
func stubAnswers(t *testing.T, answers ...string) {
	t.Helper()
	next := func() (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(context.Context, *bufio.Reader, string, io.Writer) (string, error) { return next() }
	getPassword = func(context.Context, *bufio.Reader, int, string, io.Writer) (string, error) { return next() }
	t.Cleanup(func() { getSimpleText, getPassword = origST, origGP })
}

func (a *testApp) register(t *testing.T) {
	t.Helper()
	stubAnswers(t, "Ali Rezaei", "09121112233", "pw", "pw")
	require.NoError(t, a.Register(context.Background()))
	a.out.Reset()
}

func TestRegister_LogsIn(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	stubAnswers(t, "  Ali Rezaei ", "09121112233", "pw", "pw")
	require.NoError(t, a.Register(ctx))

	assert.Equal(t, "Welcome, Ali Rezaei!\n", a.out.String())
	assert.True(t, a.isLoggedIn(ctx))
	assert.Equal(t, "(Ali Rezaei)", a.status(ctx))
}

func TestRegister_Errors(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	stubAnswers(t, "Ali", "0912", "pw", "other")
	assert.ErrorIs(t, a.Register(ctx), common.ErrValidation)

	stubAnswers(t, "Ali")
	assert.ErrorIs(t, a.Register(ctx), io.EOF)

	a.register(t)
	stubAnswers(t, "Sara", "09121112233", "x", "x")
	assert.ErrorIs(t, a.Register(ctx), common.ErrDuplicatePhone)
}

func TestLoginLogoutWhoAmI(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	a.register(t)

	require.NoError(t, a.Logout(ctx))
	assert.Equal(t, "Logged out\n", a.out.String())
	assert.False(t, a.isLoggedIn(ctx))
	assert.Equal(t, "", a.status(ctx))

	a.out.Reset()
	require.NoError(t, a.WhoAmI(ctx))
	assert.Equal(t, "Not logged in\n", a.out.String())

	stubAnswers(t, "09121112233", "wrong")
	assert.ErrorIs(t, a.Login(ctx), common.ErrInvalidCredentials)

	a.out.Reset()
	stubAnswers(t, "09121112233", "pw")
	require.NoError(t, a.Login(ctx))
	assert.Equal(t, "Logged in as Ali Rezaei\n", a.out.String())

	a.out.Reset()
	require.NoError(t, a.WhoAmI(ctx))
	assert.Equal(t, "Ali Rezaei (09121112233)\n", a.out.String())
}

func TestEventCommands_RequireLogin(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	assert.ErrorIs(t, a.Save(ctx, "e1"), errNotLoggedIn)
	assert.ErrorIs(t, a.Join(ctx, "e1"), errNotLoggedIn)
	assert.ErrorIs(t, a.Leave(ctx, "e1"), errNotLoggedIn)
	assert.ErrorIs(t, a.Comment(ctx, "e1"), errNotLoggedIn)
	assert.ErrorIs(t, a.My(ctx), errNotLoggedIn)
	assert.Empty(t, a.out.String())
}

func TestEventCommands_UnknownEvent(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	a.register(t)

	for _, fn := range []func(context.Context, string) error{a.Save, a.Join, a.Leave, a.Comment} {
		assert.ErrorIs(t, fn(ctx, "e42"), common.ErrUnknownEvent)
	}
}

func TestEvents_Listing(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.Events(ctx))
	lines := strings.Split(strings.TrimSpace(a.out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "e1 "))
	assert.Contains(t, lines[0], "[A] event 1")

	a.register(t)
	require.NoError(t, a.Save(ctx, "e1"))
	require.NoError(t, a.Join(ctx, "e2"))
	a.out.Reset()

	require.NoError(t, a.Events(ctx))
	lines = strings.Split(strings.TrimSpace(a.out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], " S  ")
	assert.Contains(t, lines[1], " SJ ")
	assert.Contains(t, lines[2], "     ")
}

func TestSaveJoinLeave(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	a.register(t)

	require.NoError(t, a.Save(ctx, "e1"))
	require.NoError(t, a.Save(ctx, "e1"))
	require.NoError(t, a.Join(ctx, "e3"))
	require.NoError(t, a.Leave(ctx, "e3"))

	assert.Equal(t, "Saved event 1\nRemoved event 1 from saved\nJoined event 3\nLeft event 3\n", a.out.String())

	u, err := a.authService.CurrentUser(ctx)
	require.NoError(t, err)
	st, err := a.eventService.Peek(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"e3"}, st.Saved)
	assert.Empty(t, st.Joined)
}

func TestComment(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()
	a.register(t)

	t.Run("not joined", func(t *testing.T) {
		a.out.Reset()
		require.NoError(t, a.Comment(ctx, "e1"))
		assert.Equal(t, "Join e1 before commenting on it\n", a.out.String())
	})

	require.NoError(t, a.Join(ctx, "e1"))

	t.Run("set", func(t *testing.T) {
		a.out.Reset()
		stubAnswers(t, "great talk")
		require.NoError(t, a.Comment(ctx, "e1"))
		assert.Equal(t, "Comment saved\n", a.out.String())
	})

	t.Run("shows current and cancels on EOF", func(t *testing.T) {
		a.out.Reset()
		stubAnswers(t)
		require.NoError(t, a.Comment(ctx, "e1"))
		assert.Equal(t, "Current comment: great talk\nCancelled\n", a.out.String())
	})

	t.Run("my lists comment", func(t *testing.T) {
		a.out.Reset()
		require.NoError(t, a.My(ctx))
		assert.Equal(t, "e1   event 1 | عنوان رویداد ۱\n     comment: great talk\n", a.out.String())
	})

	t.Run("empty clears", func(t *testing.T) {
		a.out.Reset()
		stubAnswers(t, "")
		require.NoError(t, a.Comment(ctx, "e1"))
		assert.Equal(t, "Current comment: great talk\nComment cleared\n", a.out.String())
	})
}

func TestMy_Empty(t *testing.T) {
	a := newTestApp(t)
	a.register(t)

	require.NoError(t, a.My(context.Background()))
	assert.Equal(t, "You have not joined any events yet\n", a.out.String())
}

func TestRun_EndToEnd(t *testing.T) {
	stubTerminal(t, false, nil, nil)

	a := newTestApp(t)
	a.reader = reader(
		"register",
		"Ali Rezaei",
		"09121112233",
		"pw",
		"pw",
		"join e2",
		"comment e2",
		"see you there",
		"logout",
		"my",
		"exit",
	)

	a.Run(context.Background())

	raw, err := a.mem.Get(context.Background(), "ev_user_data")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "see you there")

	session, err := a.mem.Get(context.Background(), "ev_session")
	require.NoError(t, err)
	assert.Nil(t, session)
	out := a.out.String()
	assert.Contains(t, out, "Welcome to eventreg")
	assert.Contains(t, out, "ev (Ali Rezaei)> ")
	assert.Contains(t, out, "please log in first")
	assert.True(t, strings.HasSuffix(out, "Bye!\n"))
}

func TestNewApp_TerminalFdFromInput(t *testing.T) {
	a := NewApp(nil, nil, catalog.Default(), logging.Nop(), strings.NewReader(""), io.Discard)
	assert.Equal(t, -1, a.inFd)

	f, err := os.CreateTemp(t.TempDir(), "in")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	a = NewApp(nil, nil, catalog.Default(), logging.Nop(), f, io.Discard)
	assert.Equal(t, int(f.Fd()), a.inFd)
}
