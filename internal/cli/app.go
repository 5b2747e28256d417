package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/eventreg/internal/catalog"
	"github.com/dmitrijs2005/eventreg/internal/logging"
	"github.com/dmitrijs2005/eventreg/internal/models"
	"github.com/dmitrijs2005/eventreg/internal/services"
)

type App struct {
	authService  services.AuthService
	eventService services.EventStateService
	catalog      *catalog.Catalog
	log          logging.Logger
	reader       *bufio.Reader
	inFd         int
	out          io.Writer
}

// NewApp builds the client over in and out. Passwords are read without echo
// only when in is a terminal file such as os.Stdin.
func NewApp(as services.AuthService, es services.EventStateService, c *catalog.Catalog, log logging.Logger, in io.Reader, out io.Writer) *App {
	fd := -1
	if f, ok := in.(interface{ Fd() uintptr }); ok {
		fd = int(f.Fd())
	}

	return &App{
		authService:  as,
		eventService: es,
		catalog:      c,
		log:          log,
		reader:       bufio.NewReader(in),
		inFd:         fd,
		out:          out,
	}
}

// Run prints a greeting and serves the REPL until exit, end of input or
// ctx being done.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to eventreg (type 'help' for commands)")
	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader, a.out)
	a.log.Debug(ctx, "repl finished")
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	u, err := a.authService.CurrentUser(ctx)
	return err == nil && u != nil
}

func (a *App) status(ctx context.Context) string {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil || u == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", u.FullName)
}

// currentUser returns the logged-in user or errNotLoggedIn.
func (a *App) currentUser(ctx context.Context) (*models.User, error) {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errNotLoggedIn
	}
	return u, nil
}
