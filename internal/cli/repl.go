package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/eventreg/internal/common"
)

var errNotLoggedIn = errors.New("please log in first")

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a recording stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Events(ctx context.Context) error
	Save(ctx context.Context, eventID string) error
	Join(ctx context.Context, eventID string) error
	Leave(ctx context.Context, eventID string) error
	Comment(ctx context.Context, eventID string) error
	My(ctx context.Context) error
}

// runREPL reads commands line by line from reader, dispatches them to a and
// writes prompts and messages to out.
//
//	help             show available commands
//	register         create an account and log in
//	login | logout   start or end the session
//	whoami           show the current user
//	events           list the catalog (with marks when logged in)
//	save <id>        toggle the saved mark of an event
//	join <id>        join an event (also saves it)
//	leave <id>       leave a joined event
//	comment <id>     edit the comment on a joined event
//	my               list joined events with comments
//	exit | quit      leave the program
//
// Handler errors are reported to the user and the loop keeps going. It
// returns on EOF, on exit/quit or as soon as ctx is done, even while a read
// is pending.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(out, "ev %s> ", statusFn())
		line, err := readLine(ctx, reader)
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				fmt.Fprintln(out, "Available commands: whoami, events, save <id>, join <id>, leave <id>, comment <id>, my, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: register, login, events, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "events", "l":
			cmdErr = a.Events(ctx)

		case "save", "join", "leave", "comment":
			if len(args) == 0 {
				fmt.Fprintf(out, "Usage: %s <id>\n", cmd)
				continue
			}
			cmdErr = dispatchEvent(ctx, a, cmd, args[0])

		case "my":
			cmdErr = a.My(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil && ctx.Err() == nil {
			fmt.Fprintln(out, describe(cmdErr))
		}
	}
}

func dispatchEvent(ctx context.Context, a execIface, cmd, id string) error {
	switch cmd {
	case "save":
		return a.Save(ctx, id)
	case "join":
		return a.Join(ctx, id)
	case "leave":
		return a.Leave(ctx, id)
	default:
		return a.Comment(ctx, id)
	}
}

// describe turns a handler error into a line for the user.
func describe(err error) string {
	switch {
	case errors.Is(err, errNotLoggedIn):
		return errNotLoggedIn.Error()
	case errors.Is(err, common.ErrValidation):
		return "All fields are required and the passwords must match."
	case errors.Is(err, common.ErrDuplicatePhone):
		return "This phone number is already registered."
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Wrong phone number or password."
	case errors.Is(err, common.ErrUnknownEvent):
		return "Unknown event id, type 'events' to see the list."
	default:
		return "Error: " + err.Error()
	}
}
