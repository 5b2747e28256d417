package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/eventreg/internal/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for the profile fields and creates the account. On
// success the new user is logged in.
func (a *App) Register(ctx context.Context) error {
	fullName, err := getSimpleText(ctx, a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(ctx, a.reader, "Phone number", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(ctx, a.reader, a.inFd, "Password", a.out)
	if err != nil {
		return err
	}
	confirm, err := getPassword(ctx, a.reader, a.inFd, "Repeat password", a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.Register(ctx, services.RegisterRequest{
		FullName:        fullName,
		Phone:           phone,
		Password:        password,
		PasswordConfirm: confirm,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", u.FullName)
	return nil
}

// Login prompts for phone and password and replaces the current session.
func (a *App) Login(ctx context.Context) error {
	phone, err := getSimpleText(ctx, a.reader, "Phone number", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(ctx, a.reader, a.inFd, "Password", a.out)
	if err != nil {
		return err
	}

	if _, err := a.authService.Login(ctx, phone, password); err != nil {
		return err
	}

	u, err := a.currentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", u.FullName)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s)\n", u.FullName, u.Phone)
	return nil
}
