package cli

import (
	"context"

	"github.com/dmitrijs2005/classkeeper/internal/common"
)

// Register prompts for an email and password and creates the account.
func (a *App) Register(ctx context.Context, args []string) error {
	email, err := a.text("Enter email")
	if err != nil {
		return err
	}
	password, err := getSecret(a.out, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	created, err := a.store.Accounts.CreateUser(ctx, email, string(password))
	if err != nil {
		return err
	}
	if !created {
		a.println("An account with this email already exists")
		return nil
	}
	a.println("Success!")
	return nil
}

// Login checks the credentials and remembers the user across restarts.
func (a *App) Login(ctx context.Context, args []string) error {
	email, err := a.text("Enter email")
	if err != nil {
		return err
	}
	password, err := getSecret(a.out, "Enter password: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ok, err := a.store.Sessions.SignIn(ctx, email, string(password))
	if err != nil {
		return err
	}
	if !ok {
		a.log.Info(ctx, "login failed", "email", email)
		a.println("Invalid email or password")
		return nil
	}

	user, err := a.store.Sessions.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.userName = user
	a.printf("Signed in as %s\n", user)
	return nil
}

func (a *App) Logout(ctx context.Context, args []string) error {
	if err := a.store.Sessions.SignOut(ctx); err != nil {
		return err
	}
	a.userName = ""
	a.println("Signed out")
	return nil
}

// WhoAmI prints the signed-in email and the current session id.
func (a *App) WhoAmI(ctx context.Context, args []string) error {
	user, err := a.store.Sessions.CurrentUser(ctx)
	if err != nil {
		return err
	}
	sid, err := a.store.Sessions.SessionID(ctx)
	if err != nil {
		return err
	}
	a.printf("%s (session %s)\n", user, sid)
	return nil
}

// Lock sets the app-lock PIN, or removes it with "lock off".
func (a *App) Lock(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "off" {
		if err := a.store.AppLock.Clear(ctx); err != nil {
			return err
		}
		a.println("App lock removed")
		return nil
	}

	pin, err := getSecret(a.out, "New PIN: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pin)
	confirm, err := getSecret(a.out, "Repeat PIN: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(pin) != string(confirm) {
		return usageError("PINs do not match")
	}
	if err := a.store.AppLock.SetPIN(ctx, string(pin)); err != nil {
		return err
	}
	a.println("App lock set")
	return nil
}
