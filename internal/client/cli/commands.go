package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophusers/internal/client/client"
	"github.com/dmitrijs2005/gophusers/internal/common"
)

var (
	errNotLoggedIn      = errors.New("not logged in, use 'login' first")
	errPasswordMismatch = errors.New("passwords do not match")
	errEmptyName        = errors.New("name should not be empty")
)

// getSimpleText, getPassword and confirm are indirections over the
// interactive helpers so tests can script the prompts.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	confirm       = Confirm
)

// describeError turns client errors into short messages for the prompt.
func describeError(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, client.ErrUnauthorized):
		return "unauthorized, log in again"
	case errors.As(err, &apiErr):
		return apiErr.Message
	default:
		return err.Error()
	}
}

func (a *App) printUser(u *client.User) {
	fmt.Fprintf(a.out, "%s\t%s\t%s\n", u.ID, u.Name, u.Email)
}

// readNewPassword asks for a password twice and returns it only when both
// entries match. The caller owns and wipes the result.
func (a *App) readNewPassword() ([]byte, error) {
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return nil, err
	}
	again, err := getPassword("Repeat password", a.out)
	if err != nil {
		common.WipeByteArray(password)
		return nil, err
	}
	defer common.WipeByteArray(again)

	if !bytes.Equal(password, again) {
		common.WipeByteArray(password)
		return nil, errPasswordMismatch
	}
	return password, nil
}

// Register prompts for name, email and password and creates the account.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := a.readNewPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s with id %s\n", u.Email, u.ID)
	return nil
}

// Login prompts for credentials and keeps the access token on success.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Login(ctx, email, password); err != nil {
		return err
	}

	a.email = email
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) List(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	users, err := a.client.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users")
		return nil
	}
	for i := range users {
		a.printUser(&users[i])
	}
	return nil
}

func (a *App) Get(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	u, err := a.client.GetUser(ctx, id)
	if err != nil {
		return err
	}
	a.printUser(u)
	return nil
}

func (a *App) Rename(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	name, err := getSimpleText(a.reader, "Enter new name", a.out)
	if err != nil {
		return err
	}
	if name == "" {
		return errEmptyName
	}

	u, err := a.client.UpdateUser(ctx, id, &name, nil)
	if err != nil {
		return err
	}
	a.printUser(u)
	return nil
}

func (a *App) Passwd(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	password, err := a.readNewPassword()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.client.UpdateUser(ctx, id, nil, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}

	ok, err := confirm(a.reader, fmt.Sprintf("Delete user %s?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.client.DeleteUser(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

// Logout drops the access token. Tokens are not revoked server-side.
func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.email = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
