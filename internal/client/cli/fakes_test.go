package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophusers/internal/client/client"
)

type fakeClient struct {
	token string

	users   []client.User
	user    *client.User
	lastID  string
	name    *string
	pass    []byte
	email   string
	deleted []string

	registerErr, loginErr, listErr, getErr, updateErr, deleteErr, pingErr error
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Register(_ context.Context, name, email string, password []byte) (*client.User, error) {
	f.email, f.pass = email, append([]byte(nil), password...)
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &client.User{ID: "id-1", Name: name, Email: email}, nil
}

func (f *fakeClient) Login(_ context.Context, email string, password []byte) error {
	f.email, f.pass = email, append([]byte(nil), password...)
	if f.loginErr != nil {
		return f.loginErr
	}
	f.token = "token"
	return nil
}

func (f *fakeClient) ListUsers(context.Context) ([]client.User, error) {
	return f.users, f.listErr
}

func (f *fakeClient) GetUser(_ context.Context, id string) (*client.User, error) {
	f.lastID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.user, nil
}

func (f *fakeClient) UpdateUser(_ context.Context, id string, name *string, password []byte) (*client.User, error) {
	f.lastID, f.name = id, name
	if password != nil {
		f.pass = append([]byte(nil), password...)
	}
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	u := client.User{ID: id, Name: "old", Email: "a@b.io"}
	if name != nil {
		u.Name = *name
	}
	return &u, nil
}

func (f *fakeClient) DeleteUser(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeClient) Logout()                        { f.token = "" }
func (f *fakeClient) IsLoggedIn() bool               { return f.token != "" }
func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }

// newTestApp builds an App reading from input and writing into the returned buffer.
func newTestApp(fc *fakeClient, input string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		client: fc,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    out,
	}, out
}

// stubPasswords makes getPassword return the given values in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(string, io.Writer) ([]byte, error) {
		if i >= len(pws) {
			return nil, io.EOF
		}
		pw := []byte(pws[i])
		i++
		return pw, nil
	}
	t.Cleanup(func() { getPassword = orig })
}
