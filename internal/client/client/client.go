package client

import "context"

// User is the public view of an account as returned by the API.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Client interface {
	Register(ctx context.Context, name, email string, password []byte) (*User, error)
	Login(ctx context.Context, email string, password []byte) error
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id string) (*User, error)
	UpdateUser(ctx context.Context, id string, name *string, password []byte) (*User, error)
	DeleteUser(ctx context.Context, id string) error
	Logout()
	IsLoggedIn() bool
	Ping(ctx context.Context) error
}
