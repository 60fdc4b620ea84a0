package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/gophusers/internal/client/client"
	"github.com/dmitrijs2005/gophusers/internal/client/config"
)

type App struct {
	config *config.Config
	client client.Client
	reader *bufio.Reader
	out    io.Writer
	email  string
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		client: apiClient,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.client.IsLoggedIn()
}

func (a *App) getStatus() string {
	if a.email == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.email)
}

// Run checks that the server answers and then hands control to the REPL
// until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to gophusers CLI (type 'help' for commands)")

	if err := a.client.Ping(ctx); err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			log.Printf("server %s is unavailable, commands will fail until it is back", a.config.ServerURL)
		} else {
			log.Printf("health check failed: %v", err)
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
