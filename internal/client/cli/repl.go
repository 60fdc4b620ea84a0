package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	helpLoggedIn  = "Available commands: list (l), get <id>, rename <id>, passwd <id>, delete <id>, register, logout, exit"
	helpLoggedOut = "Available commands: register, login, exit"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	List(ctx context.Context) error
	Get(ctx context.Context, id string) error
	Rename(ctx context.Context, id string) error
	Passwd(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from reader until EOF or "exit"/"quit".
//
// The first field of a line is the command, the second (when required) is
// the user id. Errors returned by commands are printed and the loop goes on.
// The prompt and the command prompts share reader so no input is lost
// between them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gu %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
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
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "get", "rename", "passwd", "delete":
			if len(args) != 1 {
				printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
				continue
			}
			cmdErr = dispatchByID(ctx, a, cmd, args[0])

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describeError(cmdErr))
		}
	}
}

func dispatchByID(ctx context.Context, a execIface, cmd, id string) error {
	switch cmd {
	case "get":
		return a.Get(ctx, id)
	case "rename":
		return a.Rename(ctx, id)
	case "passwd":
		return a.Passwd(ctx, id)
	default:
		return a.Delete(ctx, id)
	}
}
