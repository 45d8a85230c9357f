package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Go(ctx context.Context, target string) error
	Apply(ctx context.Context, path string) error
	Contact(ctx context.Context) error
	Subscribe(ctx context.Context, email string) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Dash(ctx context.Context) error
	CMS(ctx context.Context, args []string) error
	Application(ctx context.Context, args []string) error
	Inquiry(ctx context.Context, args []string) error
	afterCommand(ctx context.Context)
}

const (
	publicHelp = "Available commands: go <view>, article <id>, apply [financial|support], contact, subscribe [email], login, exit"
	staffHelp  = "Staff commands: dash, cms <collection> [new|edit <id>|delete <id>], app <id> [status <s>|delete], inquiry <id> [status <s>|delete], logout"
)

// runREPL starts a simple read–eval–print loop for the CASIEC console.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF, when ctx ends, or when
// the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Everyone:
//	  - help                    show available commands
//	  - go <view>               open home, about, team, funding, support,
//	                            investment, articles, article/<id> or admin
//	  - article <id>            shorthand for go article/<id>
//	  - apply [path]            start an application (financial or support)
//	  - contact                 send a message to the team
//	  - subscribe [email]       join the newsletter
//	  - login                   staff sign-in (password, then emailed code)
//	  - exit | quit             leave the program
//
//	Signed in:
//	  - dash                    refresh and show the dashboard
//	  - cms <collection> ...    list, create, edit or delete content
//	  - app <id> ...            show, moderate or delete an application
//	  - inquiry <id> ...        open, moderate or delete an inquiry
//	  - logout                  sign out
//
// Errors returned by handlers are printed; toasts queued by a command are
// printed after it finishes.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("casiec %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("Input error:", err)
			}
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
			printlnFn(publicHelp)
			if a.isLoggedIn() {
				printlnFn(staffHelp)
			}

		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <view>")
				continue
			}
			cmdErr = a.Go(ctx, args[0])

		case "article":
			if len(args) == 0 {
				printlnFn("Usage: article <id>")
				continue
			}
			cmdErr = a.Go(ctx, "article/"+args[0])

		case "apply":
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			cmdErr = a.Apply(ctx, path)

		case "contact":
			cmdErr = a.Contact(ctx)

		case "subscribe":
			email := ""
			if len(args) > 0 {
				email = args[0]
			}
			cmdErr = a.Subscribe(ctx, email)

		case "login":
			cmdErr = a.Login(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "dash", "logout", "cms", "app", "inquiry":
			if !a.isLoggedIn() {
				printlnFn("Please sign in first (type 'login').")
				continue
			}
			cmdErr = dispatchStaff(ctx, a, cmd, args)

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		a.afterCommand(ctx)
	}
}

func dispatchStaff(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "dash":
		return a.Dash(ctx)
	case "logout":
		return a.Logout(ctx)
	case "cms":
		return a.CMS(ctx, args)
	case "app":
		return a.Application(ctx, args)
	default:
		return a.Inquiry(ctx, args)
	}
}
