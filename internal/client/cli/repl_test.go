package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  []string
	after int
	goErr error
}

func (f *fakeExec) record(name string, args ...string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, strings.Join(args, " "))
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Go(_ context.Context, target string) error {
	_ = f.record("go", target)
	return f.goErr
}
func (f *fakeExec) Apply(_ context.Context, path string) error { return f.record("apply", path) }
func (f *fakeExec) Contact(context.Context) error               { return f.record("contact") }
func (f *fakeExec) Subscribe(_ context.Context, email string) error {
	return f.record("subscribe", email)
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Dash(context.Context) error { return f.record("dash") }
func (f *fakeExec) CMS(_ context.Context, args []string) error {
	return f.record("cms", args...)
}
func (f *fakeExec) Application(_ context.Context, args []string) error {
	return f.record("app", args...)
}
func (f *fakeExec) Inquiry(_ context.Context, args []string) error {
	return f.record("inquiry", args...)
}
func (f *fakeExec) afterCommand(context.Context) { f.after++ }

// stubPrintln captures everything printed through printlnFn.
func stubPrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func reader(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestRunREPL_PublicThenStaffCommands(t *testing.T) {
	stubPrintln(t)

	exec := &fakeExec{}
	in := reader(
		"help",
		"go team",
		"article 42",
		"apply financial",
		"subscribe ada@acme.ng",
		"contact",
		"login",
		"dash",
		"cms articles edit 7",
		"app a1 status approved",
		"inquiry c9",
		"logout",
		"exit",
		"go home",
	)

	runREPL(context.Background(), exec, func() string { return "#home" }, in)

	assert.Equal(t, []string{
		"go", "go", "apply", "subscribe", "contact", "login",
		"dash", "cms", "app", "inquiry", "logout",
	}, exec.calls)
	assert.Equal(t, "article/42", exec.args[1])
	assert.Equal(t, "articles edit 7", exec.args[7])
	assert.Equal(t, "a1 status approved", exec.args[8])
	assert.Equal(t, 12, exec.after, "help plus every dispatched command")
}

func TestRunREPL_StaffCommandsNeedLogin(t *testing.T) {
	out := stubPrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, reader("dash", "cms ticker new", "quit"))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Please sign in first (type 'login').")
}

func TestRunREPL_UsageUnknownAndErrors(t *testing.T) {
	out := stubPrintln(t)

	exec := &fakeExec{goErr: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "s" }, reader("go", "article", "frobnicate", "go x"))

	assert.Equal(t, []string{"go"}, exec.calls)
	assert.Contains(t, *out, "Usage: go <view>")
	assert.Contains(t, *out, "Usage: article <id>")
	assert.Contains(t, *out, "Unknown command: frobnicate")
	assert.Contains(t, *out, "Error: boom")
}

func TestRunREPL_StopsOnEOFAndCancelledContext(t *testing.T) {
	stubPrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("")))
	require.Empty(t, exec.calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runREPL(ctx, exec, func() string { return "" }, reader("go team"))
	require.Empty(t, exec.calls)
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	out := stubPrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, reader("help"))
	assert.Contains(t, *out, publicHelp)
	assert.NotContains(t, *out, staffHelp)

	*out = nil
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, reader("help"))
	assert.Contains(t, *out, staffHelp)
}
