package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	fail     error

	calls []string
	args  [][]string
}

func (f *fakeExec) rec(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.fail
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) Register(ctx context.Context, args []string) error {
	return f.rec("register", args)
}
func (f *fakeExec) Login(ctx context.Context, args []string) error {
	f.loggedIn = true
	return f.rec("login", args)
}
func (f *fakeExec) Logout(ctx context.Context, args []string) error {
	f.loggedIn = false
	return f.rec("logout", args)
}
func (f *fakeExec) WhoAmI(ctx context.Context, args []string) error {
	return f.rec("whoami", args)
}
func (f *fakeExec) Lock(ctx context.Context, args []string) error  { return f.rec("lock", args) }
func (f *fakeExec) Terms(ctx context.Context, args []string) error { return f.rec("terms", args) }
func (f *fakeExec) AddTerm(ctx context.Context, args []string) error {
	return f.rec("addterm", args)
}
func (f *fakeExec) Courses(ctx context.Context, args []string) error {
	return f.rec("courses", args)
}
func (f *fakeExec) AddCourse(ctx context.Context, args []string) error {
	return f.rec("addcourse", args)
}
func (f *fakeExec) Assessments(ctx context.Context, args []string) error {
	return f.rec("assessments", args)
}
func (f *fakeExec) AddAssessment(ctx context.Context, args []string) error {
	return f.rec("addassessment", args)
}
func (f *fakeExec) Todos(ctx context.Context, args []string) error { return f.rec("todos", args) }
func (f *fakeExec) AddTodo(ctx context.Context, args []string) error {
	return f.rec("addtodo", args)
}
func (f *fakeExec) Done(ctx context.Context, args []string) error   { return f.rec("done", args) }
func (f *fakeExec) Delete(ctx context.Context, args []string) error { return f.rec("delete", args) }
func (f *fakeExec) Search(ctx context.Context, args []string) error { return f.rec("search", args) }
func (f *fakeExec) Report(ctx context.Context, args []string) error { return f.rec("report", args) }

func run(exec execIface, lines ...string) string {
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, in, &out)
	return out.String()
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	exec := &fakeExec{}
	out := run(exec,
		"help",
		"terms",
		"login",
		"help",
		"addterm",
		"courses 3",
		"SEARCH calc ii",
		"foobar",
		"exit",
		"report",
	)

	assert.Equal(t, []string{"login", "addterm", "courses", "search"}, exec.calls)
	assert.Equal(t, []string{"3"}, exec.args[2])
	assert.Equal(t, []string{"calc", "ii"}, exec.args[3])

	assert.Contains(t, out, helpSignedOut)
	assert.Contains(t, out, helpSignedIn)
	assert.Contains(t, out, "Please login first")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
	assert.Contains(t, out, "ck status> ")
}

func TestRunREPL_EndsOnEOFWithoutNewline(t *testing.T) {
	exec := &fakeExec{loggedIn: true}
	run(exec, "", "   ", "todos")
	assert.Equal(t, []string{"todos"}, exec.calls)
}

func TestRunREPL_ErrorsDoNotStopTheLoop(t *testing.T) {
	exec := &fakeExec{loggedIn: true, fail: errors.New("boom")}
	out := run(exec, "terms", "report", "quit")

	assert.Equal(t, []string{"terms", "report"}, exec.calls)
	assert.Equal(t, 2, strings.Count(out, "Error: boom"))
}

func TestReport_UsageErrorsAreShownPlain(t *testing.T) {
	var out bytes.Buffer
	report(&out, usageError("courses <term id>"))
	assert.Equal(t, "usage error: courses <term id>\n", out.String())

	out.Reset()
	report(&out, errors.New("disk full"))
	assert.Equal(t, "Error: disk full\n", out.String())
}

func TestCommandTable_OnlyAccountCommandsWorkSignedOut(t *testing.T) {
	for name, cmd := range commands {
		open := name == "register" || name == "login"
		require.Equal(t, !open, cmd.needLogin, name)
	}
}
