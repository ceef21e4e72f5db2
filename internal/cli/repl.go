package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App implements
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Lock(ctx context.Context, args []string) error

	Terms(ctx context.Context, args []string) error
	AddTerm(ctx context.Context, args []string) error
	Courses(ctx context.Context, args []string) error
	AddCourse(ctx context.Context, args []string) error
	Assessments(ctx context.Context, args []string) error
	AddAssessment(ctx context.Context, args []string) error
	Todos(ctx context.Context, args []string) error
	AddTodo(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Report(ctx context.Context, args []string) error
}

type command struct {
	run       func(execIface, context.Context, []string) error
	needLogin bool
}

var commands = map[string]command{
	"register":      {run: execIface.Register},
	"login":         {run: execIface.Login},
	"logout":        {run: execIface.Logout, needLogin: true},
	"whoami":        {run: execIface.WhoAmI, needLogin: true},
	"lock":          {run: execIface.Lock, needLogin: true},
	"terms":         {run: execIface.Terms, needLogin: true},
	"addterm":       {run: execIface.AddTerm, needLogin: true},
	"courses":       {run: execIface.Courses, needLogin: true},
	"addcourse":     {run: execIface.AddCourse, needLogin: true},
	"assessments":   {run: execIface.Assessments, needLogin: true},
	"addassessment": {run: execIface.AddAssessment, needLogin: true},
	"todos":         {run: execIface.Todos, needLogin: true},
	"addtodo":       {run: execIface.AddTodo, needLogin: true},
	"done":          {run: execIface.Done, needLogin: true},
	"delete":        {run: execIface.Delete, needLogin: true},
	"search":        {run: execIface.Search, needLogin: true},
	"report":        {run: execIface.Report, needLogin: true},
}

const (
	helpSignedOut = "Available commands: register, login, exit"
	helpSignedIn  = "Available commands: terms, addterm, courses <term>, addcourse <term>, " +
		"assessments <course>, addassessment <course>, todos [course], addtodo [course], done <todo>, " +
		"delete <term|course|assessment|todo> <id>, search <text>, report, whoami, lock, logout, exit"
)

// runREPL reads commands from r until EOF or exit. Command errors are shown
// to the user and do not stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "ck %s> ", statusFn())
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		name, args := strings.ToLower(parts[0]), parts[1:]

		switch name {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpSignedIn)
			} else {
				fmt.Fprintln(w, helpSignedOut)
			}
			continue
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		}

		cmd, ok := commands[name]
		switch {
		case !ok:
			fmt.Fprintln(w, "Unknown command:", name)
		case cmd.needLogin && !a.isLoggedIn():
			fmt.Fprintln(w, "Please login first")
		default:
			if cerr := cmd.run(a, ctx, args); cerr != nil {
				report(w, cerr)
			}
		}
		if err != nil {
			return
		}
	}
}

func report(w io.Writer, err error) {
	if errors.Is(err, ErrUsage) {
		fmt.Fprintln(w, err.Error())
		return
	}
	fmt.Fprintln(w, "Error:", err)
}
