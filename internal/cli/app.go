package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/logging"
	"github.com/dmitrijs2005/classkeeper/internal/notify"
	"github.com/dmitrijs2005/classkeeper/internal/store"
)

// pinAttempts bounds the app-lock prompt at start-up.
const pinAttempts = 3

type App struct {
	store    *store.Store
	notifier notify.Notifier
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time

	userName string
}

func NewApp(st *store.Store, n notify.Notifier, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		store:    st,
		notifier: n,
		log:      log,
		reader:   bufio.NewReader(in),
		out:      out,
		now:      time.Now,
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) status() string {
	if a.userName == "" {
		return "(signed out)"
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// Run unlocks the app, restores the previous session and serves commands
// until the input ends or the user exits.
func (a *App) Run(ctx context.Context) error {
	if err := a.store.Init(ctx); err != nil {
		return err
	}
	if err := a.unlock(ctx); err != nil {
		return err
	}

	user, err := a.store.Sessions.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.userName = user

	if err := a.reschedule(ctx); err != nil {
		a.log.Warn(ctx, "failed to restore reminders", "error", err)
	}

	a.println("Welcome to classkeeper (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}

// unlock asks for the app-lock PIN when one is set.
func (a *App) unlock(ctx context.Context) error {
	set, err := a.store.AppLock.IsSet(ctx)
	if err != nil || !set {
		return err
	}
	for i := 0; i < pinAttempts; i++ {
		pin, err := getSecret(a.out, "Enter PIN: ")
		if err != nil {
			return err
		}
		ok, err := a.store.AppLock.ValidatePIN(ctx, string(pin))
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		a.println("Wrong PIN")
	}
	return ErrLocked
}

// reschedule hands every stored reminder that is still ahead to the notifier.
func (a *App) reschedule(ctx context.Context) error {
	var rs []notify.Reminder

	cs, err := a.store.Courses.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, c := range cs {
		rs = append(rs, notify.PlanCourse(c)...)
	}

	as, err := a.store.Assessments.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, it := range as {
		rs = append(rs, notify.PlanAssessment(it)...)
	}

	ds, err := a.store.Todos.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, d := range ds {
		rs = append(rs, notify.PlanTodo(d)...)
	}

	return a.remind(ctx, rs)
}
