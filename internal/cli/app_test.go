package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/classkeeper/internal/logging"
	"github.com/dmitrijs2005/classkeeper/internal/notify"
	"github.com/dmitrijs2005/classkeeper/internal/schema/schematest"
	"github.com/dmitrijs2005/classkeeper/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(schematest.OpenRaw(t), logging.Nop())
}

// stubSecrets answers password and PIN prompts from a queue.
func stubSecrets(t *testing.T, secrets ...string) {
	t.Helper()
	old := getSecret
	t.Cleanup(func() { getSecret = old })
	getSecret = func(_ io.Writer, _ string) ([]byte, error) {
		if len(secrets) == 0 {
			return nil, errors.New("no more secrets")
		}
		s := secrets[0]
		secrets = secrets[1:]
		return []byte(s), nil
	}
}

type session struct {
	app      *App
	out      *bytes.Buffer
	notifier *notify.LogNotifier
	err      error
}

func runApp(t *testing.T, st *store.Store, lines ...string) *session {
	t.Helper()
	out := &bytes.Buffer{}
	n := notify.NewLogNotifier(logging.Nop())
	app := NewApp(st, n, logging.Nop(), strings.NewReader(strings.Join(lines, "\n")+"\n"), out)
	app.now = func() time.Time { return clock }
	err := app.Run(context.Background())
	return &session{app: app, out: out, notifier: n, err: err}
}

func pendingIDs(n *notify.LogNotifier) []int64 {
	var ids []int64
	for _, r := range n.Pending() {
		ids = append(ids, r.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

var registerAndLogin = []string{
	"register", "a@b.edu",
	"login", " A@B.edu ",
}

var termAndCourse = []string{
	"addterm", "Fall 2024", "2024-09-01", "2024-12-31",
	"addcourse 1", "Calculus II", "2024-09-02", "2024-12-20", "", "",
	"Anika Patel", "555-123-4567", "anika.patel@example.edu", "Bring calculator", "y", "y",
}

func TestApp_FullSession(t *testing.T) {
	st := newStore(t)
	stubSecrets(t, "pw1", "pw1")

	lines := append([]string{}, registerAndLogin...)
	lines = append(lines, termAndCourse...)
	lines = append(lines,
		"courses 1",
		"addassessment 1", "objective", "Final OA", "2024-12-01", "2024-12-10", "", "", "n", "y",
		"addassessment 1", "oa",
		"addtodo 1", "Read chapter 3", "", "2024-10-01", "y",
		"search calc",
		"report",
		"done 1",
		"exit",
	)
	s := runApp(t, st, lines...)
	require.NoError(t, s.err)
	out := s.out.String()

	for _, want := range []string{
		"Success!",
		"Signed in as a@b.edu",
		"Term 1 saved",
		"Course 1 saved",
		"Anika Patel",
		"Assessment 1 saved",
		"validation error",
		"To-do 1 saved",
		"1 match(es)",
		"Terms: 1  Courses: 1  Open to-dos: 1",
		"Objective: 1  Performance: 0  Tests: 0",
		"Generated: Aug 1, 2024 12:00 PM",
		"To-do 1 completed",
	} {
		assert.Contains(t, out, want)
	}

	ctx := context.Background()
	item, err := st.Todos.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, item.IsCompleted)

	as, err := st.Assessments.ListByCourse(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, as, 1)

	// course start and end, assessment end; the to-do reminder went with done
	assert.Equal(t, []int64{11, 12, 14}, pendingIDs(s.notifier))
}

func TestApp_SessionSurvivesRestart(t *testing.T) {
	st := newStore(t)
	stubSecrets(t, "pw1", "pw1")

	s := runApp(t, st, append(registerAndLogin, "exit")...)
	require.NoError(t, s.err)

	sid, err := st.Sessions.SessionID(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, sid)

	s = runApp(t, st, "whoami", "terms", "logout", "terms", "exit")
	require.NoError(t, s.err)
	out := s.out.String()
	assert.Contains(t, out, "a@b.edu (session "+sid+")")
	assert.Contains(t, out, "ck (a@b.edu)> ")
	assert.Contains(t, out, "No terms yet")
	assert.Contains(t, out, "Signed out")
	assert.Contains(t, out, "Please login first")

	s = runApp(t, st, "exit")
	require.NoError(t, s.err)
	assert.Empty(t, s.app.userName)
}

func TestApp_BadLoginAndDuplicateRegister(t *testing.T) {
	st := newStore(t)
	stubSecrets(t, "pw1", "other", "wrong")

	s := runApp(t, st,
		"register", "a@b.edu",
		"register", "A@B.EDU",
		"login", "a@b.edu",
		"terms",
		"exit",
	)
	require.NoError(t, s.err)
	out := s.out.String()
	assert.Contains(t, out, "An account with this email already exists")
	assert.Contains(t, out, "Invalid email or password")
	assert.Contains(t, out, "Please login first")
}

func TestApp_RemindersRestoredAtStart(t *testing.T) {
	st := newStore(t)
	stubSecrets(t, "pw1", "pw1")

	s := runApp(t, st, append(append(append([]string{}, registerAndLogin...), termAndCourse...), "exit")...)
	require.NoError(t, s.err)

	s = runApp(t, st, "exit")
	require.NoError(t, s.err)
	assert.Equal(t, []int64{11, 12}, pendingIDs(s.notifier))
}

func TestApp_AppLock(t *testing.T) {
	st := newStore(t)

	stubSecrets(t, "pw1", "pw1", "1234", "9999", "1234", "1234")
	s := runApp(t, st, append(registerAndLogin, "lock", "lock", "exit")...)
	require.NoError(t, s.err)
	assert.Contains(t, s.out.String(), "PINs do not match")
	assert.Contains(t, s.out.String(), "App lock set")

	stubSecrets(t, "0000", "1111", "2222")
	s = runApp(t, st, "exit")
	assert.ErrorIs(t, s.err, ErrLocked)
	assert.Equal(t, pinAttempts, strings.Count(s.out.String(), "Wrong PIN"))

	stubSecrets(t, "0000", "1234")
	s = runApp(t, st, "lock off", "exit")
	require.NoError(t, s.err)
	assert.Contains(t, s.out.String(), "App lock removed")

	set, err := st.AppLock.IsSet(context.Background())
	require.NoError(t, err)
	assert.False(t, set)
}

func TestApp_DeleteAndMissingParents(t *testing.T) {
	st := newStore(t)
	stubSecrets(t, "pw1", "pw1")

	lines := append(append([]string{}, registerAndLogin...), termAndCourse...)
	lines = append(lines,
		"courses 99",
		"addcourse x",
		"delete planet 1",
		"delete course 1",
		"courses 1",
		"delete course 1",
		"exit",
	)
	s := runApp(t, st, lines...)
	require.NoError(t, s.err)
	out := s.out.String()

	assert.Contains(t, out, "not found")
	assert.Contains(t, out, "usage error: addcourse <term id>")
	assert.Contains(t, out, "usage error: "+deleteUsage)
	assert.Equal(t, 2, strings.Count(out, "Deleted"))
	assert.Contains(t, out, "No courses in this term")
	assert.Empty(t, s.notifier.Pending())
}
