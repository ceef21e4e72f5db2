package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

// DateLayout is the format dates are typed in.
const DateLayout = "2006-01-02"

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// getSimpleText and getSecret point to the interactive helpers and are
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getSecret     = GetSecret
)

// GetSimpleText prints a prompt to w and reads one line from reader with
// surrounding space trimmed. A partial line before EOF is returned as is.
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetSecret prints prompt and reads a value from the terminal without echo.
// The caller should wipe the returned slice.
func GetSecret(w io.Writer, prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return nil, err
	}
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ParseDate reads a calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, usageError("date must look like " + DateLayout)
	}
	return t, nil
}

// ParseOptionalDate returns nil for blank input.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseYesNo treats y and yes as true and anything else as false.
func ParseYesNo(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

// argID parses args[i] as a positive id.
func argID(args []string, i int, usage string) (int64, error) {
	if len(args) <= i {
		return 0, usageError(usage)
	}
	id, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError(usage)
	}
	return id, nil
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDate(*t)
}

func formatNotes(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
