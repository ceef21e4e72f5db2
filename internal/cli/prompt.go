package cli

import (
	"time"
)

func (a *App) text(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) date(prompt string) (time.Time, error) {
	s, err := a.text(prompt + " (" + DateLayout + ")")
	if err != nil {
		return time.Time{}, err
	}
	return ParseDate(s)
}

func (a *App) optionalDate(prompt string) (*time.Time, error) {
	s, err := a.text(prompt + " (" + DateLayout + ", blank for none)")
	if err != nil {
		return nil, err
	}
	return ParseOptionalDate(s)
}

func (a *App) yesNo(prompt string) (bool, error) {
	s, err := a.text(prompt + " [y/N]")
	if err != nil {
		return false, err
	}
	return ParseYesNo(s), nil
}
