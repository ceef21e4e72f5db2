package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/classkeeper/internal/common"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether s has the user@host.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Validate checks the fields a course needs before it is saved: a title,
// complete instructor contact data and a sane date range. Errors wrap
// common.ErrorValidation.
func (c *Course) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if strings.TrimSpace(c.InstructorName) == "" {
		errs = append(errs, errors.New("instructor name is required"))
	}
	if strings.TrimSpace(c.InstructorPhone) == "" {
		errs = append(errs, errors.New("instructor phone is required"))
	}
	if email := strings.TrimSpace(c.InstructorEmail); email == "" {
		errs = append(errs, errors.New("instructor email is required"))
	} else if !ValidEmail(email) {
		errs = append(errs, fmt.Errorf("instructor email %q is invalid", email))
	}
	if c.EndDate.Before(c.StartDate) {
		errs = append(errs, errors.New("end date is before start date"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", common.ErrorValidation, errors.Join(errs...))
	}
	return nil
}

// Validate checks title and date range of a term.
func (t *Term) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("%w: end date is before start date", common.ErrorValidation)
	}
	return nil
}

// CheckAssessmentSlots enforces the presentation rule that a course holds at
// most one Objective and one Performance assessment. candidate may already be
// part of existing (same Id); it is then not counted twice.
func CheckAssessmentSlots(existing []Assessment, candidate Assessment) error {
	if candidate.Type == NormalTest {
		return nil
	}
	for _, a := range existing {
		if a.Id != 0 && a.Id == candidate.Id {
			continue
		}
		if a.Type == candidate.Type {
			return fmt.Errorf("%w: course already has an %s assessment", common.ErrorValidation, candidate.Type)
		}
	}
	return nil
}
