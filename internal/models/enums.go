package models

import (
	"fmt"
	"strings"
)

// CourseStatus is persisted as its integer value.
type CourseStatus int

const (
	StatusInProgress CourseStatus = 0
	StatusCompleted  CourseStatus = 1
	StatusDropped    CourseStatus = 2
	StatusPlanToTake CourseStatus = 3
)

var courseStatusNames = map[CourseStatus]string{
	StatusInProgress: "InProgress",
	StatusCompleted:  "Completed",
	StatusDropped:    "Dropped",
	StatusPlanToTake: "PlanToTake",
}

func (s CourseStatus) String() string {
	if n, ok := courseStatusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("CourseStatus(%d)", int(s))
}

// ParseCourseStatus accepts the names returned by String, case-insensitively.
func ParseCourseStatus(s string) (CourseStatus, error) {
	for v, n := range courseStatusNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown course status %q", s)
}

// CourseStatusFromInt maps a stored integer onto a known status.
func CourseStatusFromInt(v int64) (CourseStatus, error) {
	s := CourseStatus(v)
	if _, ok := courseStatusNames[s]; !ok {
		return 0, fmt.Errorf("unknown course status %d", v)
	}
	return s, nil
}

// AssessmentType is persisted as its integer value. Older data and code
// refer to NormalTest as "Normal"; both spellings parse to NormalTest and
// there is no separate constant for the alias.
type AssessmentType int

const (
	Objective   AssessmentType = 0
	Performance AssessmentType = 1
	NormalTest  AssessmentType = 2
)

func (t AssessmentType) String() string {
	switch t {
	case Objective:
		return "Objective"
	case Performance:
		return "Performance"
	case NormalTest:
		return "NormalTest"
	default:
		return fmt.Sprintf("AssessmentType(%d)", int(t))
	}
}

// ParseAssessmentType accepts Objective, Performance, NormalTest and the
// legacy alias Normal.
func ParseAssessmentType(s string) (AssessmentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "objective", "oa":
		return Objective, nil
	case "performance", "pa":
		return Performance, nil
	case "normaltest", "normal", "test":
		return NormalTest, nil
	}
	return 0, fmt.Errorf("unknown assessment type %q", s)
}

// AssessmentTypeFromInt maps a stored integer onto a canonical type.
func AssessmentTypeFromInt(v int64) (AssessmentType, error) {
	switch AssessmentType(v) {
	case Objective, Performance, NormalTest:
		return AssessmentType(v), nil
	}
	return 0, fmt.Errorf("unknown assessment type %d", v)
}
