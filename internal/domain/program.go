package domain

import "time"

// DaySchedule is one day of a weekly program: either a rest day with a
// description, or an ordered list of course references. A rest day carries
// no course references.
type DaySchedule struct {
	ID              string
	ProgramID       string
	DayOfWeek       int // 0-6
	DayName         string
	IsRestDay       bool
	RestDescription *string
	CourseIDs       []string
}

// WeeklyProgram is a named workout week assignable to members.
type WeeklyProgram struct {
	ID          string
	Name        string
	Description *string
	Days        []DaySchedule
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
