package dto

import (
	"time"

	"github.com/spec-kit/gym-portal/internal/domain"
)

// DayRequest describes one day of a program payload.
type DayRequest struct {
	DayOfWeek       int      `json:"day_of_week" validate:"gte=0,lte=6"`
	DayName         string   `json:"day_name" validate:"required"`
	IsRestDay       bool     `json:"is_rest_day"`
	RestDescription *string  `json:"rest_description"`
	CourseIDs       []string `json:"course_ids"`
}

// ProgramRequest payload for program creation.
type ProgramRequest struct {
	Name        string       `json:"name" validate:"required"`
	Description *string      `json:"description"`
	Days        []DayRequest `json:"days" validate:"required,min=1,dive"`
}

// AssignProgramRequest payload.
type AssignProgramRequest struct {
	ProgramID string `json:"program_id" validate:"required"`
}

// DayResponse projection.
type DayResponse struct {
	ID              string   `json:"id"`
	DayOfWeek       int      `json:"day_of_week"`
	DayName         string   `json:"day_name"`
	IsRestDay       bool     `json:"is_rest_day"`
	RestDescription *string  `json:"rest_description,omitempty"`
	CourseIDs       []string `json:"course_ids"`
}

// ProgramResponse projection.
type ProgramResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	Days        []DayResponse `json:"days"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewProgramResponse maps a domain program.
func NewProgramResponse(program *domain.WeeklyProgram) ProgramResponse {
	days := make([]DayResponse, 0, len(program.Days))
	for i := range program.Days {
		day := &program.Days[i]
		courseIDs := day.CourseIDs
		if courseIDs == nil {
			courseIDs = []string{}
		}
		days = append(days, DayResponse{
			ID:              day.ID,
			DayOfWeek:       day.DayOfWeek,
			DayName:         day.DayName,
			IsRestDay:       day.IsRestDay,
			RestDescription: day.RestDescription,
			CourseIDs:       courseIDs,
		})
	}
	return ProgramResponse{
		ID:          program.ID,
		Name:        program.Name,
		Description: program.Description,
		Days:        days,
		CreatedAt:   program.CreatedAt,
		UpdatedAt:   program.UpdatedAt,
	}
}

// NewProgramResponses maps a program list.
func NewProgramResponses(programs []domain.WeeklyProgram) []ProgramResponse {
	out := make([]ProgramResponse, 0, len(programs))
	for i := range programs {
		out = append(out, NewProgramResponse(&programs[i]))
	}
	return out
}
