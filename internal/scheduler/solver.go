// Package scheduler implements the greedy university timetable engine. Every call to
// GenerateTimetable builds its own run state, so a Solver can serve concurrent requests.
package scheduler

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// Result messages.
const (
	MessageGenerated        = "Timetable generated successfully"
	MessageValidationFailed = "Input validation failed"
	MessageFault            = "Timetable generation failed"
)

// Result is the outcome of one scheduling run. Timetable, Courses, Instructors and
// Sections are only populated on success.
type Result struct {
	Success  bool
	Message  string
	Warnings []string
	Errors   []string
	// Fault is set when the run aborted on an unexpected internal error.
	Fault bool

	Timetable   [][]models.TimetableSlot
	Courses     []models.Course
	Instructors []models.Instructor
	Sections    []models.Section
	Moves       int
}

// Statistics counts scheduled components over all courses of the result.
func (r Result) Statistics() Statistics {
	return CountComponents(r.Courses)
}

// Statistics summarises component completion.
type Statistics struct {
	TotalComponents     int
	ScheduledComponents int
}

// CompletionRate renders the statistic as "<scheduled>/<total>".
func (s Statistics) CompletionRate() string {
	return fmt.Sprintf("%d/%d", s.ScheduledComponents, s.TotalComponents)
}

// CountComponents counts components and those flagged as scheduled.
func CountComponents(courses []models.Course) Statistics {
	var stats Statistics
	for _, course := range courses {
		for _, component := range course.Components {
			stats.TotalComponents++
			if component.IsScheduled {
				stats.ScheduledComponents++
			}
		}
	}
	return stats
}

// Solver runs the scheduling pipeline.
type Solver struct {
	logger *zap.Logger
}

// New constructs a solver.
func New(logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{logger: logger}
}

// GenerateTimetable validates the input, places lectures, labs and tutorials in that order
// and finally relocates sessions out of undesirable slots. The inputs are not modified.
func (s *Solver) GenerateTimetable(courses []models.Course, instructors []models.Instructor, rooms []models.Room, groups []models.StudentGroup, sections []models.Section) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("scheduling run aborted", zap.Any("panic", rec))
			result = Result{
				Success: false,
				Message: MessageFault,
				Errors:  []string{fmt.Sprintf("Unexpected error: %v", rec)},
				Fault:   true,
			}
		}
	}()

	validation := Validate(courses, instructors, rooms, groups, sections)
	if !validation.Valid() {
		return Result{
			Success:  false,
			Message:  MessageValidationFailed,
			Warnings: validation.Warnings,
			Errors:   validation.Errors,
		}
	}

	r := newRun(s.logger, courses, instructors, rooms, groups, sections)
	r.warnings = append(r.warnings, validation.Warnings...)
	r.warnings = append(r.warnings, r.idx.duplicateWarnings()...)
	r.warnings = append(r.warnings, checkSolvability(r.courses, r.instructors, r.rooms)...)

	r.scheduleLectures()
	r.scheduleLabs()
	r.scheduleTutorials()
	moves := r.optimize()

	s.logger.Debug("scheduling run complete", zap.Int("sessions", r.primarySessions()), zap.Int("moves", moves), zap.Int("warnings", len(r.warnings)))

	return Result{
		Success:     true,
		Message:     MessageGenerated,
		Warnings:    r.warnings,
		Timetable:   r.avail.grid(),
		Courses:     r.courses,
		Instructors: r.instructors,
		Sections:    r.sections,
		Moves:       moves,
	}
}

// run is the state of one scheduling pass. It works on copies of the input.
type run struct {
	logger      *zap.Logger
	courses     []models.Course
	instructors []models.Instructor
	rooms       []models.Room
	groups      []models.StudentGroup
	sections    []models.Section
	idx         *index
	avail       *availability
	warnings    []string
}

func newRun(logger *zap.Logger, courses []models.Course, instructors []models.Instructor, rooms []models.Room, groups []models.StudentGroup, sections []models.Section) *run {
	r := &run{
		logger:      logger,
		courses:     copyCourses(courses),
		instructors: append([]models.Instructor(nil), instructors...),
		rooms:       append([]models.Room(nil), rooms...),
		groups:      append([]models.StudentGroup(nil), groups...),
		sections:    append([]models.Section(nil), sections...),
	}
	for i := range r.instructors {
		r.instructors[i].ScheduledHours = 0
	}
	r.idx = buildIndex(r.courses, r.instructors, r.rooms, r.groups, r.sections)
	for i := range r.sections {
		if r.sections[i].GroupID == "" {
			r.sections[i].GroupID = r.idx.sectionGroup[r.sections[i].SectionID]
		}
	}
	r.avail = newAvailability(len(r.sections))
	return r
}

func copyCourses(courses []models.Course) []models.Course {
	out := make([]models.Course, len(courses))
	for i, course := range courses {
		out[i] = course
		out[i].Components = append([]models.CourseComponent(nil), course.Components...)
		for j := range out[i].Components {
			out[i].Components[j].IsScheduled = false
		}
	}
	return out
}
