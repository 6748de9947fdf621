package dto

// GenerateTimetableRequest is the scheduling problem posted by clients. Scalars that have a
// default are pointers so an omitted field can be told apart from an explicit zero.
type GenerateTimetableRequest struct {
	Courses       []CourseRequest       `json:"courses" mapstructure:"courses" validate:"dive"`
	Instructors   []InstructorRequest   `json:"instructors" mapstructure:"instructors" validate:"dive"`
	Rooms         []RoomRequest         `json:"rooms" mapstructure:"rooms" validate:"dive"`
	StudentGroups []StudentGroupRequest `json:"studentGroups" mapstructure:"studentGroups" validate:"dive"`
	Sections      []SectionRequest      `json:"sections" mapstructure:"sections" validate:"dive"`
}

// ComponentCount totals the components over all courses.
func (r GenerateTimetableRequest) ComponentCount() int {
	total := 0
	for _, course := range r.Courses {
		total += len(course.Components)
	}
	return total
}

// CourseRequest describes one course.
type CourseRequest struct {
	CourseID   string             `json:"courseID" mapstructure:"courseID" validate:"required"`
	CourseName string             `json:"courseName" mapstructure:"courseName"`
	CourseType *string            `json:"courseType,omitempty" mapstructure:"courseType"`
	AllYear    bool               `json:"allYear" mapstructure:"allYear"`
	Components []ComponentRequest `json:"components" mapstructure:"components" validate:"dive"`
}

// ComponentRequest describes a lecture, lab or tutorial of a course.
type ComponentRequest struct {
	ComponentID             string   `json:"componentID" mapstructure:"componentID"`
	Type                    string   `json:"type" mapstructure:"type"`
	LabType                 string   `json:"labType,omitempty" mapstructure:"labType"`
	DurationSlots           *int     `json:"durationSlots,omitempty" mapstructure:"durationSlots" validate:"omitempty,min=1,max=40"`
	MinCapacity             *int     `json:"minCapacity,omitempty" mapstructure:"minCapacity" validate:"omitempty,min=0"`
	InstructorQualification string   `json:"instructorQualification" mapstructure:"instructorQualification"`
	RequiresLectureFirst    bool     `json:"requiresLectureFirst" mapstructure:"requiresLectureFirst"`
	ConcurrentSections      bool     `json:"concurrentSections" mapstructure:"concurrentSections"`
	StudentGroups           []string `json:"studentGroups,omitempty" mapstructure:"studentGroups"`
	StudentSections         []string `json:"studentSections,omitempty" mapstructure:"studentSections"`
}

// InstructorRequest describes a member of teaching staff.
type InstructorRequest struct {
	InstructorID     string   `json:"instructorID" mapstructure:"instructorID"`
	Name             string   `json:"name" mapstructure:"name"`
	Type             *string  `json:"type,omitempty" mapstructure:"type"`
	Qualifications   []string `json:"qualifications" mapstructure:"qualifications"`
	MaxHoursWeekly   *int     `json:"maxHoursWeekly,omitempty" mapstructure:"maxHoursWeekly" validate:"omitempty,min=0"`
	UnavailableSlots []int    `json:"unavailableSlots,omitempty" mapstructure:"unavailableSlots"`
	PreferredSlots   []int    `json:"preferredSlots,omitempty" mapstructure:"preferredSlots"`
}

// RoomRequest describes a teaching room.
type RoomRequest struct {
	RoomID    string   `json:"roomID" mapstructure:"roomID"`
	Name      string   `json:"name" mapstructure:"name"`
	Type      string   `json:"type" mapstructure:"type"`
	LabType   string   `json:"labType,omitempty" mapstructure:"labType"`
	Capacity  int      `json:"capacity" mapstructure:"capacity"`
	Equipment []string `json:"equipment,omitempty" mapstructure:"equipment"`
}

// StudentGroupRequest describes a cohort and its sections.
type StudentGroupRequest struct {
	GroupID  string   `json:"groupID" mapstructure:"groupID"`
	Year     *int     `json:"year,omitempty" mapstructure:"year"`
	Major    *string  `json:"major,omitempty" mapstructure:"major"`
	Sections []string `json:"sections" mapstructure:"sections"`
	Size     int      `json:"size" mapstructure:"size"`
}

// SectionRequest describes one section.
type SectionRequest struct {
	SectionID       string   `json:"sectionID" mapstructure:"sectionID"`
	GroupID         string   `json:"groupID" mapstructure:"groupID"`
	Year            *int     `json:"year,omitempty" mapstructure:"year"`
	StudentCount    int      `json:"studentCount" mapstructure:"studentCount"`
	AssignedCourses []string `json:"assignedCourses" mapstructure:"assignedCourses"`
}

// GenerateTimetableResponse is returned for every scheduling run.
type GenerateTimetableResponse struct {
	Success        bool                 `json:"success"`
	Message        string               `json:"message"`
	Warnings       []string             `json:"warnings,omitempty"`
	Errors         []string             `json:"errors,omitempty"`
	RunID          string               `json:"runId,omitempty"`
	Sections       []SectionSchedule    `json:"sections,omitempty"`
	Statistics     *TimetableStatistics `json:"statistics,omitempty"`
	OptimizerMoves int                  `json:"optimizerMoves,omitempty"`
}

// SectionSchedule lists the sessions of one section.
type SectionSchedule struct {
	SectionID    string         `json:"sectionID"`
	GroupID      string         `json:"groupID"`
	Year         int            `json:"year"`
	StudentCount int            `json:"studentCount"`
	Schedule     []SessionEntry `json:"schedule"`
}

// SessionEntry is one placed session as seen by a section.
type SessionEntry struct {
	SlotIndex    int    `json:"slotIndex"`
	CourseID     string `json:"courseID"`
	ComponentID  string `json:"componentID"`
	Type         string `json:"type"`
	RoomID       string `json:"roomID"`
	InstructorID string `json:"instructorID"`
	Duration     int    `json:"duration"`
	StudentCount int    `json:"studentCount"`
	Day          string `json:"day"`
	Period       int    `json:"period"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

// TimetableStatistics reports component completion.
type TimetableStatistics struct {
	TotalComponents     int    `json:"totalComponents"`
	ScheduledComponents int    `json:"scheduledComponents"`
	CompletionRate      string `json:"completionRate"`
}

// TimetableExportRow is one session flattened for CSV export.
type TimetableExportRow struct {
	SectionID    string `csv:"sectionID"`
	GroupID      string `csv:"groupID"`
	Day          string `csv:"day"`
	Period       int    `csv:"period"`
	StartTime    string `csv:"startTime"`
	EndTime      string `csv:"endTime"`
	CourseID     string `csv:"courseID"`
	ComponentID  string `csv:"componentID"`
	Type         string `csv:"type"`
	RoomID       string `csv:"roomID"`
	InstructorID string `csv:"instructorID"`
	Duration     int    `csv:"duration"`
	StudentCount int    `csv:"studentCount"`
	SlotIndex    int    `csv:"slotIndex"`
}

// ExportFormat selects the rendering of an exported timetable.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportPDF  ExportFormat = "pdf"
	ExportJSON ExportFormat = "json"
)

// ExportedTimetable is a rendered timetable file.
type ExportedTimetable struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProblemStatsResponse summarises a scheduling request without running it.
type ProblemStatsResponse struct {
	Courses         int            `json:"courses"`
	Components      int            `json:"components"`
	Instructors     int            `json:"instructors"`
	Rooms           int            `json:"rooms"`
	Groups          int            `json:"groups"`
	Sections        int            `json:"sections"`
	ComponentTypes  map[string]int `json:"componentTypes"`
	RoomTypes       map[string]int `json:"roomTypes"`
	InstructorRoles map[string]int `json:"instructorRoles"`
	SectionsByYear  map[string]int `json:"sectionsByYear"`
	RequiredSlots   int            `json:"requiredSlots"`
	AvailableSlots  int            `json:"availableSlots"`
}

// SchedulingRunQuery filters the run audit listing.
type SchedulingRunQuery struct {
	Outcome string `form:"outcome" validate:"omitempty,oneof=SUCCEEDED REJECTED FAULTED"`
	Limit   int    `form:"limit" validate:"omitempty,min=1,max=200"`
}
