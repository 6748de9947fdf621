package models

// Timetable grid dimensions.
const (
	SlotsPerDay = 8
	Days        = 5
	SlotsMax    = SlotsPerDay * Days
)

// ComponentType identifies the kind of teaching session.
type ComponentType string

const (
	ComponentLecture  ComponentType = "lecture"
	ComponentLab      ComponentType = "lab"
	ComponentTutorial ComponentType = "tutorial"
)

// InstructorRole determines which component types an instructor may teach.
type InstructorRole string

const (
	RoleProfessor InstructorRole = "professor"
	RoleTA        InstructorRole = "ta"
	RolePartTime  InstructorRole = "part_time"
)

// RoomType classifies rooms by the sessions they can host.
type RoomType string

const (
	RoomLecture   RoomType = "lecture"
	RoomLab       RoomType = "lab"
	RoomClassroom RoomType = "classroom"
)

// Input defaults applied when a field is missing from the request.
const (
	DefaultCourseType     = "core"
	DefaultDurationSlots  = 1
	DefaultMaxHoursWeekly = 20
	DefaultYear           = 1
	DefaultMajor          = "general"
)

// Course groups the sessions that make up one subject.
type Course struct {
	CourseID   string            `json:"courseID"`
	CourseName string            `json:"courseName"`
	CourseType string            `json:"courseType"`
	AllYear    bool              `json:"allYear"`
	Components []CourseComponent `json:"components"`
}

// CourseComponent is a single schedulable session of a course.
type CourseComponent struct {
	ComponentID             string        `json:"componentID"`
	Type                    ComponentType `json:"type"`
	LabType                 string        `json:"labType,omitempty"`
	DurationSlots           int           `json:"durationSlots"`
	MinCapacity             int           `json:"minCapacity"`
	InstructorQualification string        `json:"instructorQualification"`
	RequiresLectureFirst    bool          `json:"requiresLectureFirst"`
	ConcurrentSections      bool          `json:"concurrentSections"`
	StudentGroups           []string      `json:"studentGroups,omitempty"`
	StudentSections         []string      `json:"studentSections,omitempty"`
	IsScheduled             bool          `json:"isScheduled"`
}

// Instructor is a member of staff who can teach components matching their qualifications.
type Instructor struct {
	InstructorID     string         `json:"instructorID"`
	Name             string         `json:"name"`
	Type             InstructorRole `json:"type"`
	Qualifications   []string       `json:"qualifications"`
	MaxHoursWeekly   int            `json:"maxHoursWeekly"`
	UnavailableSlots []int          `json:"unavailableSlots,omitempty"`
	PreferredSlots   []int          `json:"preferredSlots,omitempty"`
	ScheduledHours   int            `json:"scheduledHours"`
}

// Qualified reports whether the instructor holds the qualification tag.
func (i Instructor) Qualified(qualification string) bool {
	for _, q := range i.Qualifications {
		if q == qualification {
			return true
		}
	}
	return false
}

// Room is a physical teaching space.
type Room struct {
	RoomID    string   `json:"roomID"`
	Name      string   `json:"name"`
	Type      RoomType `json:"type"`
	LabType   string   `json:"labType,omitempty"`
	Capacity  int      `json:"capacity"`
	Equipment []string `json:"equipment,omitempty"`
}

// StudentGroup owns an ordered list of section IDs.
type StudentGroup struct {
	GroupID  string   `json:"groupID"`
	Year     int      `json:"year"`
	Major    string   `json:"major"`
	Sections []string `json:"sections"`
	Size     int      `json:"size"`
}

// Section is the atomic scheduling unit.
type Section struct {
	SectionID       string   `json:"sectionID"`
	GroupID         string   `json:"groupID"`
	Year            int      `json:"year"`
	StudentCount    int      `json:"studentCount"`
	AssignedCourses []string `json:"assignedCourses"`
}

// Enrolled reports whether the section takes the course.
func (s Section) Enrolled(courseID string) bool {
	for _, id := range s.AssignedCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// TimetableSlot is one cell of the [slot][section] grid.
type TimetableSlot struct {
	Taken        bool          `json:"taken"`
	Continuation bool          `json:"continuation"`
	CourseID     string        `json:"courseID,omitempty"`
	ComponentID  string        `json:"componentID,omitempty"`
	Type         ComponentType `json:"type,omitempty"`
	RoomID       string        `json:"roomID,omitempty"`
	InstructorID string        `json:"instructorID,omitempty"`
	Duration     int           `json:"duration,omitempty"`
	StudentCount int           `json:"studentCount,omitempty"`
}

// Primary reports whether the cell starts a session.
func (t TimetableSlot) Primary() bool {
	return t.Taken && !t.Continuation
}
