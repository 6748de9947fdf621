package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

func TestValidateRequiresCollections(t *testing.T) {
	v := Validate(nil, nil, nil, nil, nil)

	assert.False(t, v.Valid())
	assert.Equal(t, []string{"No courses provided", "No instructors provided", "No rooms provided", "No sections provided"}, v.Errors)
}

func TestValidateWarnings(t *testing.T) {
	p := singleLectureProblem()
	p.courses = append(p.courses,
		models.Course{CourseID: "EMPTY"},
		models.Course{CourseID: "X", Components: []models.CourseComponent{
			{ComponentID: "X-L", Type: models.ComponentLecture},
			{ComponentID: "X-LAB", Type: models.ComponentLab},
			{ComponentID: "X-T", Type: models.ComponentTutorial},
			{ComponentID: "X-S", Type: models.ComponentType("seminar")},
		}},
	)
	p.sections = append(p.sections, models.Section{SectionID: "ORPHAN", GroupID: "G1"})

	v := Validate(p.courses, p.instructors, p.rooms, p.groups, p.sections)

	assert.True(t, v.Valid())
	assert.Equal(t, []string{
		"Course EMPTY has no components",
		"Lecture component X-L has no student groups",
		"lab component X-LAB has no student sections",
		"tutorial component X-T has no student sections",
		"Component X-S has unknown type seminar",
		"Section ORPHAN is not assigned to any group",
	}, v.Warnings)
}

func TestValidateDoesNotMutate(t *testing.T) {
	p := singleLectureProblem()
	before := p.courses[0]

	Validate(p.courses, p.instructors, p.rooms, p.groups, p.sections)

	assert.Equal(t, before, p.courses[0])
}

func TestCheckSolvability(t *testing.T) {
	p := departmentProblem()
	p.instructors = p.instructors[:1]
	p.rooms = []models.Room{{RoomID: "LAB-C", Type: models.RoomLab, LabType: "computer", Capacity: 30}}

	warnings := checkSolvability(p.courses, p.instructors, p.rooms)

	assert.Equal(t, []string{
		"No instructors qualified for: physics",
		"No lecture rooms available",
		"No classrooms available",
	}, warnings)
}

func TestSummarize(t *testing.T) {
	p := departmentProblem()

	stats := Summarize(p.courses, p.instructors, p.rooms, p.groups, p.sections)

	assert.Equal(t, 3, stats.Courses)
	assert.Equal(t, 7, stats.Components)
	assert.Equal(t, map[string]int{"lecture": 3, "lab": 2, "tutorial": 2}, stats.ComponentTypes)
	assert.Equal(t, map[string]int{"lecture": 2, "lab": 2, "classroom": 1}, stats.RoomTypes)
	assert.Equal(t, map[string]int{"professor": 2, "ta": 1, "part_time": 1}, stats.InstructorRoles)
	assert.Equal(t, []YearCount{{Year: 1, Sections: 2}, {Year: 2, Sections: 1}}, stats.SectionsByYear)
	// CS101-L 2*2, LAB 2*2, T 1*2, MATH-L 1*3, MATH-T 1*2, PHY-L 2*1, PHY-LAB 2*1
	assert.Equal(t, 19, stats.RequiredSlots)
}
