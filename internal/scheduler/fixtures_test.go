package scheduler

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

type problem struct {
	courses     []models.Course
	instructors []models.Instructor
	rooms       []models.Room
	groups      []models.StudentGroup
	sections    []models.Section
}

func (p problem) solve() Result {
	return New(zap.NewNop()).GenerateTimetable(p.courses, p.instructors, p.rooms, p.groups, p.sections)
}

func (p problem) newRun() *run {
	return newRun(zap.NewNop(), p.courses, p.instructors, p.rooms, p.groups, p.sections)
}

func singleLectureProblem() problem {
	return problem{
		courses: []models.Course{{
			CourseID:   "CS101",
			CourseName: "Intro to Computing",
			CourseType: models.DefaultCourseType,
			Components: []models.CourseComponent{{
				ComponentID:             "CS101-L",
				Type:                    models.ComponentLecture,
				DurationSlots:           1,
				MinCapacity:             30,
				InstructorQualification: "cs",
				StudentGroups:           []string{"G1"},
			}},
		}},
		instructors: []models.Instructor{{
			InstructorID:   "P1",
			Name:           "Dr. Hopper",
			Type:           models.RoleProfessor,
			Qualifications: []string{"cs"},
			MaxHoursWeekly: models.DefaultMaxHoursWeekly,
		}},
		rooms: []models.Room{{RoomID: "R1", Type: models.RoomLecture, Capacity: 40}},
		groups: []models.StudentGroup{{
			GroupID:  "G1",
			Year:     1,
			Major:    models.DefaultMajor,
			Sections: []string{"S1"},
		}},
		sections: []models.Section{{
			SectionID:       "S1",
			GroupID:         "G1",
			Year:            1,
			StudentCount:    30,
			AssignedCourses: []string{"CS101"},
		}},
	}
}

// departmentProblem mixes shared lectures, per-section labs and tutorials over two groups.
func departmentProblem() problem {
	return problem{
		courses: []models.Course{
			{
				CourseID: "CS101",
				Components: []models.CourseComponent{
					{ComponentID: "CS101-L", Type: models.ComponentLecture, DurationSlots: 2, MinCapacity: 60, InstructorQualification: "cs", StudentGroups: []string{"G1"}},
					{ComponentID: "CS101-LAB", Type: models.ComponentLab, LabType: "computer", DurationSlots: 2, MinCapacity: 20, InstructorQualification: "cs", StudentSections: []string{"S1", "S2"}},
					{ComponentID: "CS101-T", Type: models.ComponentTutorial, DurationSlots: 1, MinCapacity: 25, InstructorQualification: "cs", StudentSections: []string{"S1", "S2"}},
				},
			},
			{
				CourseID: "MATH201",
				Components: []models.CourseComponent{
					{ComponentID: "MATH201-L", Type: models.ComponentLecture, DurationSlots: 1, MinCapacity: 90, InstructorQualification: "math", StudentGroups: []string{"G1", "G2"}},
					{ComponentID: "MATH201-T", Type: models.ComponentTutorial, DurationSlots: 1, MinCapacity: 25, InstructorQualification: "math", StudentSections: []string{"S1", "S3"}},
				},
			},
			{
				CourseID: "PHY110",
				Components: []models.CourseComponent{
					{ComponentID: "PHY110-L", Type: models.ComponentLecture, DurationSlots: 2, MinCapacity: 30, InstructorQualification: "physics", StudentGroups: []string{"G2"}},
					{ComponentID: "PHY110-LAB", Type: models.ComponentLab, LabType: "physics", DurationSlots: 2, MinCapacity: 25, InstructorQualification: "physics", StudentSections: []string{"S3"}},
				},
			},
		},
		instructors: []models.Instructor{
			{InstructorID: "P1", Type: models.RoleProfessor, Qualifications: []string{"cs", "math"}},
			{InstructorID: "P2", Type: models.RoleProfessor, Qualifications: []string{"physics", "math"}},
			{InstructorID: "TA1", Type: models.RoleTA, Qualifications: []string{"cs"}},
			{InstructorID: "TA2", Type: models.RolePartTime, Qualifications: []string{"math", "physics"}},
		},
		rooms: []models.Room{
			{RoomID: "HALL", Type: models.RoomLecture, Capacity: 120},
			{RoomID: "LR1", Type: models.RoomLecture, Capacity: 70},
			{RoomID: "LAB-C", Type: models.RoomLab, LabType: "computer", Capacity: 30},
			{RoomID: "LAB-P", Type: models.RoomLab, LabType: "physics", Capacity: 30},
			{RoomID: "CR1", Type: models.RoomClassroom, Capacity: 30},
		},
		groups: []models.StudentGroup{
			{GroupID: "G1", Year: 1, Sections: []string{"S1", "S2"}},
			{GroupID: "G2", Year: 2, Sections: []string{"S3"}},
		},
		sections: []models.Section{
			{SectionID: "S1", GroupID: "G1", Year: 1, StudentCount: 28, AssignedCourses: []string{"CS101", "MATH201"}},
			{SectionID: "S2", GroupID: "G1", Year: 1, StudentCount: 25, AssignedCourses: []string{"CS101", "MATH201"}},
			{SectionID: "S3", GroupID: "G2", Year: 2, StudentCount: 30, AssignedCourses: []string{"MATH201", "PHY110"}},
		},
	}
}

// splitLectureProblem fills S1's preferred window with larger lectures, so the shared CS101
// lecture starts at slot 0 and only S2 can be moved out of it.
func splitLectureProblem() problem {
	physics := models.Course{CourseID: "PHY200"}
	for i := 1; i <= 10; i++ {
		physics.Components = append(physics.Components, models.CourseComponent{
			ComponentID:             fmt.Sprintf("PHY200-L%d", i),
			Type:                    models.ComponentLecture,
			DurationSlots:           2,
			MinCapacity:             100,
			InstructorQualification: "physics",
			StudentGroups:           []string{"G1"},
		})
	}
	return problem{
		courses: []models.Course{
			physics,
			{
				CourseID: "CS101",
				Components: []models.CourseComponent{
					{ComponentID: "CS101-L", Type: models.ComponentLecture, DurationSlots: 1, MinCapacity: 50, InstructorQualification: "cs", StudentGroups: []string{"G1"}},
				},
			},
		},
		instructors: []models.Instructor{
			{InstructorID: "P1", Type: models.RoleProfessor, Qualifications: []string{"cs"}},
			{InstructorID: "P2", Type: models.RoleProfessor, Qualifications: []string{"physics"}},
		},
		rooms: []models.Room{
			{RoomID: "HALL", Type: models.RoomLecture, Capacity: 120},
			{RoomID: "LR1", Type: models.RoomLecture, Capacity: 70},
		},
		groups: []models.StudentGroup{{GroupID: "G1", Year: 1, Sections: []string{"S1", "S2"}}},
		sections: []models.Section{
			{SectionID: "S1", GroupID: "G1", Year: 1, StudentCount: 40, AssignedCourses: []string{"PHY200", "CS101"}},
			{SectionID: "S2", GroupID: "G1", Year: 1, StudentCount: 40, AssignedCourses: []string{"CS101"}},
		},
	}
}
