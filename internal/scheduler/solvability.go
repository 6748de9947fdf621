package scheduler

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// checkSolvability returns advisory warnings about resources the components will need.
// It never blocks the run.
func checkSolvability(courses []models.Course, instructors []models.Instructor, rooms []models.Room) []string {
	var warnings []string

	var required []string
	needs := map[models.ComponentType]bool{}
	for _, course := range courses {
		for _, component := range course.Components {
			required = append(required, component.InstructorQualification)
			needs[component.Type] = true
		}
	}

	for _, qualification := range lo.Uniq(required) {
		held := lo.ContainsBy(instructors, func(i models.Instructor) bool {
			return i.Qualified(qualification)
		})
		if !held {
			warnings = append(warnings, fmt.Sprintf("No instructors qualified for: %s", qualification))
		}
	}

	hasRoom := func(t models.RoomType) bool {
		return lo.ContainsBy(rooms, func(r models.Room) bool { return r.Type == t })
	}
	if needs[models.ComponentLecture] && !hasRoom(models.RoomLecture) {
		warnings = append(warnings, "No lecture rooms available")
	}
	if needs[models.ComponentLab] && !hasRoom(models.RoomLab) {
		warnings = append(warnings, "No lab rooms available")
	}
	if needs[models.ComponentTutorial] && !hasRoom(models.RoomClassroom) {
		warnings = append(warnings, "No classrooms available")
	}

	return warnings
}
