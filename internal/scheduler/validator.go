package scheduler

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// Validation is the outcome of the structural input checks.
type Validation struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether scheduling may proceed.
func (v Validation) Valid() bool {
	return len(v.Errors) == 0
}

// Validate checks the five input collections without mutating them.
func Validate(courses []models.Course, instructors []models.Instructor, rooms []models.Room, groups []models.StudentGroup, sections []models.Section) Validation {
	var v Validation

	if len(courses) == 0 {
		v.Errors = append(v.Errors, "No courses provided")
	}
	if len(instructors) == 0 {
		v.Errors = append(v.Errors, "No instructors provided")
	}
	if len(rooms) == 0 {
		v.Errors = append(v.Errors, "No rooms provided")
	}
	if len(sections) == 0 {
		v.Errors = append(v.Errors, "No sections provided")
	}

	for _, course := range courses {
		if len(course.Components) == 0 {
			v.Warnings = append(v.Warnings, fmt.Sprintf("Course %s has no components", course.CourseID))
		}
		for _, component := range course.Components {
			switch component.Type {
			case models.ComponentLecture:
				if len(component.StudentGroups) == 0 {
					v.Warnings = append(v.Warnings, fmt.Sprintf("Lecture component %s has no student groups", component.ComponentID))
				}
			case models.ComponentLab, models.ComponentTutorial:
				if len(component.StudentSections) == 0 {
					v.Warnings = append(v.Warnings, fmt.Sprintf("%s component %s has no student sections", component.Type, component.ComponentID))
				}
			default:
				v.Warnings = append(v.Warnings, fmt.Sprintf("Component %s has unknown type %s", component.ComponentID, component.Type))
			}
		}
	}

	for _, section := range sections {
		grouped := lo.ContainsBy(groups, func(g models.StudentGroup) bool {
			return lo.Contains(g.Sections, section.SectionID)
		})
		if !grouped {
			v.Warnings = append(v.Warnings, fmt.Sprintf("Section %s is not assigned to any group", section.SectionID))
		}
	}

	return v
}
