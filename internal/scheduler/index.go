package scheduler

import (
	"fmt"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

type componentRef struct {
	course    int
	component int
}

// index holds the lookups derived once per run from the run-local copies of the input.
type index struct {
	sectionPos    map[string]int
	sectionGroup  map[string]string
	groupSections map[string][]string
	yearSections  map[int][]string
	instructors   map[string]int
	rooms         map[string]int
	components    map[string]componentRef

	// duplicateComponents lists component IDs seen more than once, in first-seen order.
	duplicateComponents []string
}

func buildIndex(courses []models.Course, instructors []models.Instructor, rooms []models.Room, groups []models.StudentGroup, sections []models.Section) *index {
	idx := &index{
		sectionPos:    make(map[string]int, len(sections)),
		sectionGroup:  make(map[string]string, len(sections)),
		groupSections: make(map[string][]string, len(groups)),
		yearSections:  make(map[int][]string),
		instructors:   make(map[string]int, len(instructors)),
		rooms:         make(map[string]int, len(rooms)),
		components:    make(map[string]componentRef),
	}

	for i, course := range courses {
		for j, component := range course.Components {
			if _, ok := idx.components[component.ComponentID]; ok {
				idx.duplicateComponents = append(idx.duplicateComponents, component.ComponentID)
				continue
			}
			idx.components[component.ComponentID] = componentRef{course: i, component: j}
		}
	}
	for i, instructor := range instructors {
		if _, ok := idx.instructors[instructor.InstructorID]; !ok {
			idx.instructors[instructor.InstructorID] = i
		}
	}
	for i, room := range rooms {
		if _, ok := idx.rooms[room.RoomID]; !ok {
			idx.rooms[room.RoomID] = i
		}
	}
	for i, section := range sections {
		if _, ok := idx.sectionPos[section.SectionID]; !ok {
			idx.sectionPos[section.SectionID] = i
		}
		idx.yearSections[section.Year] = append(idx.yearSections[section.Year], section.SectionID)
	}

	// Groups own membership; the section to group direction is derived from it.
	for _, group := range groups {
		idx.groupSections[group.GroupID] = append(idx.groupSections[group.GroupID], group.Sections...)
		for _, sectionID := range group.Sections {
			if _, ok := idx.sectionGroup[sectionID]; !ok {
				idx.sectionGroup[sectionID] = group.GroupID
			}
		}
	}
	for _, section := range sections {
		if _, ok := idx.sectionGroup[section.SectionID]; !ok && section.GroupID != "" {
			idx.sectionGroup[section.SectionID] = section.GroupID
		}
	}

	return idx
}

func (idx *index) section(id string) (int, bool) {
	pos, ok := idx.sectionPos[id]
	return pos, ok
}

func (idx *index) component(id string) (componentRef, bool) {
	ref, ok := idx.components[id]
	return ref, ok
}

func (idx *index) duplicateWarnings() []string {
	warnings := make([]string, 0, len(idx.duplicateComponents))
	for _, id := range idx.duplicateComponents {
		warnings = append(warnings, fmt.Sprintf("Duplicate component ID %s", id))
	}
	return warnings
}
