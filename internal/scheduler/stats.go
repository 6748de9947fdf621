package scheduler

import (
	"sort"

	"github.com/samber/lo"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// ProblemStats describes the size and shape of a scheduling request without running it.
type ProblemStats struct {
	Courses         int
	Components      int
	Instructors     int
	Rooms           int
	Groups          int
	Sections        int
	ComponentTypes  map[string]int
	RoomTypes       map[string]int
	InstructorRoles map[string]int
	SectionsByYear  []YearCount
	// RequiredSlots is the sum of durations over all sections each component targets.
	RequiredSlots int
}

// YearCount is the number of sections in one year of study.
type YearCount struct {
	Year     int
	Sections int
}

// Summarize computes problem statistics for the input collections.
func Summarize(courses []models.Course, instructors []models.Instructor, rooms []models.Room, groups []models.StudentGroup, sections []models.Section) ProblemStats {
	idx := buildIndex(courses, instructors, rooms, groups, sections)

	stats := ProblemStats{
		Courses:     len(courses),
		Instructors: len(instructors),
		Rooms:       len(rooms),
		Groups:      len(groups),
		Sections:    len(sections),
		RoomTypes: lo.CountValuesBy(rooms, func(r models.Room) string {
			return string(r.Type)
		}),
		InstructorRoles: lo.CountValuesBy(instructors, func(i models.Instructor) string {
			return string(i.Type)
		}),
		ComponentTypes: map[string]int{},
	}

	for _, course := range courses {
		for _, component := range course.Components {
			stats.Components++
			stats.ComponentTypes[string(component.Type)]++
			stats.RequiredSlots += component.DurationSlots * targetCount(idx, course.CourseID, component, sections)
		}
	}

	years := lo.Keys(idx.yearSections)
	sort.Ints(years)
	for _, year := range years {
		stats.SectionsByYear = append(stats.SectionsByYear, YearCount{Year: year, Sections: len(idx.yearSections[year])})
	}

	return stats
}

func targetCount(idx *index, courseID string, component models.CourseComponent, sections []models.Section) int {
	if component.Type != models.ComponentLecture {
		return len(lo.Uniq(component.StudentSections))
	}
	var targets []string
	for _, groupID := range component.StudentGroups {
		for _, sectionID := range idx.groupSections[groupID] {
			pos, ok := idx.section(sectionID)
			if ok && sections[pos].Enrolled(courseID) {
				targets = append(targets, sectionID)
			}
		}
	}
	return len(lo.Uniq(targets))
}
