package service

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/internal/scheduler"
	"github.com/noah-isme/uni-timetable-api/pkg/export"
)

// timetableInput is a request converted to engine models with defaults applied.
type timetableInput struct {
	courses     []models.Course
	instructors []models.Instructor
	rooms       []models.Room
	groups      []models.StudentGroup
	sections    []models.Section
}

func toTimetableInput(req dto.GenerateTimetableRequest) timetableInput {
	return timetableInput{
		courses:     lo.Map(req.Courses, func(c dto.CourseRequest, _ int) models.Course { return toCourse(c) }),
		instructors: lo.Map(req.Instructors, func(i dto.InstructorRequest, _ int) models.Instructor { return toInstructor(i) }),
		rooms: lo.Map(req.Rooms, func(r dto.RoomRequest, _ int) models.Room {
			return models.Room{
				RoomID:    r.RoomID,
				Name:      r.Name,
				Type:      models.RoomType(r.Type),
				LabType:   r.LabType,
				Capacity:  r.Capacity,
				Equipment: r.Equipment,
			}
		}),
		groups: lo.Map(req.StudentGroups, func(g dto.StudentGroupRequest, _ int) models.StudentGroup {
			return models.StudentGroup{
				GroupID:  g.GroupID,
				Year:     lo.FromPtrOr(g.Year, models.DefaultYear),
				Major:    lo.FromPtrOr(g.Major, models.DefaultMajor),
				Sections: g.Sections,
				Size:     g.Size,
			}
		}),
		sections: lo.Map(req.Sections, func(s dto.SectionRequest, _ int) models.Section {
			return models.Section{
				SectionID:       s.SectionID,
				GroupID:         s.GroupID,
				Year:            lo.FromPtrOr(s.Year, models.DefaultYear),
				StudentCount:    s.StudentCount,
				AssignedCourses: s.AssignedCourses,
			}
		}),
	}
}

func toCourse(c dto.CourseRequest) models.Course {
	return models.Course{
		CourseID:   c.CourseID,
		CourseName: c.CourseName,
		CourseType: lo.FromPtrOr(c.CourseType, models.DefaultCourseType),
		AllYear:    c.AllYear,
		Components: lo.Map(c.Components, func(comp dto.ComponentRequest, _ int) models.CourseComponent {
			return models.CourseComponent{
				ComponentID:             comp.ComponentID,
				Type:                    models.ComponentType(comp.Type),
				LabType:                 comp.LabType,
				DurationSlots:           lo.FromPtrOr(comp.DurationSlots, models.DefaultDurationSlots),
				MinCapacity:             lo.FromPtrOr(comp.MinCapacity, 0),
				InstructorQualification: comp.InstructorQualification,
				RequiresLectureFirst:    comp.RequiresLectureFirst,
				ConcurrentSections:      comp.ConcurrentSections,
				StudentGroups:           comp.StudentGroups,
				StudentSections:         comp.StudentSections,
			}
		}),
	}
}

func toInstructor(i dto.InstructorRequest) models.Instructor {
	return models.Instructor{
		InstructorID:     i.InstructorID,
		Name:             i.Name,
		Type:             models.InstructorRole(lo.FromPtrOr(i.Type, string(models.RoleProfessor))),
		Qualifications:   i.Qualifications,
		MaxHoursWeekly:   lo.FromPtrOr(i.MaxHoursWeekly, models.DefaultMaxHoursWeekly),
		UnavailableSlots: i.UnavailableSlots,
		PreferredSlots:   i.PreferredSlots,
	}
}

// toTimetableResponse renders a solver result. Sections list only the cell that starts each
// session, in slot order.
func toTimetableResponse(result scheduler.Result) dto.GenerateTimetableResponse {
	resp := dto.GenerateTimetableResponse{
		Success:  result.Success,
		Message:  result.Message,
		Warnings: result.Warnings,
		Errors:   result.Errors,
	}
	if !result.Success {
		return resp
	}

	resp.OptimizerMoves = result.Moves
	resp.Sections = make([]dto.SectionSchedule, 0, len(result.Sections))
	for pos, section := range result.Sections {
		schedule := dto.SectionSchedule{
			SectionID:    section.SectionID,
			GroupID:      section.GroupID,
			Year:         section.Year,
			StudentCount: section.StudentCount,
			Schedule:     []dto.SessionEntry{},
		}
		for slot := range result.Timetable {
			if pos >= len(result.Timetable[slot]) {
				continue
			}
			cell := result.Timetable[slot][pos]
			if !cell.Primary() {
				continue
			}
			schedule.Schedule = append(schedule.Schedule, dto.SessionEntry{
				SlotIndex:    slot,
				CourseID:     cell.CourseID,
				ComponentID:  cell.ComponentID,
				Type:         string(cell.Type),
				RoomID:       cell.RoomID,
				InstructorID: cell.InstructorID,
				Duration:     cell.Duration,
				StudentCount: cell.StudentCount,
				Day:          scheduler.DayName(slot),
				Period:       scheduler.Period(slot),
				StartTime:    scheduler.StartTime(slot),
				EndTime:      scheduler.EndTime(slot, cell.Duration),
			})
		}
		resp.Sections = append(resp.Sections, schedule)
	}

	stats := result.Statistics()
	resp.Statistics = &dto.TimetableStatistics{
		TotalComponents:     stats.TotalComponents,
		ScheduledComponents: stats.ScheduledComponents,
		CompletionRate:      stats.CompletionRate(),
	}
	return resp
}

func toProblemStats(stats scheduler.ProblemStats) dto.ProblemStatsResponse {
	byYear := make(map[string]int, len(stats.SectionsByYear))
	for _, year := range stats.SectionsByYear {
		byYear[strconv.Itoa(year.Year)] = year.Sections
	}
	return dto.ProblemStatsResponse{
		Courses:         stats.Courses,
		Components:      stats.Components,
		Instructors:     stats.Instructors,
		Rooms:           stats.Rooms,
		Groups:          stats.Groups,
		Sections:        stats.Sections,
		ComponentTypes:  stats.ComponentTypes,
		RoomTypes:       stats.RoomTypes,
		InstructorRoles: stats.InstructorRoles,
		SectionsByYear:  byYear,
		RequiredSlots:   stats.RequiredSlots,
		AvailableSlots:  stats.Sections * models.SlotsMax,
	}
}

// exportRows flattens the per-section schedules in section then slot order.
func exportRows(resp dto.GenerateTimetableResponse) []dto.TimetableExportRow {
	rows := []dto.TimetableExportRow{}
	for _, section := range resp.Sections {
		for _, entry := range section.Schedule {
			rows = append(rows, dto.TimetableExportRow{
				SectionID:    section.SectionID,
				GroupID:      section.GroupID,
				Day:          entry.Day,
				Period:       entry.Period,
				StartTime:    entry.StartTime,
				EndTime:      entry.EndTime,
				CourseID:     entry.CourseID,
				ComponentID:  entry.ComponentID,
				Type:         entry.Type,
				RoomID:       entry.RoomID,
				InstructorID: entry.InstructorID,
				Duration:     entry.Duration,
				StudentCount: entry.StudentCount,
				SlotIndex:    entry.SlotIndex,
			})
		}
	}
	return rows
}

var pdfHeaders = []string{"Section", "Day", "Period", "Time", "Course", "Component", "Type", "Room", "Instructor", "Students"}

func exportDataset(rows []dto.TimetableExportRow) export.Dataset {
	return export.Dataset{
		Headers: pdfHeaders,
		Rows: lo.Map(rows, func(r dto.TimetableExportRow, _ int) []string {
			return []string{
				r.SectionID,
				r.Day,
				strconv.Itoa(r.Period),
				r.StartTime + "-" + r.EndTime,
				r.CourseID,
				r.ComponentID,
				r.Type,
				r.RoomID,
				r.InstructorID,
				strconv.Itoa(r.StudentCount),
			}
		}),
	}
}
