package scheduler

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

const (
	preferredStart = 10
	preferredEnd   = 30
)

// preferredOrder lists the middle-of-week window first, then everything else ascending.
func preferredOrder() []int {
	order := make([]int, 0, models.SlotsMax)
	for s := preferredStart; s < preferredEnd; s++ {
		order = append(order, s)
	}
	for s := 0; s < models.SlotsMax; s++ {
		if s < preferredStart || s >= preferredEnd {
			order = append(order, s)
		}
	}
	return order
}

func ascendingOrder() []int {
	return lo.Range(models.SlotsMax)
}

// eligibleInstructors returns qualified instructors in input order. Lectures are taught by
// professors, labs and tutorials by TAs and part-time staff.
func (r *run) eligibleInstructors(qualification string, kind models.ComponentType) []string {
	eligible := lo.Filter(r.instructors, func(i models.Instructor, _ int) bool {
		if !i.Qualified(qualification) {
			return false
		}
		if kind == models.ComponentLecture {
			return i.Type == models.RoleProfessor
		}
		return i.Type == models.RoleTA || i.Type == models.RolePartTime
	})
	return lo.Map(eligible, func(i models.Instructor, _ int) string { return i.InstructorID })
}

// eligibleRooms returns rooms of the given type with enough capacity, smallest first.
// labType only filters lab rooms and only when set.
func (r *run) eligibleRooms(roomType models.RoomType, labType string, minCapacity int) []string {
	eligible := lo.Filter(r.rooms, func(room models.Room, _ int) bool {
		if room.Type != roomType || room.Capacity < minCapacity {
			return false
		}
		if roomType == models.RoomLab && labType != "" {
			return room.LabType == labType
		}
		return true
	})
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Capacity < eligible[j].Capacity
	})
	return lo.Map(eligible, func(room models.Room, _ int) string { return room.RoomID })
}

// search places sess for targets at the first valid (slot, instructor, room) in order.
func (r *run) search(targets []int, sess session, order []int, instructors, rooms []string) (int, bool) {
	for _, slot := range order {
		for _, instructorID := range instructors {
			for _, roomID := range rooms {
				if !r.isValidAssignment(targets, slot, sess.duration, instructorID, roomID) {
					continue
				}
				sess.instructorID = instructorID
				sess.roomID = roomID
				r.placeAssignment(targets, sess, slot)
				return slot, true
			}
		}
	}
	return -1, false
}

// lectureTargets collects, over the listed groups, the sections enrolled in the course that
// do not hold the component yet.
func (r *run) lectureTargets(courseID string, component models.CourseComponent) []int {
	var targets []int
	for _, groupID := range component.StudentGroups {
		for _, sectionID := range r.idx.groupSections[groupID] {
			pos, ok := r.idx.section(sectionID)
			if !ok || lo.Contains(targets, pos) {
				continue
			}
			if !r.sections[pos].Enrolled(courseID) || r.avail.holds(pos, component.ComponentID) {
				continue
			}
			targets = append(targets, pos)
		}
	}
	return targets
}

func (r *run) scheduleLectures() {
	var lectures []componentRef
	for i, course := range r.courses {
		for j, component := range course.Components {
			if component.Type == models.ComponentLecture && !component.IsScheduled {
				lectures = append(lectures, componentRef{course: i, component: j})
			}
		}
	}
	sort.SliceStable(lectures, func(a, b int) bool {
		return r.componentAt(lectures[a]).MinCapacity > r.componentAt(lectures[b]).MinCapacity
	})

	placed := 0
	for _, ref := range lectures {
		course := r.courses[ref.course]
		component := r.componentAt(ref)
		if component.IsScheduled {
			continue
		}

		targets := r.lectureTargets(course.CourseID, *component)
		if len(targets) == 0 {
			r.warn("No target sections found for %s lecture", course.CourseID)
			continue
		}
		instructors := r.eligibleInstructors(component.InstructorQualification, models.ComponentLecture)
		if len(instructors) == 0 {
			r.warn("No qualified professors found for %s lecture", course.CourseID)
			continue
		}
		rooms := r.eligibleRooms(models.RoomLecture, "", component.MinCapacity)
		if len(rooms) == 0 {
			r.warn("No suitable rooms found for %s lecture (need capacity: %d)", course.CourseID, component.MinCapacity)
			continue
		}

		sess := session{courseID: course.CourseID, componentID: component.ComponentID, kind: models.ComponentLecture, duration: component.DurationSlots}
		if _, ok := r.search(targets, sess, preferredOrder(), instructors, rooms); !ok {
			r.warn("Failed to schedule %s lecture - no available time slot", course.CourseID)
			continue
		}
		placed++
	}

	r.logger.Debug("phase complete", zap.String("phase", "lectures"), zap.Int("scheduled", placed), zap.Int("candidates", len(lectures)))
}

func (r *run) scheduleLabs() {
	r.schedulePerSection(models.ComponentLab, models.RoomLab, preferredOrder())
}

func (r *run) scheduleTutorials() {
	r.schedulePerSection(models.ComponentTutorial, models.RoomClassroom, ascendingOrder())
}

// schedulePerSection places every listed section of each unscheduled component of kind on
// its own. A component counts as scheduled as soon as one section succeeds.
func (r *run) schedulePerSection(kind models.ComponentType, roomType models.RoomType, order []int) {
	placed, candidates := 0, 0
	for ci := range r.courses {
		courseID := r.courses[ci].CourseID
		for cj := range r.courses[ci].Components {
			component := &r.courses[ci].Components[cj]
			if component.Type != kind || component.IsScheduled {
				continue
			}

			var pending []int
			for _, sectionID := range component.StudentSections {
				pos, ok := r.idx.section(sectionID)
				if !ok {
					r.warn("Section %s not found for %s %s", sectionID, kind, component.ComponentID)
					continue
				}
				if r.avail.holds(pos, component.ComponentID) || lo.Contains(pending, pos) {
					continue
				}
				pending = append(pending, pos)
			}
			if len(pending) == 0 {
				continue
			}
			candidates += len(pending)

			instructors := r.eligibleInstructors(component.InstructorQualification, kind)
			if len(instructors) == 0 {
				r.warn("No qualified instructors found for %s %s %s", courseID, kind, component.ComponentID)
				continue
			}
			labType := ""
			if kind == models.ComponentLab {
				labType = component.LabType
			}
			rooms := r.eligibleRooms(roomType, labType, component.MinCapacity)
			if len(rooms) == 0 {
				r.warn("No suitable rooms found for %s %s %s (need capacity: %d)", courseID, kind, component.ComponentID, component.MinCapacity)
				continue
			}

			sess := session{courseID: courseID, componentID: component.ComponentID, kind: kind, duration: component.DurationSlots}
			for _, pos := range pending {
				if _, ok := r.search([]int{pos}, sess, order, instructors, rooms); !ok {
					r.warn("Failed to schedule %s %s %s for section %s", courseID, kind, component.ComponentID, r.sections[pos].SectionID)
					continue
				}
				placed++
			}
		}
	}

	r.logger.Debug("phase complete", zap.String("phase", string(kind)+"s"), zap.Int("scheduled", placed), zap.Int("candidates", candidates))
}

func (r *run) componentAt(ref componentRef) *models.CourseComponent {
	return &r.courses[ref.course].Components[ref.component]
}

func (r *run) warn(format string, args ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}
