package scheduler

import "github.com/noah-isme/uni-timetable-api/internal/models"

// session describes what is being placed; the slot is supplied separately.
type session struct {
	courseID     string
	componentID  string
	kind         models.ComponentType
	duration     int
	instructorID string
	roomID       string
}

func sessionOf(cell models.TimetableSlot) session {
	return session{
		courseID:     cell.CourseID,
		componentID:  cell.ComponentID,
		kind:         cell.Type,
		duration:     cell.Duration,
		instructorID: cell.InstructorID,
		roomID:       cell.RoomID,
	}
}

// isValidAssignment reports whether the instructor, the room and every target section are
// free for [slot, slot+duration). Sessions longer than one slot must start on an even slot.
func (r *run) isValidAssignment(targets []int, slot, duration int, instructorID, roomID string) bool {
	if slot < 0 || duration < 1 || slot+duration > models.SlotsMax {
		return false
	}
	if duration > 1 && slot%2 != 0 {
		return false
	}
	for s := slot; s < slot+duration; s++ {
		if !r.avail.instructorFree(s, instructorID) || !r.avail.roomFree(s, roomID) {
			return false
		}
	}
	for _, section := range targets {
		for s := slot; s < slot+duration; s++ {
			if !r.avail.cellFree(s, section) {
				return false
			}
		}
	}
	return true
}

// placeAssignment commits a session for all targets at slot. Callers must have checked
// isValidAssignment with the same arguments.
func (r *run) placeAssignment(targets []int, sess session, slot int) {
	for _, section := range targets {
		count := r.sections[section].StudentCount
		for k := 0; k < sess.duration; k++ {
			r.avail.cells[slot+k][section] = models.TimetableSlot{
				Taken:        true,
				Continuation: k > 0,
				CourseID:     sess.courseID,
				ComponentID:  sess.componentID,
				Type:         sess.kind,
				RoomID:       sess.roomID,
				InstructorID: sess.instructorID,
				Duration:     sess.duration,
				StudentCount: count,
			}
		}
		r.avail.mark(section, sess.componentID)
	}

	// A shared session consumes the instructor and room once per slot.
	for k := 0; k < sess.duration; k++ {
		r.avail.reserve(slot+k, sess.instructorID, sess.roomID)
	}

	if pos, ok := r.idx.instructors[sess.instructorID]; ok {
		r.instructors[pos].ScheduledHours += sess.duration
	}
	if ref, ok := r.idx.component(sess.componentID); ok {
		r.courses[ref.course].Components[ref.component].IsScheduled = true
	}
}

// releaseAssignment clears the session starting at slot for one section. The instructor,
// the room and the instructor hours are freed only once no other section still attends the
// session. It returns the removed primary cell.
func (r *run) releaseAssignment(section, slot int) models.TimetableSlot {
	cell := r.avail.cells[slot][section]
	for k := 0; k < cell.Duration && slot+k < models.SlotsMax; k++ {
		r.avail.cells[slot+k][section] = models.TimetableSlot{}
		if !r.avail.attended(slot+k, cell) {
			r.avail.release(slot+k, cell.InstructorID, cell.RoomID)
		}
	}
	if r.avail.attended(slot, cell) {
		return cell
	}
	if pos, ok := r.idx.instructors[cell.InstructorID]; ok {
		r.instructors[pos].ScheduledHours -= cell.Duration
	}
	return cell
}
