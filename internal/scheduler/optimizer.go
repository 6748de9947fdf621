package scheduler

import (
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

var undesirableSlots = []int{0, 1, 2, 3, 4, 5, 36, 37, 38, 39}

// optimize moves sessions out of early and late slots into the preferred window, one
// section at a time. A session shared by several sections is moved only for the section
// being examined. It returns the number of moves.
func (r *run) optimize() int {
	moves := 0
	for _, slot := range undesirableSlots {
		for section := range r.sections {
			cell := r.avail.cells[slot][section]
			if !cell.Primary() || cell.CourseID == "" {
				continue
			}
			target := []int{section}
			for next := preferredStart; next < preferredEnd; next++ {
				if !r.isValidAssignment(target, next, cell.Duration, cell.InstructorID, cell.RoomID) {
					continue
				}
				moved := r.releaseAssignment(section, slot)
				r.placeAssignment(target, sessionOf(moved), next)
				moves++
				r.logger.Debug("session relocated",
					zap.String("section", r.sections[section].SectionID),
					zap.String("component", moved.ComponentID),
					zap.Int("from", slot),
					zap.Int("to", next),
				)
				break
			}
		}
	}
	return moves
}

func (r *run) primarySessions() int {
	count := 0
	for s := 0; s < models.SlotsMax; s++ {
		for section := range r.sections {
			if r.avail.cells[s][section].Primary() {
				count++
			}
		}
	}
	return count
}
