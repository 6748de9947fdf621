package scheduler

import "github.com/noah-isme/uni-timetable-api/internal/models"

type idSet map[string]struct{}

// availability tracks what is occupied in one run: the timetable grid, instructor and room
// busy sets per slot, and the components each section already holds.
type availability struct {
	cells          [models.SlotsMax][]models.TimetableSlot
	instructorBusy [models.SlotsMax]idSet
	roomBusy       [models.SlotsMax]idSet
	scheduled      []idSet
}

func newAvailability(sectionCount int) *availability {
	a := &availability{scheduled: make([]idSet, sectionCount)}
	for s := 0; s < models.SlotsMax; s++ {
		a.cells[s] = make([]models.TimetableSlot, sectionCount)
		a.instructorBusy[s] = idSet{}
		a.roomBusy[s] = idSet{}
	}
	for i := range a.scheduled {
		a.scheduled[i] = idSet{}
	}
	return a
}

func (a *availability) instructorFree(slot int, instructorID string) bool {
	_, busy := a.instructorBusy[slot][instructorID]
	return !busy
}

func (a *availability) roomFree(slot int, roomID string) bool {
	_, busy := a.roomBusy[slot][roomID]
	return !busy
}

func (a *availability) cellFree(slot, section int) bool {
	return !a.cells[slot][section].Taken
}

func (a *availability) reserve(slot int, instructorID, roomID string) {
	a.instructorBusy[slot][instructorID] = struct{}{}
	a.roomBusy[slot][roomID] = struct{}{}
}

func (a *availability) release(slot int, instructorID, roomID string) {
	delete(a.instructorBusy[slot], instructorID)
	delete(a.roomBusy[slot], roomID)
}

// attended reports whether some section still holds a cell of the same session at slot.
func (a *availability) attended(slot int, cell models.TimetableSlot) bool {
	for _, other := range a.cells[slot] {
		if other.Taken && other.ComponentID == cell.ComponentID && other.InstructorID == cell.InstructorID && other.RoomID == cell.RoomID {
			return true
		}
	}
	return false
}

func (a *availability) holds(section int, componentID string) bool {
	_, ok := a.scheduled[section][componentID]
	return ok
}

func (a *availability) mark(section int, componentID string) {
	a.scheduled[section][componentID] = struct{}{}
}

// grid returns a copy of the timetable indexed by [slot][section].
func (a *availability) grid() [][]models.TimetableSlot {
	out := make([][]models.TimetableSlot, models.SlotsMax)
	for s := range a.cells {
		out[s] = append([]models.TimetableSlot(nil), a.cells[s]...)
	}
	return out
}
