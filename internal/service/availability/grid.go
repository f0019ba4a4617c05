package availability

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
)

// Grid dimensions. Rows are days of week (Sunday=0), columns are the hourly
// cells of the displayed window 08:00–20:00.
const (
	DayCount  = 7
	StartHour = 8
	EndHour   = 20
	HourCount = EndHour - StartHour
)

// Grid is the dense weekly availability matrix. It is an array value, so
// plain assignment is a deep copy — the draft/edit machinery relies on that.
type Grid [DayCount][HourCount]bool

// BuildGrid converts a doctor's sparse slot rows into the dense grid. A cell
// is set when any slot for that day satisfies start_hour <= hour < end_hour.
// Only the hour component participates; a minutes component on a slot is
// ignored, so sub-hour precision is lost by design.
func BuildGrid(slots []model.AvailabilitySlot) Grid {
	var g Grid
	for _, s := range slots {
		if s.DayOfWeek < 0 || s.DayOfWeek >= DayCount || !s.IsAvailable {
			continue
		}
		from := hourOf(s.StartTime)
		to := hourOf(s.EndTime)
		for h := max(from, StartHour); h < min(to, EndHour); h++ {
			g[s.DayOfWeek][h-StartHour] = true
		}
	}
	return g
}

// Slots converts the grid back into persistable rows: one 1-hour row per set
// cell. Contiguous cells are intentionally not merged so that the persisted
// row count always equals the set-cell count.
func (g Grid) Slots(doctorID uuid.UUID) []model.AvailabilitySlot {
	var slots []model.AvailabilitySlot
	for day := 0; day < DayCount; day++ {
		for i := 0; i < HourCount; i++ {
			if !g[day][i] {
				continue
			}
			h := StartHour + i
			slots = append(slots, model.AvailabilitySlot{
				DoctorID:    doctorID,
				DayOfWeek:   day,
				StartTime:   formatHour(h),
				EndTime:     formatHour(h + 1),
				IsAvailable: true,
			})
		}
	}
	return slots
}

// Hours counts the set cells. Persisted as the doctor's available_hours
// reporting counter.
func (g Grid) Hours() int {
	n := 0
	for day := range g {
		for _, set := range g[day] {
			if set {
				n++
			}
		}
	}
	return n
}

func hourOf(t string) int {
	h, err := strconv.Atoi(strings.SplitN(t, ":", 2)[0])
	if err != nil {
		return -1
	}
	return h
}

func formatHour(h int) string {
	return fmt.Sprintf("%02d:00:00", h)
}

// ---------------------------------------------------------------------------
// Draft editing
// ---------------------------------------------------------------------------

// Editor holds a grid together with a transient draft copy. Edits accumulate
// in the draft only; CancelEdit restores the pre-edit grid exactly.
type Editor struct {
	grid    Grid
	draft   Grid
	editing bool
}

func NewEditor(g Grid) *Editor {
	return &Editor{grid: g}
}

// Grid returns the committed grid (not the draft).
func (e *Editor) Grid() Grid { return e.grid }

// Draft returns the current draft; outside edit mode it equals the grid.
func (e *Editor) Draft() Grid {
	if e.editing {
		return e.draft
	}
	return e.grid
}

func (e *Editor) Editing() bool { return e.editing }

// StartEdit snapshots the grid into the draft. Re-entering edit mode
// discards any previous draft.
func (e *Editor) StartEdit() {
	e.draft = e.grid
	e.editing = true
}

// Toggle flips one draft cell. Returns false (and changes nothing) outside
// edit mode or for out-of-range coordinates.
func (e *Editor) Toggle(day, hour int) bool {
	if !e.editing {
		return false
	}
	if day < 0 || day >= DayCount || hour < StartHour || hour >= EndHour {
		return false
	}
	e.draft[day][hour-StartHour] = !e.draft[day][hour-StartHour]
	return true
}

// CancelEdit discards the draft.
func (e *Editor) CancelEdit() {
	e.draft = Grid{}
	e.editing = false
}

// Commit replaces the grid with the draft and leaves edit mode. The caller
// persists the returned grid.
func (e *Editor) Commit() Grid {
	if e.editing {
		e.grid = e.draft
		e.draft = Grid{}
		e.editing = false
	}
	return e.grid
}
