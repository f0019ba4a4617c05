package app

import (
	"testing"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
)

// The appointment.updated subject fires for every status change, but the
// reschedule contact must only go out when the row actually moved to
// rescheduled.
func TestWantsStatus(t *testing.T) {
	tests := []struct {
		name   string
		only   model.AppointmentStatus
		status model.AppointmentStatus
		want   bool
	}{
		{"rescheduled matches filter", model.StatusRescheduled, model.StatusRescheduled, true},
		{"completed skipped by reschedule filter", model.StatusRescheduled, model.StatusCompleted, false},
		{"cancelled skipped by reschedule filter", model.StatusRescheduled, model.StatusCancelled, false},
		{"empty filter matches scheduled", "", model.StatusScheduled, true},
		{"empty filter matches cancelled", "", model.StatusCancelled, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := wantsStatus(tc.only, tc.status); got != tc.want {
				t.Fatalf("wantsStatus(%q, %q) = %v, want %v", tc.only, tc.status, got, tc.want)
			}
		})
	}
}
