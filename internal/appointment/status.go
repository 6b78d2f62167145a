package appointment

import (
	"healthcare-coordination-server/internal/models"
)

// transitions is the allowed state machine for doctor decisions:
// pending -> approved | rejected, approved -> completed. Completion is also
// accepted straight from pending (a doctor documenting a walk-in visit
// without an explicit approval step) and is a no-op when already completed.
var transitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusPending:  {models.StatusApproved, models.StatusRejected, models.StatusCompleted},
	models.StatusApproved: {models.StatusCompleted},
}

// CanTransition reports whether moving an appointment from one status to
// another is allowed.
func CanTransition(from, to models.AppointmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
