package schedule

import (
	"fmt"

	"github.com/eduardismund/tastetrails-web/internal/app/models"
)

// ConflictReason classifies why a proposed slot was rejected.
type ConflictReason string

const (
	ReasonInvalidTime  ConflictReason = "invalid_time"
	ReasonInvalidOrder ConflictReason = "invalid_order"
	ReasonOverlap      ConflictReason = "overlap"
)

// Conflict describes a rejected slot. For overlaps it carries the colliding
// activity's identity and time range so the UI can show what is in the way.
type Conflict struct {
	Reason  ConflictReason   `json:"reason"`
	Message string           `json:"message"`
	With    *models.Activity `json:"with,omitempty"`
}

func (c *Conflict) Error() string { return c.Message }

// CheckConflict decides whether a proposed slot is acceptable against the
// activities already scheduled. A nil result means no conflict.
//
// An incomplete slot (missing date or either time) returns nil: incomplete
// input is "not yet checkable" and never blocks by itself. Validity is
// checked before any overlap comparison, and only activities on the exact
// same date are compared.
//
// This check runs both reactively on form edits and authoritatively right
// before option generation against a freshly fetched activity list. Either
// way it is advisory; the backend remains the final authority at commit.
func CheckConflict(slot models.TimeSlot, existing []models.Activity) *Conflict {
	if !slot.Complete() {
		return nil
	}

	start, err := ParseTimeToMinutes(slot.StartTime)
	if err != nil {
		return &Conflict{Reason: ReasonInvalidTime, Message: err.Error()}
	}
	end, err := ParseTimeToMinutes(slot.EndTime)
	if err != nil {
		return &Conflict{Reason: ReasonInvalidTime, Message: err.Error()}
	}

	if end <= start {
		return &Conflict{
			Reason:  ReasonInvalidOrder,
			Message: "end time must be after start time",
		}
	}

	for i := range existing {
		activity := &existing[i]
		if activity.ActivityDate != slot.Date {
			continue
		}

		activityStart, err := ParseTimeToMinutes(activity.StartClock())
		if err != nil {
			continue
		}
		activityEnd, err := ParseTimeToMinutes(activity.EndClock())
		if err != nil {
			continue
		}

		if IntervalsOverlap(start, end, activityStart, activityEnd) {
			return &Conflict{
				Reason: ReasonOverlap,
				Message: fmt.Sprintf("overlaps with %q (%s-%s)",
					activity.Title, activity.StartClock(), activity.EndClock()),
				With: activity,
			}
		}
	}

	return nil
}
