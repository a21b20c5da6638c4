package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduardismund/tastetrails-web/internal/app/models"
)

func activity(title, date, start, end string) models.Activity {
	return models.Activity{
		Title:        title,
		ActivityDate: date,
		StartTime:    date + "T" + start + ":00",
		EndTime:      date + "T" + end + ":00",
	}
}

func TestCheckConflictOverlap(t *testing.T) {
	existing := []models.Activity{
		activity("Museum Visit", "2025-06-10", "10:00", "12:00"),
	}

	slot := models.TimeSlot{Date: "2025-06-10", StartTime: "11:00", EndTime: "13:00"}
	conflict := CheckConflict(slot, existing)

	require.NotNil(t, conflict)
	assert.Equal(t, ReasonOverlap, conflict.Reason)
	require.NotNil(t, conflict.With)
	assert.Equal(t, "Museum Visit", conflict.With.Title)
	assert.Contains(t, conflict.Message, "Museum Visit")
	assert.Contains(t, conflict.Message, "10:00-12:00")
}

func TestCheckConflictTouchingSlotsDoNotOverlap(t *testing.T) {
	existing := []models.Activity{
		activity("Museum Visit", "2025-06-10", "10:00", "12:00"),
	}

	slot := models.TimeSlot{Date: "2025-06-10", StartTime: "12:00", EndTime: "14:00"}
	assert.Nil(t, CheckConflict(slot, existing))
}

func TestCheckConflictInvalidOrderBeforeOverlap(t *testing.T) {
	// The inverted slot would overlap the existing activity if intervals were
	// compared anyway; validity wins.
	existing := []models.Activity{
		activity("Museum Visit", "2025-06-10", "10:00", "12:00"),
	}

	slot := models.TimeSlot{Date: "2025-06-10", StartTime: "14:00", EndTime: "13:00"}
	conflict := CheckConflict(slot, existing)

	require.NotNil(t, conflict)
	assert.Equal(t, ReasonInvalidOrder, conflict.Reason)
	assert.Nil(t, conflict.With)
}

func TestCheckConflictZeroDurationSlot(t *testing.T) {
	slot := models.TimeSlot{Date: "2025-06-10", StartTime: "10:00", EndTime: "10:00"}
	conflict := CheckConflict(slot, nil)

	require.NotNil(t, conflict)
	assert.Equal(t, ReasonInvalidOrder, conflict.Reason)
}

func TestCheckConflictDifferentDateNeverConflicts(t *testing.T) {
	existing := []models.Activity{
		activity("Museum Visit", "2025-06-10", "10:00", "12:00"),
	}

	slot := models.TimeSlot{Date: "2025-06-11", StartTime: "10:00", EndTime: "12:00"}
	assert.Nil(t, CheckConflict(slot, existing))
}

func TestCheckConflictIncompleteSlot(t *testing.T) {
	existing := []models.Activity{
		activity("Museum Visit", "2025-06-10", "10:00", "12:00"),
	}

	tests := []struct {
		name string
		slot models.TimeSlot
	}{
		{name: "missing date", slot: models.TimeSlot{StartTime: "10:00", EndTime: "12:00"}},
		{name: "missing start", slot: models.TimeSlot{Date: "2025-06-10", EndTime: "12:00"}},
		{name: "missing end", slot: models.TimeSlot{Date: "2025-06-10", StartTime: "10:00"}},
		{name: "all empty", slot: models.TimeSlot{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, CheckConflict(tt.slot, existing))
		})
	}
}

func TestCheckConflictUnparseableSlotTime(t *testing.T) {
	slot := models.TimeSlot{Date: "2025-06-10", StartTime: "25:00", EndTime: "12:00"}
	conflict := CheckConflict(slot, nil)

	require.NotNil(t, conflict)
	assert.Equal(t, ReasonInvalidTime, conflict.Reason)
}

func TestCheckConflictSkipsMalformedExistingActivity(t *testing.T) {
	existing := []models.Activity{
		{Title: "Broken", ActivityDate: "2025-06-10", StartTime: "garbage", EndTime: "also garbage"},
		activity("Dinner", "2025-06-10", "19:00", "21:00"),
	}

	slot := models.TimeSlot{Date: "2025-06-10", StartTime: "20:00", EndTime: "22:00"}
	conflict := CheckConflict(slot, existing)

	require.NotNil(t, conflict)
	require.NotNil(t, conflict.With)
	assert.Equal(t, "Dinner", conflict.With.Title)
}

func TestCheckConflictFirstOverlapWins(t *testing.T) {
	existing := []models.Activity{
		activity("Breakfast", "2025-06-10", "08:00", "09:30"),
		activity("Walking Tour", "2025-06-10", "09:00", "11:00"),
	}

	slot := models.TimeSlot{Date: "2025-06-10", StartTime: "09:00", EndTime: "10:00"}
	conflict := CheckConflict(slot, existing)

	require.NotNil(t, conflict)
	require.NotNil(t, conflict.With)
	assert.Equal(t, "Breakfast", conflict.With.Title)
}
