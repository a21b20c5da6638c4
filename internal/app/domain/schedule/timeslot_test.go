package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "09:30", want: 570},
		{name: "last minute", input: "23:59", want: 1439},
		{name: "no separator", input: "0930", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "hours out of range", input: "24:00", wantErr: true},
		{name: "minutes out of range", input: "10:60", wantErr: true},
		{name: "negative hours", input: "-1:30", wantErr: true},
		{name: "non numeric", input: "ab:cd", wantErr: true},
		{name: "trailing garbage is minutes", input: "10:3am", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeToMinutes(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntervalsOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		startA, endA, startB, endB int
		want                       bool
	}{
		{name: "disjoint", startA: 600, endA: 660, startB: 720, endB: 780, want: false},
		{name: "contained", startA: 600, endA: 720, startB: 630, endB: 660, want: true},
		{name: "partial overlap", startA: 600, endA: 720, startB: 660, endB: 780, want: true},
		{name: "identical", startA: 600, endA: 720, startB: 600, endB: 720, want: true},
		{name: "touching end to start", startA: 600, endA: 720, startB: 720, endB: 840, want: false},
		{name: "touching start to end", startA: 720, endA: 840, startB: 600, endB: 720, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.startA, tt.endA, tt.startB, tt.endB))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, IntervalsOverlap(tt.startB, tt.endB, tt.startA, tt.endA))
		})
	}
}
