package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain date", input: "2025-12-25", want: "2025-12-25"},
		{name: "rfc3339", input: "2025-12-25T00:00:00Z", want: "2025-12-25"},
		{name: "garbage", input: "next tuesday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.December, 25)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-12-25"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.Equal(d.Time))
}

func TestDaysInclusive(t *testing.T) {
	tests := []struct {
		name string
		from Date
		to   Date
		want int
	}{
		{name: "same day", from: NewDate(2025, 12, 25), to: NewDate(2025, 12, 25), want: 1},
		{name: "three days", from: NewDate(2025, 12, 25), to: NewDate(2025, 12, 27), want: 3},
		{name: "across month boundary", from: NewDate(2025, 12, 30), to: NewDate(2026, 1, 2), want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysInclusive(tt.from, tt.to))
		})
	}
}

func TestAddDays(t *testing.T) {
	start := NewDate(2025, 12, 30)
	assert.Equal(t, "2026-01-01", start.AddDays(2).String())
	assert.Equal(t, "2025-12-28", start.AddDays(-2).String())
}

func TestTimeSlotStartClock(t *testing.T) {
	assert.Equal(t, "09:00", SlotMorning.StartClock())
	assert.Equal(t, "13:00", SlotAfternoon.StartClock())
	assert.Equal(t, "17:00", SlotEvening.StartClock())
	assert.Equal(t, "17:00", TimeSlot("").StartClock())
}

func TestDuplicateActivitiesError(t *testing.T) {
	err := &DuplicateActivitiesError{IDs: []string{"a", "b"}}
	assert.Equal(t, "duplicate activities found across days: a, b", err.Error())
}
