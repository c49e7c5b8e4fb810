package domain

import (
	"encoding/json"
	"reflect"
	"testing"
)

func mustInterval(t *testing.T, start, end string) TimeInterval {
	t.Helper()
	s, err := ParseClock(start)
	if err != nil {
		t.Fatalf("ParseClock(%q) error: %v", start, err)
	}
	e, err := ParseClock(end)
	if err != nil {
		t.Fatalf("ParseClock(%q) error: %v", end, err)
	}
	iv, err := NewTimeInterval(s, e)
	if err != nil {
		t.Fatalf("NewTimeInterval(%s, %s) error: %v", start, end, err)
	}
	return iv
}

func TestNewTimeInterval_RejectsInvalid(t *testing.T) {
	cases := []struct {
		name       string
		start, end int
	}{
		{"inverted", 600, 540},
		{"zero length", 600, 600},
		{"negative start", -1, 60},
		{"past end of day", 1400, 1441},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTimeInterval(tc.start, tc.end); err == nil {
				t.Fatalf("NewTimeInterval(%d, %d) = nil error, want rejection", tc.start, tc.end)
			}
		})
	}
}

func TestOverlaps_HalfOpenSemantics(t *testing.T) {
	base := mustInterval(t, "10:00", "10:30")

	cases := []struct {
		name  string
		other TimeInterval
		want  bool
	}{
		{"touching after", mustInterval(t, "10:30", "11:00"), false},
		{"touching before", mustInterval(t, "09:30", "10:00"), false},
		{"true overlap", mustInterval(t, "10:15", "10:45"), true},
		{"contained", mustInterval(t, "10:10", "10:20"), true},
		{"containing", mustInterval(t, "09:00", "12:00"), true},
		{"disjoint", mustInterval(t, "12:00", "13:00"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.other); got != tc.want {
				t.Fatalf("Overlaps(%s, %s) = %v, want %v", base, tc.other, got, tc.want)
			}
			if got := tc.other.Overlaps(base); got != tc.want {
				t.Fatalf("Overlaps(%s, %s) = %v, want %v", tc.other, base, got, tc.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	outer := mustInterval(t, "09:00", "14:00")

	if !outer.Contains(mustInterval(t, "09:00", "14:00")) {
		t.Fatalf("interval must contain itself")
	}
	if !outer.Contains(mustInterval(t, "13:30", "14:00")) {
		t.Fatalf("expected containment up to the shared end")
	}
	if outer.Contains(mustInterval(t, "13:45", "14:15")) {
		t.Fatalf("interval crossing the end must not be contained")
	}
	if outer.Contains(mustInterval(t, "08:45", "09:15")) {
		t.Fatalf("interval crossing the start must not be contained")
	}
}

func TestDurationMinutes(t *testing.T) {
	if got := mustInterval(t, "09:00", "10:30").DurationMinutes(); got != 90 {
		t.Fatalf("DurationMinutes = %d, want 90", got)
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:05", 545, false},
		{"23:59", 1439, false},
		{"24:00", 1440, false},
		{"24:01", 0, true},
		{"25:00", 0, true},
		{"9:00", 0, true},
		{"09:60", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseClock(%q) = %d, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseClock(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestIntervalJSON(t *testing.T) {
	iv := mustInterval(t, "09:30", "10:00")

	data, err := json.Marshal(iv)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `{"start":"09:30","end":"10:00"}` {
		t.Fatalf("json = %s", data)
	}

	var back TimeInterval
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if back != iv {
		t.Fatalf("round trip = %+v, want %+v", back, iv)
	}

	if err := json.Unmarshal([]byte(`{"start":"10:00","end":"10:00"}`), &back); err == nil {
		t.Fatalf("expected rejection of zero-length interval")
	}
}

func TestMergeIntervals(t *testing.T) {
	cases := []struct {
		name string
		in   []TimeInterval
		want []TimeInterval
	}{
		{
			name: "empty",
			in:   nil,
			want: nil,
		},
		{
			name: "unsorted disjoint stay separate",
			in:   []TimeInterval{mustInterval(t, "14:00", "18:00"), mustInterval(t, "09:00", "12:00")},
			want: []TimeInterval{mustInterval(t, "09:00", "12:00"), mustInterval(t, "14:00", "18:00")},
		},
		{
			name: "overlapping rules collapse",
			in:   []TimeInterval{mustInterval(t, "09:00", "12:00"), mustInterval(t, "11:00", "13:00")},
			want: []TimeInterval{mustInterval(t, "09:00", "13:00")},
		},
		{
			name: "touching rules join",
			in:   []TimeInterval{mustInterval(t, "09:00", "12:00"), mustInterval(t, "12:00", "14:00")},
			want: []TimeInterval{mustInterval(t, "09:00", "14:00")},
		},
		{
			name: "nested absorbed",
			in:   []TimeInterval{mustInterval(t, "09:00", "17:00"), mustInterval(t, "10:00", "11:00")},
			want: []TimeInterval{mustInterval(t, "09:00", "17:00")},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MergeIntervals(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("MergeIntervals = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSubtractIntervals(t *testing.T) {
	base := mustInterval(t, "09:00", "14:00")

	cases := []struct {
		name     string
		occupied []TimeInterval
		want     []TimeInterval
	}{
		{
			name:     "nothing occupied",
			occupied: nil,
			want:     []TimeInterval{base},
		},
		{
			name:     "gap in the middle",
			occupied: []TimeInterval{mustInterval(t, "10:00", "10:30")},
			want:     []TimeInterval{mustInterval(t, "09:00", "10:00"), mustInterval(t, "10:30", "14:00")},
		},
		{
			name:     "occupied outside base ignored",
			occupied: []TimeInterval{mustInterval(t, "07:00", "08:00"), mustInterval(t, "15:00", "16:00")},
			want:     []TimeInterval{base},
		},
		{
			name:     "occupied crossing the start is clipped",
			occupied: []TimeInterval{mustInterval(t, "08:30", "09:30")},
			want:     []TimeInterval{mustInterval(t, "09:30", "14:00")},
		},
		{
			name:     "occupied crossing the end is clipped",
			occupied: []TimeInterval{mustInterval(t, "13:30", "14:30")},
			want:     []TimeInterval{mustInterval(t, "09:00", "13:30")},
		},
		{
			name: "back to back occupations leave no sliver",
			occupied: []TimeInterval{
				mustInterval(t, "10:00", "10:30"),
				mustInterval(t, "10:30", "11:00"),
			},
			want: []TimeInterval{mustInterval(t, "09:00", "10:00"), mustInterval(t, "11:00", "14:00")},
		},
		{
			name:     "fully occupied",
			occupied: []TimeInterval{mustInterval(t, "09:00", "14:00")},
			want:     nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SubtractIntervals(base, tc.occupied)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("SubtractIntervals = %v, want %v", got, tc.want)
			}
		})
	}
}
