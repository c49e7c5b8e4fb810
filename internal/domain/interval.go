package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

const MinutesPerDay = 24 * 60

var ErrInvalidInterval = errors.New("invalid interval")

// TimeInterval is a half-open [Start, End) range within a single day,
// expressed in minutes from midnight. Comparisons are integer comparisons;
// intervals that share an endpoint do not overlap.
type TimeInterval struct {
	StartMin int
	EndMin   int
}

func NewTimeInterval(startMin, endMin int) (TimeInterval, error) {
	if startMin < 0 || endMin > MinutesPerDay || startMin >= endMin {
		return TimeInterval{}, ErrInvalidInterval
	}
	return TimeInterval{StartMin: startMin, EndMin: endMin}, nil
}

func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.StartMin < other.EndMin && other.StartMin < i.EndMin
}

func (i TimeInterval) Contains(inner TimeInterval) bool {
	return i.StartMin <= inner.StartMin && inner.EndMin <= i.EndMin
}

func (i TimeInterval) DurationMinutes() int {
	return i.EndMin - i.StartMin
}

func (i TimeInterval) String() string {
	return FormatClock(i.StartMin) + "-" + FormatClock(i.EndMin)
}

// ParseClock parses a "HH:MM" clock time into minutes from midnight.
// "24:00" is accepted as the end-of-day boundary.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	h, m := 0, 0
	for _, c := range []byte(s[:2]) {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid clock time %q", s)
		}
		h = h*10 + int(c-'0')
	}
	for _, c := range []byte(s[3:]) {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid clock time %q", s)
		}
		m = m*10 + int(c-'0')
	}
	if m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return h*60 + m, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

type intervalJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (i TimeInterval) MarshalJSON() ([]byte, error) {
	return json.Marshal(intervalJSON{
		Start: FormatClock(i.StartMin),
		End:   FormatClock(i.EndMin),
	})
}

func (i *TimeInterval) UnmarshalJSON(data []byte) error {
	var raw intervalJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := ParseClock(raw.Start)
	if err != nil {
		return err
	}
	end, err := ParseClock(raw.End)
	if err != nil {
		return err
	}
	parsed, err := NewTimeInterval(start, end)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// MergeIntervals returns the union of the given intervals as a sorted,
// non-overlapping sequence. Touching intervals are joined.
func MergeIntervals(intervals []TimeInterval) []TimeInterval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]TimeInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].StartMin != sorted[j].StartMin {
			return sorted[i].StartMin < sorted[j].StartMin
		}
		return sorted[i].EndMin < sorted[j].EndMin
	})

	out := make([]TimeInterval, 0, len(sorted))
	cur := sorted[0]
	for _, iv := range sorted[1:] {
		if iv.StartMin <= cur.EndMin {
			if iv.EndMin > cur.EndMin {
				cur.EndMin = iv.EndMin
			}
			continue
		}
		out = append(out, cur)
		cur = iv
	}
	return append(out, cur)
}

// SubtractIntervals removes the occupied intervals from base and returns the
// remaining free sub-intervals in order. Occupied intervals must be sorted by
// start; portions outside base are ignored.
func SubtractIntervals(base TimeInterval, occupied []TimeInterval) []TimeInterval {
	var free []TimeInterval
	cursor := base.StartMin

	for _, occ := range occupied {
		if occ.EndMin <= base.StartMin || occ.StartMin >= base.EndMin {
			continue
		}
		if occ.StartMin > cursor {
			free = append(free, TimeInterval{StartMin: cursor, EndMin: occ.StartMin})
		}
		if occ.EndMin > cursor {
			cursor = occ.EndMin
		}
	}
	if cursor < base.EndMin {
		free = append(free, TimeInterval{StartMin: cursor, EndMin: base.EndMin})
	}
	return free
}
