package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestScheduleLockKey(t *testing.T) {
	profID := uuid.MustParse("00000000-0000-0000-0000-0000000000a1")

	key := scheduleLockKey(profID, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC))
	want := "00000000-0000-0000-0000-0000000000a1:2026-09-07"
	if key != want {
		t.Fatalf("key = %q, want %q", key, want)
	}

	// Same calendar day, different wall clock and zone.
	late := time.Date(2026, 9, 7, 23, 59, 0, 0, time.UTC)
	if got := scheduleLockKey(profID, late); got != key {
		t.Fatalf("key = %q, want %q", got, key)
	}

	otherProf := scheduleLockKey(uuid.MustParse("00000000-0000-0000-0000-0000000000a2"), late)
	otherDay := scheduleLockKey(profID, late.AddDate(0, 0, 1))
	if otherProf == key || otherDay == key {
		t.Fatalf("lock keys must differ per professional and per date")
	}
}
