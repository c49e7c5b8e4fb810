package domain

// EnumerateSlots produces every bookable start position of one day, in
// chronological order. availability must be sorted and non-overlapping (the
// AvailabilityIntervals shape); occupied must be sorted by start (the
// OccupiedIntervals shape).
//
// Within each availability block the occupied intervals are subtracted and
// candidate starts are stepped through each free gap, anchored at the gap
// start. stepMin <= 0 steps by the service duration. Slots starting before
// notBeforeMin are dropped, which excludes already-passed starts when the
// queried date is today; pass a negative notBeforeMin to keep everything.
func EnumerateSlots(availability, occupied []TimeInterval, durationMin, stepMin, notBeforeMin int) []TimeInterval {
	if durationMin <= 0 {
		return nil
	}
	if stepMin <= 0 {
		stepMin = durationMin
	}

	var slots []TimeInterval
	for _, block := range availability {
		for _, free := range SubtractIntervals(block, occupied) {
			for start := free.StartMin; start+durationMin <= free.EndMin; start += stepMin {
				if start < notBeforeMin {
					continue
				}
				slots = append(slots, TimeInterval{StartMin: start, EndMin: start + durationMin})
			}
		}
	}
	return slots
}
