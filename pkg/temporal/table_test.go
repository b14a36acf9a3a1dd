package temporal

import "testing"

func TestNoSelfPairs(t *testing.T) {
	for _, tag := range Tags() {
		if IsKnownIncompatible(tag, tag) {
			t.Fatalf("%v is marked incompatible with itself; same-type conversions are redundant, not impossible", tag)
		}
	}
}

// OffsetDateTime and ZonedDateTime carry every supported field, so no
// target rejects them. Editing either entry must be a deliberate act.
func TestCompleteSourcesFlagNothing(t *testing.T) {
	for _, source := range []Tag{OffsetDateTime, ZonedDateTime} {
		for _, target := range Tags() {
			if IsKnownIncompatible(target, source) {
				t.Fatalf("%v.From(%v) flagged, but %v supplies every field", target, source, source)
			}
		}
		if got := IncompatibleTargets(source); len(got) != 0 {
			t.Fatalf("IncompatibleTargets(%v) = %v, want empty", source, got)
		}
	}
}

func TestDirectionality(t *testing.T) {
	// A full date yields a month; a bare month can never yield a date.
	if !IsKnownIncompatible(LocalDate, Month) {
		t.Fatal("LocalDate from Month should be impossible")
	}
	if IsKnownIncompatible(Month, LocalDate) {
		t.Fatal("Month from LocalDate should be derivable")
	}

	// Fields with no common refinement fail in both directions.
	if !IsKnownIncompatible(DayOfWeek, Month) || !IsKnownIncompatible(Month, DayOfWeek) {
		t.Fatal("DayOfWeek and Month should be mutually incompatible")
	}
}

func TestDerivablePairsNotFlagged(t *testing.T) {
	pairs := []struct{ target, source Tag }{
		{DayOfWeek, LocalDate},
		{Month, MonthDay},
		{DayOfMonth, MonthDay},
		{Quarter, Month},
		{Quarter, MonthDay},
		{AmPm, LocalTime},
		{AmPm, LocalDateTime},
		{Year, YearQuarter},
		{Quarter, YearQuarter},
		{Month, YearMonth},
		{Year, YearMonth},
		{YearQuarter, YearMonth},
		{LocalTime, OffsetTime},
		{ZoneOffset, OffsetTime},
		{Instant, ZonedDateTime},
		{YearWeek, LocalDate},
	}
	for _, p := range pairs {
		if IsKnownIncompatible(p.target, p.source) {
			t.Errorf("%v from %v flagged, but the source carries every required field", p.target, p.source)
		}
	}
}

func TestImpossiblePairsFlagged(t *testing.T) {
	pairs := []struct{ target, source Tag }{
		{LocalDate, Month},
		{LocalDate, DayOfWeek},
		{LocalDateTime, Instant},
		{OffsetDateTime, Instant},
		{Instant, LocalDateTime},
		{AmPm, LocalDate},
		{ZoneOffset, LocalTime},
		{YearWeek, YearMonth},
		{Quarter, DayOfYear},
	}
	for _, p := range pairs {
		if !IsKnownIncompatible(p.target, p.source) {
			t.Errorf("%v from %v not flagged, but the source cannot supply the required fields", p.target, p.source)
		}
	}
}

// The forbidden-set sizes pin the table's exact shape; any edit that
// adds or drops a pair shows up here.
func TestIncompatibleTargetCounts(t *testing.T) {
	want := map[Tag]int{
		Instant:        18,
		LocalDate:      8,
		LocalDateTime:  5,
		LocalTime:      17,
		Month:          17,
		MonthDay:       15,
		OffsetDateTime: 0,
		OffsetTime:     15,
		Year:           18,
		YearMonth:      14,
		ZonedDateTime:  0,
		ZoneOffset:     18,
		DayOfWeek:      18,
		AmPm:           18,
		DayOfMonth:     18,
		DayOfYear:      18,
		Quarter:        18,
		YearQuarter:    16,
		YearWeek:       18,
	}
	for _, source := range Tags() {
		if got := len(IncompatibleTargets(source)); got != want[source] {
			t.Errorf("source %v has %d incompatible targets, want %d", source, got, want[source])
		}
	}
}

func TestDirectionalViewsAgree(t *testing.T) {
	for _, target := range Tags() {
		for _, source := range Tags() {
			flagged := IsKnownIncompatible(target, source)
			if got := contains(IncompatibleTargets(source), target); got != flagged {
				t.Fatalf("IncompatibleTargets(%v) and IsKnownIncompatible disagree on target %v", source, target)
			}
			if got := contains(IncompatibleSources(target), source); got != flagged {
				t.Fatalf("IncompatibleSources(%v) and IsKnownIncompatible disagree on source %v", target, source)
			}
		}
	}
}

func contains(tags []Tag, want Tag) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
