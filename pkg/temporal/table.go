package temporal

// tagSet is a bitmask over Tag values. numTags is well under 32.
type tagSet uint32

func setOf(tags ...Tag) tagSet {
	var s tagSet
	for _, t := range tags {
		s |= 1 << t
	}
	return s
}

func (s tagSet) has(t Tag) bool { return s&(1<<t) != 0 }

// badTargetsBySource maps a source type to the set of target types whose
// From factory is guaranteed to fail when handed a value of that source,
// because the source cannot supply every field the target requires.
//
// The relation is directional and deliberately sparse in places. A
// source never maps to itself; same-type calls are a separate, redundant
// case rather than an impossible one. OffsetDateTime and ZonedDateTime
// carry every supported field, so no target is known to reject them and
// their entries are empty; treat that as a conservative statement, not a
// proof that every conversion out of them succeeds.
var badTargetsBySource = map[Tag]tagSet{
	DayOfWeek: setOf(
		Instant, LocalDate, LocalDateTime, LocalTime, Month, MonthDay,
		OffsetDateTime, OffsetTime, Year, YearMonth, ZonedDateTime,
		ZoneOffset, AmPm, DayOfMonth, DayOfYear, Quarter, YearQuarter,
		YearWeek,
	),
	Instant: setOf(
		DayOfWeek, LocalDate, LocalDateTime, LocalTime, Month, MonthDay,
		OffsetDateTime, OffsetTime, Year, YearMonth, ZonedDateTime,
		ZoneOffset, AmPm, DayOfMonth, DayOfYear, Quarter, YearQuarter,
		YearWeek,
	),
	// A date has no time-of-day or offset, but any date-derived field
	// (week day, month, quarter, year week) is fair game.
	LocalDate: setOf(
		Instant, LocalDateTime, LocalTime, OffsetDateTime, OffsetTime,
		ZonedDateTime, ZoneOffset, AmPm,
	),
	LocalDateTime: setOf(
		Instant, OffsetDateTime, OffsetTime, ZonedDateTime, ZoneOffset,
	),
	LocalTime: setOf(
		DayOfWeek, Instant, LocalDate, LocalDateTime, Month, MonthDay,
		OffsetDateTime, OffsetTime, Year, YearMonth, ZonedDateTime,
		ZoneOffset, DayOfMonth, DayOfYear, Quarter, YearQuarter, YearWeek,
	),
	Month: setOf(
		DayOfWeek, Instant, LocalDate, LocalDateTime, LocalTime, MonthDay,
		OffsetDateTime, OffsetTime, Year, YearMonth, ZonedDateTime,
		ZoneOffset, AmPm, DayOfMonth, DayOfYear, YearQuarter, YearWeek,
	),
	MonthDay: setOf(
		DayOfWeek, Instant, LocalDate, LocalDateTime, LocalTime,
		OffsetDateTime, OffsetTime, Year, YearMonth, ZonedDateTime,
		ZoneOffset, AmPm, DayOfYear, YearQuarter, YearWeek,
	),
	OffsetDateTime: setOf(),
	OffsetTime: setOf(
		DayOfWeek, Instant, LocalDate, LocalDateTime, Month, MonthDay,
		OffsetDateTime, Year, YearMonth, ZonedDateTime, DayOfMonth,
		DayOfYear, Quarter, YearQuarter, YearWeek,
	),
	Year: setOf(
		DayOfWeek, Instant, LocalDate, LocalDateTime, LocalTime, Month,
		MonthDay, OffsetDateTime, OffsetTime, YearMonth, ZonedDateTime,
		ZoneOffset, AmPm, DayOfMonth, DayOfYear, Quarter, YearQuarter,
		YearWeek,
	),
	YearMonth: setOf(
		DayOfWeek, Instant, LocalDate, LocalDateTime, LocalTime, MonthDay,
		OffsetDateTime, OffsetTime, ZonedDateTime, ZoneOffset, AmPm,
		DayOfMonth, DayOfYear, YearWeek,
	),
	ZonedDateTime: setOf(),
	ZoneOffset: setOf(
		DayOfWeek, Instant, LocalDate, LocalDateTime, LocalTime, Month,
		MonthDay, OffsetDateTime, OffsetTime, Year, YearMonth,
		ZonedDateTime, AmPm, DayOfMonth, DayOfYear, Quarter, YearQuarter,
		YearWeek,
	),
	AmPm: setOf(
		DayOfWeek, Instant, LocalDate, LocalDateTime, LocalTime, Month,
		MonthDay, OffsetDateTime, OffsetTime, Year, YearMonth,
		ZonedDateTime, ZoneOffset, DayOfMonth, DayOfYear, Quarter,
		YearQuarter, YearWeek,
	),
	DayOfMonth: setOf(
		DayOfWeek, Instant, LocalDate, LocalDateTime, LocalTime, Month,
		MonthDay, OffsetDateTime, OffsetTime, Year, YearMonth,
		ZonedDateTime, ZoneOffset, AmPm, DayOfYear, Quarter, YearQuarter,
		YearWeek,
	),
	DayOfYear: setOf(
		DayOfWeek, Instant, LocalDate, LocalDateTime, LocalTime, Month,
		MonthDay, OffsetDateTime, OffsetTime, Year, YearMonth,
		ZonedDateTime, ZoneOffset, AmPm, DayOfMonth, Quarter, YearQuarter,
		YearWeek,
	),
	Quarter: setOf(
		DayOfWeek, Instant, LocalDate, LocalDateTime, LocalTime, Month,
		MonthDay, OffsetDateTime, OffsetTime, Year, YearMonth,
		ZonedDateTime, ZoneOffset, AmPm, DayOfMonth, DayOfYear,
		YearQuarter, YearWeek,
	),
	YearQuarter: setOf(
		DayOfWeek, Instant, LocalDate, LocalDateTime, LocalTime, Month,
		MonthDay, OffsetDateTime, OffsetTime, YearMonth, ZonedDateTime,
		ZoneOffset, AmPm, DayOfMonth, DayOfYear, YearWeek,
	),
	YearWeek: setOf(
		DayOfWeek, Instant, LocalDate, LocalDateTime, LocalTime, Month,
		MonthDay, OffsetDateTime, OffsetTime, Year, YearMonth,
		ZonedDateTime, ZoneOffset, AmPm, DayOfMonth, DayOfYear, Quarter,
		YearQuarter,
	),
}

// IsKnownIncompatible reports whether constructing target from a value
// statically typed as source is guaranteed to fail at runtime. Pairs
// absent from the table are not flagged; absence is a conservative
// default, not a validity proof.
func IsKnownIncompatible(target, source Tag) bool {
	return badTargetsBySource[source].has(target)
}

// IncompatibleTargets returns every target type that can never be
// constructed from the given source type.
func IncompatibleTargets(source Tag) []Tag {
	set := badTargetsBySource[source]
	var out []Tag
	for t := Tag(1); t < numTags; t++ {
		if set.has(t) {
			out = append(out, t)
		}
	}
	return out
}

// IncompatibleSources returns every source type known to be unable to
// supply the fields the given target type requires.
func IncompatibleSources(target Tag) []Tag {
	var out []Tag
	for s := Tag(1); s < numTags; s++ {
		if badTargetsBySource[s].has(target) {
			out = append(out, s)
		}
	}
	return out
}
