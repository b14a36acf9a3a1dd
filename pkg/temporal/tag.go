// Package temporal encodes which conversions between chrono calendar
// value types are statically known to be impossible. A conversion fails
// when the source type cannot supply every field the target type needs:
// a Month carries no year or day, so a LocalDate can never be built from
// it, while the reverse direction is fine because a full date answers
// any month query.
package temporal

// Tag identifies one of the calendar value types the chrono library and
// its extension library define. The set is closed; there is no dynamic
// registration.
type Tag uint8

const (
	tagInvalid Tag = iota

	Instant
	LocalDate
	LocalDateTime
	LocalTime
	Month
	MonthDay
	OffsetDateTime
	OffsetTime
	Year
	YearMonth
	ZonedDateTime
	ZoneOffset
	DayOfWeek

	// Extension library types.
	AmPm
	DayOfMonth
	DayOfYear
	Quarter
	YearQuarter
	YearWeek

	numTags
)

var tagNames = [numTags]string{
	Instant:        "Instant",
	LocalDate:      "LocalDate",
	LocalDateTime:  "LocalDateTime",
	LocalTime:      "LocalTime",
	Month:          "Month",
	MonthDay:       "MonthDay",
	OffsetDateTime: "OffsetDateTime",
	OffsetTime:     "OffsetTime",
	Year:           "Year",
	YearMonth:      "YearMonth",
	ZonedDateTime:  "ZonedDateTime",
	ZoneOffset:     "ZoneOffset",
	DayOfWeek:      "DayOfWeek",
	AmPm:           "AmPm",
	DayOfMonth:     "DayOfMonth",
	DayOfYear:      "DayOfYear",
	Quarter:        "Quarter",
	YearQuarter:    "YearQuarter",
	YearWeek:       "YearWeek",
}

func (t Tag) String() string {
	if t == tagInvalid || t >= numTags {
		return "unknown"
	}
	return tagNames[t]
}

var tagsByName = func() map[string]Tag {
	m := make(map[string]Tag, numTags-1)
	for t := Tag(1); t < numTags; t++ {
		m[tagNames[t]] = t
	}
	return m
}()

// TagByName maps an exported chrono type name to its tag.
func TagByName(name string) (Tag, bool) {
	t, ok := tagsByName[name]
	return t, ok
}

// Tags returns every known tag, in declaration order.
func Tags() []Tag {
	out := make([]Tag, 0, numTags-1)
	for t := Tag(1); t < numTags; t++ {
		out = append(out, t)
	}
	return out
}
