package booking

import "time"

// ===============================
// Recurrence Frequencies
// ===============================

type Frequency string

const (
	FrequencyOnce     Frequency = "once"
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

func ValidFrequency(f Frequency) bool {
	switch f {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	}
	return false
}

// Horizons maps a frequency to how many occurrences an order expands into.
// The bound is configuration; the defaults preserve the historical values.
type Horizons map[Frequency]int

func DefaultHorizons() Horizons {
	return Horizons{
		FrequencyOnce:     1,
		FrequencyDaily:    1,
		FrequencyWeekly:   24,
		FrequencyBiweekly: 12,
		FrequencyMonthly:  6,
	}
}

func (h Horizons) Count(f Frequency) int {
	if h == nil {
		h = DefaultHorizons()
	}
	return h[f]
}

// Stride is the gap between consecutive occurrences, in days. Monthly has no
// fixed day stride; it steps one calendar month at a time.
func Stride(f Frequency) int {
	switch f {
	case FrequencyWeekly:
		return 7
	case FrequencyBiweekly:
		return 14
	case FrequencyDaily:
		return 1
	}
	return 0
}

// Occurrences produces the ordered occurrence date-times for one order.
// Occurrence i of a monthly series lands exactly i calendar months after the
// anchor, with the day clamped to the target month's length, so a Jan 31
// anchor yields Feb 28/29 rather than sliding further each month.
// An unrecognized frequency yields an empty sequence.
func Occurrences(f Frequency, anchor time.Time, horizons Horizons) []time.Time {
	count := horizons.Count(f)
	if count <= 0 {
		return nil
	}

	out := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		switch f {
		case FrequencyMonthly:
			out = append(out, AddMonths(anchor, i))
		default:
			out = append(out, anchor.AddDate(0, 0, Stride(f)*i))
		}
	}
	return out
}

// AddMonths advances t by n calendar months, clamping the day-of-month to
// the target month's last day instead of overflowing into the next month.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()

	m := int(month) - 1 + n
	year += m / 12
	m = m % 12
	if m < 0 {
		m += 12
		year--
	}
	month = time.Month(m + 1)

	if last := daysIn(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
