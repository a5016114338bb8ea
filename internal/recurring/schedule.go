// Package recurring implements the scheduling of recurring expenses:
// computing their due dates and materializing due ones into expenses.
package recurring

import (
	"time"

	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
)

// occurrence returns the date that is a number of periods after the anchor
// date for monthly or yearly frequencies.
//
// The day of the month is taken from the anchor and clamped to the last
// day of the target month. A schedule anchored on the 31st is due on
// Feb 28 (29 in leap years) and returns to the 31st in the next month
// that has one.
func occurrence(anchor types.Date, frequency models.Frequency, periods int) (types.Date, error) {
	t := time.Time(anchor)
	year, month, day := t.Date()

	switch frequency {
	case models.FrequencyWeekly:
		return anchor.AddDays(7 * periods), nil
	case models.FrequencyMonthly:
		// Normalize the target month before clamping the day
		target := time.Date(year, month+time.Month(periods), 1, 0, 0, 0, 0, time.UTC)
		year, month = target.Year(), target.Month()
	case models.FrequencyYearly:
		year += periods
	default:
		return types.Date{}, models.ErrFrequencyInvalid
	}

	if days := types.DaysInMonth(year, month); day > days {
		day = days
	}

	return types.NewDate(year, month, day), nil
}

// FirstOccurrence returns the first occurrence of a schedule on or after
// today.
//
// If the anchor date is today or in the future, it is returned unchanged.
// For anchor dates in the past, the number of elapsed periods is computed
// in constant time, no loop over individual occurrences is needed.
func FirstOccurrence(anchor types.Date, frequency models.Frequency, today types.Date) (types.Date, error) {
	if !frequency.Valid() {
		return types.Date{}, models.ErrFrequencyInvalid
	}

	if !anchor.Before(today) {
		return anchor, nil
	}

	var periods int
	switch frequency {
	case models.FrequencyWeekly:
		days := types.DaysBetween(anchor, today)
		periods = (days + 6) / 7
	case models.FrequencyMonthly:
		periods = monthsBetween(anchor, today)
	case models.FrequencyYearly:
		periods = yearsBetween(anchor, today)
	}

	date, err := occurrence(anchor, frequency, periods)
	if err != nil {
		return types.Date{}, err
	}

	// Clamping or day-of-month differences can leave the estimate one
	// period short
	if date.Before(today) {
		return occurrence(anchor, frequency, periods+1)
	}

	return date, nil
}

// NextOccurrence advances a schedule by exactly one period from the last
// due date. It never catches up multiple missed periods, that is the
// caller's job.
//
// anchorDay is the day of the month of the schedule's anchor date. It is
// what allows a monthly schedule that was clamped to a short month to
// return to its original day.
func NextOccurrence(last types.Date, frequency models.Frequency, anchorDay int) (types.Date, error) {
	year, month, _ := time.Time(last).Date()

	switch frequency {
	case models.FrequencyWeekly:
		return last.AddDays(7), nil
	case models.FrequencyMonthly:
		// Normalize the target month before clamping the day
		target := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
		year, month = target.Year(), target.Month()
	case models.FrequencyYearly:
		year++
	default:
		return types.Date{}, models.ErrFrequencyInvalid
	}

	return types.NewDate(year, month, clampDay(anchorDay, year, month)), nil
}

func clampDay(day, year int, month time.Month) int {
	if days := types.DaysInMonth(year, month); day > days {
		return days
	}

	return day
}

// monthsBetween returns the number of whole months from a to b,
// ignoring the day of the month.
func monthsBetween(a, b types.Date) int {
	ta, tb := time.Time(a), time.Time(b)
	return (tb.Year()-ta.Year())*12 + int(tb.Month()) - int(ta.Month())
}

// yearsBetween returns the number of whole years from a to b,
// ignoring month and day.
func yearsBetween(a, b types.Date) int {
	return time.Time(b).Year() - time.Time(a).Year()
}
