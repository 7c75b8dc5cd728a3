package calc

import "time"

// Age is the calendar distance between a birth date and a reference date.
type Age struct {
	Years              int `json:"years"`
	Months             int `json:"months"`
	Days               int `json:"days"`
	TotalDays          int `json:"total_days"`
	DaysToNextBirthday int `json:"days_to_next_birthday"`
}

// AgeAt computes the age on day ref of someone born on birth. Only the
// calendar dates matter; clock time and location are dropped.
//
// Whole months are counted forward from the birth date. When the birth day
// does not exist in a month (31 April, 29 February in a common year) the
// monthly anniversary falls on that month's last day.
func AgeAt(birth, ref time.Time) (Age, error) {
	b := dateOnly(birth)
	r := dateOnly(ref)
	if b.After(r) {
		return Age{}, invalid("birth_date", "is after the reference date")
	}

	months := (r.Year()-b.Year())*12 + int(r.Month()) - int(b.Month())
	if addMonthsClamped(b, months).After(r) {
		months--
	}
	anchor := addMonthsClamped(b, months)

	return Age{
		Years:              months / 12,
		Months:             months % 12,
		Days:               daysBetween(anchor, r),
		TotalDays:          daysBetween(b, r),
		DaysToNextBirthday: daysToNextBirthday(b, r),
	}, nil
}

// daysToNextBirthday counts days from r until the next anniversary of b.
// A 29 February birthday falls on 28 February in common years.
func daysToNextBirthday(b, r time.Time) int {
	next := clampedDate(r.Year(), b.Month(), b.Day())
	if next.Before(r) {
		next = clampedDate(r.Year()+1, b.Month(), b.Day())
	}
	return daysBetween(r, next)
}

// addMonthsClamped moves t forward n calendar months, keeping t's day of
// month unless the target month is shorter.
func addMonthsClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return clampedDate(first.Year(), first.Month(), t.Day())
}

func clampedDate(year int, month time.Month, day int) time.Time {
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
