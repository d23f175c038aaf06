package invest

import "time"

// Chinese exchange calendar: closed on weekends and public holidays.
//
// Fixed-date closures are listed as month/day pairs; the moveable holidays
// (Spring Festival, Qingming, Dragon Boat, Mid-Autumn and the make-up
// bridges around Labour Day and National Day) are listed per year. Years
// outside the table degrade to weekend-only checks, which is harmless: the
// price clients walk back over days with no data anyway.

type monthDay struct {
	m time.Month
	d int
}

var fixedClosures = map[monthDay]bool{
	{time.January, 1}: true, // New Year's Day
	{time.May, 1}:     true, // Labour Day
	{time.October, 1}: true, // National Day
	{time.October, 2}: true,
	{time.October, 3}: true,
	{time.October, 4}: true,
	{time.October, 5}: true,
	{time.October, 6}: true,
	{time.October, 7}: true,
}

// movableClosures lists exchange closures that shift year to year,
// per the SSE/SZSE holiday announcements.
var movableClosures = map[int][]monthDay{
	2020: {{time.January, 24}, {time.January, 27}, {time.January, 28}, {time.January, 29}, {time.January, 30}, {time.January, 31}, {time.April, 6}, {time.May, 4}, {time.May, 5}, {time.June, 25}, {time.June, 26}},
	2021: {{time.February, 11}, {time.February, 12}, {time.February, 15}, {time.February, 16}, {time.February, 17}, {time.April, 5}, {time.May, 3}, {time.May, 4}, {time.May, 5}, {time.June, 14}, {time.September, 20}, {time.September, 21}},
	2022: {{time.January, 31}, {time.February, 1}, {time.February, 2}, {time.February, 3}, {time.February, 4}, {time.April, 4}, {time.April, 5}, {time.May, 2}, {time.May, 3}, {time.May, 4}, {time.June, 3}, {time.September, 12}},
	2023: {{time.January, 23}, {time.January, 24}, {time.January, 25}, {time.January, 26}, {time.January, 27}, {time.April, 5}, {time.May, 2}, {time.May, 3}, {time.June, 22}, {time.June, 23}, {time.September, 29}},
	2024: {{time.February, 12}, {time.February, 13}, {time.February, 14}, {time.February, 15}, {time.February, 16}, {time.April, 4}, {time.April, 5}, {time.May, 2}, {time.May, 3}, {time.June, 10}, {time.September, 16}, {time.September, 17}},
	2025: {{time.January, 28}, {time.January, 29}, {time.January, 30}, {time.January, 31}, {time.February, 3}, {time.February, 4}, {time.April, 4}, {time.May, 2}, {time.May, 5}, {time.June, 2}, {time.October, 8}},
	2026: {{time.February, 16}, {time.February, 17}, {time.February, 18}, {time.February, 19}, {time.February, 20}, {time.April, 6}, {time.May, 4}, {time.May, 5}, {time.June, 19}, {time.September, 25}},
}

// IsTradingDay reports whether the mainland exchanges are open on a date.
func IsTradingDay(d Date) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	md := monthDay{d.Month(), d.Day()}
	if fixedClosures[md] {
		return false
	}
	for _, closed := range movableClosures[d.Year()] {
		if closed == md {
			return false
		}
	}
	return true
}

// NearestTradingDay returns the date itself when the market is open, or the
// nearest prior trading day otherwise.
func NearestTradingDay(d Date) Date {
	if IsTradingDay(d) {
		return d
	}
	return PreviousTradingDay(d)
}

// PreviousTradingDay returns the last trading day strictly before the date.
func PreviousTradingDay(d Date) Date {
	cur := d.Add(-1)
	for i := 0; i < 15; i++ {
		if IsTradingDay(cur) {
			return cur
		}
		cur = cur.Add(-1)
	}
	return cur
}

// NextTradingDay returns the first trading day strictly after the date.
func NextTradingDay(d Date) Date {
	cur := d.Add(1)
	for i := 0; i < 15; i++ {
		if IsTradingDay(cur) {
			return cur
		}
		cur = cur.Add(1)
	}
	return cur
}

// YearStartTradingDay returns the first trading day of a year. January 1st
// is always a closure, so this is the first open day after it.
func YearStartTradingDay(year int) Date {
	return NextTradingDay(NewDate(year, time.January, 1))
}

// YearEndTradingDay returns the last trading day of a year.
func YearEndTradingDay(year int) Date {
	return NearestTradingDay(NewDate(year, time.December, 31))
}
