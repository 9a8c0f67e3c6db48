package domain

import "time"

// DateOnly обнуляет время, сохраняя локацию
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsSameDay проверяет, что две даты относятся к одному и тому же дню
func IsSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что календарная дата раньше сегодняшней
// Сравниваются только Y/M/D, каждая дата в своей локации
func IsDateInPast(date, now time.Time) bool {
	dy, dm, dd := date.Date()
	ny, nm, nd := now.Date()
	dateOnly := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}

// IsWeekend возвращает true для субботы и воскресенья
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AddMonthClamped прибавляет календарный месяц
// Если такого дня в следующем месяце нет (31 января -> 31 февраля),
// берётся последний день следующего месяца
func AddMonthClamped(date time.Time) time.Time {
	y, m, d := date.Date()
	firstOfNext := time.Date(y, m+1, 1, 0, 0, 0, 0, date.Location())
	lastDay := daysIn(firstOfNext.Year(), firstOfNext.Month())
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfNext.Year(), firstOfNext.Month(), d, 0, 0, 0, 0, date.Location())
}

// MonthlyEndDate конец "полного месяца": start + 1 месяц (с ограничением) - 1 день
// 2024-11-07 -> 2024-12-06, 2024-01-31 -> 2024-02-28, 2023-01-31 -> 2023-02-27
func MonthlyEndDate(start time.Time) time.Time {
	return AddMonthClamped(start).AddDate(0, 0, -1)
}

// DaysBetween возвращает все даты отрезка [from, to] включительно
func DaysBetween(from, to time.Time) []time.Time {
	from, to = DateOnly(from), DateOnly(to)
	if to.Before(from) {
		return nil
	}

	days := make([]time.Time, 0, 31)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
