package scheduling

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"time"
)

const (
	MaxCalendarPosts     = 30
	DefaultPostsPerWeek  = 3
	calendarFirstHour    = 9
	calendarHourSpan     = 8 // 9 AM up to, not including, 5 PM
	calendarMinuteSlices = 12
)

var (
	ErrInvalidRange     = errors.New("end date must be after start date")
	ErrInvalidFrequency = errors.New("frequency must not be negative")
	ErrTooManyPosts     = errors.New("too many posts requested")
)

// CalendarPostCount returns how many posts a range needs at perWeek posts
// per week. A non-positive perWeek falls back to DefaultPostsPerWeek.
func CalendarPostCount(start, end time.Time, perWeek float64) int {
	if perWeek <= 0 {
		perWeek = DefaultPostsPerWeek
	}
	totalDays := math.Ceil(float64(end.Sub(start)) / float64(24*time.Hour))
	totalWeeks := math.Ceil(totalDays / 7)
	return max(1, int(math.Ceil(totalWeeks*perWeek)))
}

// PlanCalendar validates a request and returns its post count.
func PlanCalendar(start, end time.Time, perWeek float64) (int, error) {
	if !start.Before(end) {
		return 0, ErrInvalidRange
	}
	if perWeek < 0 {
		return 0, ErrInvalidFrequency
	}
	n := CalendarPostCount(start, end, perWeek)
	if n > MaxCalendarPosts {
		return 0, fmt.Errorf("%w: %d posts, maximum is %d", ErrTooManyPosts, n, MaxCalendarPosts)
	}
	return n, nil
}

// DistributeTimes spreads n send times evenly over [start, end]. Each time
// keeps its interpolated date but gets a random hour between 9 AM and 5 PM on
// a 5 minute boundary, clamped back into the range. The result is sorted.
func DistributeTimes(start, end time.Time, n int, r *rand.Rand) []time.Time {
	if n <= 0 {
		return nil
	}

	span := end.Sub(start)
	times := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		progress := 0.0
		if n > 1 {
			progress = float64(i) / float64(n-1)
		}
		at := start.Add(time.Duration(progress * float64(span)))

		hour := calendarFirstHour + r.IntN(calendarHourSpan)
		minute := r.IntN(calendarMinuteSlices) * 5
		at = time.Date(at.Year(), at.Month(), at.Day(), hour, minute, 0, 0, at.Location())

		times = append(times, clamp(at, start, end))
	}

	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

func clamp(t, lo, hi time.Time) time.Time {
	if t.Before(lo) {
		return lo
	}
	if t.After(hi) {
		return hi
	}
	return t
}
