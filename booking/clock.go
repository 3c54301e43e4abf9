package booking

import (
	"fmt"
	"time"
)

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"
)

// parseClock parses "HH:MM" into minutes after midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// parseClockRange validates a start/end pair and returns them normalized.
func parseClockRange(start, end string) (int, int, error) {
	s, err := parseClock(start)
	if err != nil {
		return 0, 0, err
	}
	e, err := parseClock(end)
	if err != nil {
		return 0, 0, err
	}
	if s >= e {
		return 0, 0, fmt.Errorf("start %s must be before end %s", start, end)
	}
	return s, e, nil
}

// parseDate parses "YYYY-MM-DD" as midnight in loc.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

// midnight truncates t to the start of its calendar day in loc.
func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// atClock returns the instant minutes after midnight on day's calendar date.
func atClock(day time.Time, minutes int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, day.Location())
}

type interval struct {
	start, end time.Time
}

func (i interval) overlaps(o interval) bool {
	return i.start.Before(o.end) && i.end.After(o.start)
}

// subtract removes every cut from blocks, keeping the remaining pieces in order.
func subtract(blocks, cuts []interval) []interval {
	out := blocks
	for _, c := range cuts {
		next := make([]interval, 0, len(out)+1)
		for _, b := range out {
			if !b.overlaps(c) {
				next = append(next, b)
				continue
			}
			if c.start.After(b.start) {
				next = append(next, interval{b.start, c.start})
			}
			if c.end.Before(b.end) {
				next = append(next, interval{c.end, b.end})
			}
		}
		out = next
	}
	return out
}
