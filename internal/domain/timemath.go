package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// MinutesPerDay is the length of one timeline track in minutes.
	MinutesPerDay = 24 * 60

	// DefaultGranularity is the snap step used for ordinary pointer input.
	DefaultGranularity = 15
	// FineGranularity is the snap step while the fine-grained modifier is held.
	FineGranularity = 1

	// EndOfDay is the clock sentinel for "midnight at the end of the segment day".
	EndOfDay = "24:00"
)

// ParseClock parses an "HH:MM" clock time into minutes after midnight.
// "24:00" is accepted and yields MinutesPerDay.
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || h == "" || len(m) != 2 {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	if hours < 0 || hours > 24 || minutes < 0 || minutes > 59 || (hours == 24 && minutes != 0) {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return hours*60 + minutes, nil
}

// TimeToMinutes converts "HH:MM" to minutes after midnight.
// Missing or unparseable input counts as 0.
func TimeToMinutes(s string) int {
	if s == "" {
		return 0
	}
	m, err := ParseClock(s)
	if err != nil {
		return 0
	}
	return m
}

// MinutesToTime formats minutes after midnight as "HH:MM" on a 24-hour
// clock, wrapping at 24h.
func MinutesToTime(minutes int) string {
	minutes %= MinutesPerDay
	if minutes < 0 {
		minutes += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinutesToEndTime is MinutesToTime for the end of a segment: a full day
// renders as "24:00" rather than wrapping to "00:00".
func MinutesToEndTime(minutes int) string {
	if minutes == MinutesPerDay {
		return EndOfDay
	}
	return MinutesToTime(minutes)
}

// GranularityFor returns the snap step for the current modifier state.
func GranularityFor(fine bool) int {
	if fine {
		return FineGranularity
	}
	return DefaultGranularity
}

// Snap rounds minutes to the nearest multiple of granularity.
func Snap(minutes float64, granularity int) int {
	g := float64(normalizeGranularity(granularity))
	return int(math.Round(minutes/g) * g)
}

// SnapFloor rounds minutes down to a multiple of granularity.
func SnapFloor(minutes float64, granularity int) int {
	g := float64(normalizeGranularity(granularity))
	return int(math.Floor(minutes/g) * g)
}

// SnapCeil rounds minutes up to a multiple of granularity.
func SnapCeil(minutes float64, granularity int) int {
	g := float64(normalizeGranularity(granularity))
	return int(math.Ceil(minutes/g) * g)
}

func normalizeGranularity(g int) int {
	if g <= 0 {
		return DefaultGranularity
	}
	return g
}

// PixelsToMinutes maps a vertical offset within a day track to minutes
// after midnight. A non-positive track height maps everything to 0.
func PixelsToMinutes(y, trackHeight float64) float64 {
	if trackHeight <= 0 {
		return 0
	}
	return y / trackHeight * MinutesPerDay
}

// MinutesToPixels is the inverse of PixelsToMinutes.
func MinutesToPixels(minutes, trackHeight float64) float64 {
	return minutes / MinutesPerDay * trackHeight
}

// FormatDuration renders a minute count as "1h30m", "45m" or "2h".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}
