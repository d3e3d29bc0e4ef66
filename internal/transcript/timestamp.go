package transcript

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// splits an MM:SS.mmm timestamp into its numeric fields
func splitTimestamp(ts string) (minutes, seconds, millis int, err error) {
	minutePart, rest, ok := strings.Cut(ts, ":")
	if !ok || strings.Contains(rest, ":") {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, ts)
	}
	secondPart, milliPart, ok := strings.Cut(rest, ".")
	if !ok || strings.Contains(milliPart, ".") {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, ts)
	}

	fields := [3]int{}
	for i, part := range []string{minutePart, secondPart, milliPart} {
		n, convErr := strconv.Atoi(strings.TrimSpace(part))
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimestamp, ts)
		}
		fields[i] = n
	}

	return fields[0], fields[1], fields[2], nil
}

// SeekSeconds converts an MM:SS.mmm timestamp to a whole-second playback
// offset. Milliseconds are integer-divided by 1000, so the sub-second part
// of a well-formed timestamp never contributes: "01:02.500" is 62.
func SeekSeconds(ts string) (int, error) {
	minutes, seconds, millis, err := splitTimestamp(ts)
	if err != nil {
		return 0, err
	}
	return minutes*60 + seconds + millis/1000, nil
}

// Offset converts an MM:SS.mmm timestamp to an exact duration.
func Offset(ts string) (time.Duration, error) {
	minutes, seconds, millis, err := splitTimestamp(ts)
	if err != nil {
		return 0, err
	}
	return time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// ActiveIndex returns the index of the segment to highlight at playback
// position: the first segment whose end, in whole seconds, is not before the
// position's whole seconds. It returns -1 when playback is past every segment.
func ActiveIndex(segments []Segment, position time.Duration) int {
	current := int(position / time.Second)
	for i, seg := range segments {
		end, err := SeekSeconds(seg.End)
		if err != nil {
			continue
		}
		if end >= current {
			return i
		}
	}
	return -1
}

// FormatTimestamp renders d as MM:SS.mmm, or HH:MM:SS.mmm once it reaches an
// hour. Hour-form timings are written for completeness but Parse does not
// read them back.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Round(time.Millisecond).Milliseconds()

	hours := ms / 3_600_000
	ms -= hours * 3_600_000
	minutes := ms / 60_000
	ms -= minutes * 60_000
	seconds := ms / 1000
	ms -= seconds * 1000

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, ms)
	}
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, ms)
}
