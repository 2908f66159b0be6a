package footage

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MaxReel bounds the reel offset so that adding it to an hour field can
// never overflow.
const MaxReel = math.MaxInt32

var footageRE = regexp.MustCompile(`^(\d+)\+(\d+)$`)

// ValidInteger reports whether text may be used as a feet, frames or
// reel field. The empty string is valid and reads as zero. Scientific
// notation, signs and decimal points are rejected outright, anything
// else must be a non-negative base 10 integer.
func ValidInteger(text string) bool {
	if text == "" {
		return true
	}
	if strings.ContainsAny(text, "eE+-.") {
		return false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return true
	}
	_, err := strconv.ParseInt(text, 10, 64)
	return err == nil
}

// ParseField parses a numeric form field called name. Blank input is
// zero.
func ParseField(name, text string) (int64, error) {
	text = strings.TrimSpace(text)
	if !ValidInteger(text) {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidInteger, name, text)
	}
	if text == "" {
		return 0, nil
	}
	return strconv.ParseInt(text, 10, 64)
}

// ParseReel parses a reel number. Unlike the other fields a reel is
// required.
func ParseReel(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, fmt.Errorf("%w: reel is required", ErrInvalidInteger)
	}
	n, err := ParseField("reel", text)
	if err != nil {
		return 0, err
	}
	if n > MaxReel {
		return 0, fmt.Errorf("%w: reel %d out of range", ErrInvalidInteger, n)
	}
	return int(n), nil
}

// ParseTimecode parses HH:MM:SS:FF. Each of the four parts must be a
// non-negative integer and the frame part must be below fps.
func ParseTimecode(text string, fps FrameRate) (Timecode, error) {
	if !fps.Valid() {
		return Timecode{}, fmt.Errorf("%w: %d", ErrFrameRate, fps)
	}
	fps = fps.orDefault()
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 4 {
		return Timecode{}, fmt.Errorf("%w: use HH:MM:SS:FF", ErrFormat)
	}
	var n [4]int64
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || strings.ContainsAny(p, "+-") {
			return Timecode{}, fmt.Errorf("%w: use HH:MM:SS:FF", ErrFormat)
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return Timecode{}, fmt.Errorf("%w: use HH:MM:SS:FF", ErrFormat)
		}
		n[i] = v
	}
	if n[3] >= int64(fps) {
		return Timecode{}, fmt.Errorf("%w: frame value (%d) exceeds fps (%d)", ErrFrameOverflow, n[3], fps)
	}
	if n[1] > 59 || n[2] > 59 {
		return Timecode{}, fmt.Errorf("%w: minutes and seconds must be below 60", ErrFormat)
	}
	if n[0] > maxHours(fps) {
		return Timecode{}, fmt.Errorf("%w: hours %d out of range", ErrFormat, n[0])
	}
	return Timecode{
		Hours:   n[0],
		Minutes: int(n[1]),
		Seconds: int(n[2]),
		Frames:  int(n[3]),
	}, nil
}

// ParseFootage parses feet+frames, e.g. "100+05".
func ParseFootage(text string) (Footage, error) {
	m := footageRE.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Footage{}, fmt.Errorf("%w: invalid footage format", ErrFormat)
	}
	feet, frames := m[1], m[2]
	f, err := strconv.ParseInt(feet, 10, 64)
	if err != nil {
		return Footage{}, fmt.Errorf("%w: feet %q", ErrInvalidInteger, feet)
	}
	fr, err := strconv.ParseInt(frames, 10, 64)
	if err != nil {
		return Footage{}, fmt.Errorf("%w: frames %q", ErrInvalidInteger, frames)
	}
	return NewFootage(f, fr)
}

// maxHours is the largest hour field ToTimecode can print: the hours of
// the longest footage plus the largest reel.
func maxHours(fps FrameRate) int64 {
	return math.MaxInt64/(int64(fps)*3600) + MaxReel
}
