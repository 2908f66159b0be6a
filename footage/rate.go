package footage

import (
	"fmt"
	"strconv"
	"strings"
)

// FrameRate is the number of frames in one second of timecode
type FrameRate int

// Supported frame rates. 23.976 material is timed as 24.
const (
	FPS24 FrameRate = 24
	FPS25 FrameRate = 25
)

// ParseFrameRate accepts "24", "23.98", "23.98/24" and "25". The empty
// string selects FPS24.
func ParseFrameRate(s string) (FrameRate, error) {
	switch strings.TrimSpace(s) {
	case "", "24", "23.98", "23.976", "23.98/24":
		return FPS24, nil
	case "25":
		return FPS25, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrFrameRate, s)
}

// Valid reports whether r is supported. The zero value is valid and
// means FPS24.
func (r FrameRate) Valid() bool {
	return r == 0 || r == FPS24 || r == FPS25
}

// Label returns the name shown to users, as printed in batch exports
func (r FrameRate) Label() string {
	if r.orDefault() == FPS24 {
		return "23.98/24"
	}
	return strconv.Itoa(int(r))
}

func (r FrameRate) String() string {
	return strconv.Itoa(int(r.orDefault()))
}

func (r FrameRate) orDefault() FrameRate {
	if r == 0 {
		return FPS24
	}
	return r
}
