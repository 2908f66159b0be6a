package footage

import (
	"fmt"
	"math"
	"time"

	"github.com/cbsinteractive/pkg/timecode"
)

// FramesPerFoot is fixed by 35mm 4-perf film
const FramesPerFoot = 16

const maxFeet = math.MaxInt64/FramesPerFoot - 1

const maxRunningSeconds = math.MaxInt64 / int64(time.Second)

// Footage is a film length in feet and frames
type Footage struct {
	Feet   int64 `json:"feet"`
	Frames int   `json:"frames"`
}

// NewFootage validates feet and frames.
func NewFootage(feet, frames int64) (Footage, error) {
	if feet < 0 || feet > maxFeet {
		return Footage{}, fmt.Errorf("%w: feet %d out of range", ErrInvalidInteger, feet)
	}
	if frames < 0 {
		return Footage{}, fmt.Errorf("%w: frames %d", ErrInvalidInteger, frames)
	}
	if frames >= FramesPerFoot {
		return Footage{}, fmt.Errorf("%w: frames %d > 15", ErrFrameOverflow, frames)
	}
	return Footage{Feet: feet, Frames: int(frames)}, nil
}

// FromFrames splits a frame count into feet and frames
func FromFrames(n int64) Footage {
	return Footage{Feet: n / FramesPerFoot, Frames: int(n % FramesPerFoot)}
}

// TotalFrames returns the length of f in frames
func (f Footage) TotalFrames() int64 {
	return f.Feet*FramesPerFoot + int64(f.Frames)
}

// String returns feet+frames with the frames zero padded, e.g. "515+10"
func (f Footage) String() string {
	return fmt.Sprintf("%d+%02d", f.Feet, f.Frames)
}

// RunningTime returns how long f plays at fps, to the millisecond. It
// reports false when the length does not fit in a time.Duration, about
// 292 years.
func (f Footage) RunningTime(fps FrameRate) (time.Duration, bool) {
	fps = fps.orDefault()
	if f.TotalFrames()/int64(fps) >= maxRunningSeconds {
		return 0, false
	}
	r, err := timecode.Parse(ToTimecode(f, fps, 0).String(), float64(fps))
	if err != nil {
		return 0, false
	}
	return r.Size().Round(time.Millisecond), true
}

// Timecode is a playback address. Hours are unbounded so that large reel
// offsets never wrap.
type Timecode struct {
	Hours   int64 `json:"hours"`
	Minutes int   `json:"minutes"`
	Seconds int   `json:"seconds"`
	Frames  int   `json:"frames"`
}

// String returns HH:MM:SS:FF. Hours past 99 keep all their digits.
func (t Timecode) String() string {
	return fmt.Sprintf("%02d:%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds, t.Frames)
}

// ToTimecode converts f to a timecode, adding reel hours. It cannot fail
// for a Footage built by NewFootage or ParseFootage.
func ToTimecode(f Footage, fps FrameRate, reel int) Timecode {
	rate := int64(fps.orDefault())
	total := f.TotalFrames()
	return Timecode{
		Hours:   total/(rate*3600) + int64(reel),
		Minutes: int(total / (rate * 60) % 60),
		Seconds: int(total / rate % 60),
		Frames:  int(total % rate),
	}
}

// ToFootage converts t to footage after removing reel hours.
func ToFootage(t Timecode, fps FrameRate, reel int) (Footage, error) {
	if !fps.Valid() {
		return Footage{}, fmt.Errorf("%w: %d", ErrFrameRate, fps)
	}
	rate := int64(fps.orDefault())
	if reel < 0 {
		return Footage{}, fmt.Errorf("%w: reel %d", ErrInvalidInteger, reel)
	}
	if int64(t.Frames) >= rate {
		return Footage{}, fmt.Errorf("%w: frame value (%d) exceeds fps (%d)", ErrFrameOverflow, t.Frames, rate)
	}
	if t.Hours < 0 || t.Hours > maxHours(FrameRate(rate)) ||
		t.Minutes < 0 || t.Minutes > 59 || t.Seconds < 0 || t.Seconds > 59 || t.Frames < 0 {
		return Footage{}, fmt.Errorf("%w: %s out of range", ErrFormat, t)
	}
	if int64(reel) > t.Hours {
		return Footage{}, fmt.Errorf("%w: reel %d > hours %d", ErrReelMismatch, reel, t.Hours)
	}
	hours := t.Hours - int64(reel)
	if hours < 0 {
		hours = 0
	}
	// the hour bound applies once reel hours are removed
	rest := int64(t.Minutes)*rate*60 + int64(t.Seconds)*rate + int64(t.Frames)
	if hours > (math.MaxInt64-rest)/(rate*3600) {
		return Footage{}, fmt.Errorf("%w: %s out of range for reel %d", ErrFormat, t, reel)
	}
	total := hours*rate*3600 + rest
	if total < 0 {
		return Footage{}, fmt.Errorf("%w: timecode is before reel start", ErrNegativeResult)
	}
	return FromFrames(total), nil
}
