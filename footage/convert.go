package footage

import (
	"fmt"
	"strings"
	"time"
)

// Conversion holds both sides of a single conversion
type Conversion struct {
	Footage  Footage
	Timecode Timecode
	FPS      FrameRate
	Reel     int
}

// RunningTime is the playback duration of the footage, reel excluded
func (c Conversion) RunningTime() (time.Duration, bool) {
	return c.Footage.RunningTime(c.FPS)
}

// ConvertFootage converts form fields to a timecode. Feet and frames may
// be blank, the reel may not.
func ConvertFootage(feetText, framesText, reelText string, fps FrameRate) (Conversion, error) {
	if !fps.Valid() {
		return Conversion{}, fmt.Errorf("%w: %d", ErrFrameRate, fps)
	}
	fps = fps.orDefault()
	reel, err := ParseReel(reelText)
	if err != nil {
		return Conversion{}, err
	}
	feet, err := ParseField("feet", feetText)
	if err != nil {
		return Conversion{}, err
	}
	frames, err := ParseField("frames", framesText)
	if err != nil {
		return Conversion{}, err
	}
	f, err := NewFootage(feet, frames)
	if err != nil {
		return Conversion{}, err
	}
	return Conversion{Footage: f, Timecode: ToTimecode(f, fps, reel), FPS: fps, Reel: reel}, nil
}

// ConvertTimecode converts a typed timecode to footage. Blank timecode
// text yields ErrNoInput.
func ConvertTimecode(timecodeText, reelText string, fps FrameRate) (Conversion, error) {
	if !fps.Valid() {
		return Conversion{}, fmt.Errorf("%w: %d", ErrFrameRate, fps)
	}
	fps = fps.orDefault()
	reel, err := ParseReel(reelText)
	if err != nil {
		return Conversion{}, err
	}
	if strings.TrimSpace(timecodeText) == "" {
		return Conversion{}, ErrNoInput
	}
	tc, err := ParseTimecode(timecodeText, fps)
	if err != nil {
		return Conversion{}, err
	}
	f, err := ToFootage(tc, fps, reel)
	if err != nil {
		return Conversion{}, err
	}
	return Conversion{Footage: f, Timecode: tc, FPS: fps, Reel: reel}, nil
}
