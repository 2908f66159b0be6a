// Package batch converts many footage or timecode values at once. Each
// line is converted independently: a bad line is recorded in the report
// and never stops the lines after it.
package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cbsinteractive/footage-timecode/footage"
)

// Mode is the direction of a conversion
type Mode string

// FootageToTimecode and TimecodeToFootage are the supported modes
const (
	FootageToTimecode = Mode("ftc")
	TimecodeToFootage = Mode("ctf")
)

// DefaultReel is used when the batch form's reel field is left blank
const DefaultReel = 1

// Placeholder is the output of a line that failed to convert
const Placeholder = "—"

var ErrMode = errors.New("unknown conversion mode")

// ParseMode parses "ftc" or "ctf".
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case FootageToTimecode, TimecodeToFootage:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrMode, s)
}

// Title is the human readable mode name used in exports
func (m Mode) Title() string {
	switch m {
	case FootageToTimecode:
		return "Footage → Timecode"
	case TimecodeToFootage:
		return "Timecode → Footage"
	}
	return string(m)
}

// ParseReel parses the batch reel field. Blank means DefaultReel.
func ParseReel(text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return DefaultReel, nil
	}
	return footage.ParseReel(text)
}

// Line is the outcome of converting one input line
type Line struct {
	Number int    `json:"number"`
	Input  string `json:"input"`
	Output string `json:"output"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Kind   string `json:"kind,omitempty"`
}

// Status is the status column text for l
func (l Line) Status() string {
	if l.OK {
		return "✓ Success"
	}
	return "✗ Error: " + l.Error
}

// Status summarizes a whole report
type Status string

const (
	StatusSuccess = Status("success")
	StatusError   = Status("error")
	StatusMixed   = Status("mixed")
)

// Report holds every line of one batch run. A new report is built for
// each run; nothing is shared between runs.
type Report struct {
	ID      string            `json:"id,omitempty" hash:"ignore"`
	Mode    Mode              `json:"mode"`
	FPS     footage.FrameRate `json:"fps"`
	Reel    int               `json:"reel"`
	Lines   []Line            `json:"lines"`
	Success int               `json:"success"`
	Errors  int               `json:"errors"`
	Created time.Time         `json:"created" hash:"ignore"`
}

// Total is the number of non-blank lines converted
func (r *Report) Total() int {
	return r.Success + r.Errors
}

// Status is StatusSuccess when no line failed, StatusError when no line
// succeeded and StatusMixed otherwise.
func (r *Report) Status() Status {
	switch {
	case r.Errors == 0:
		return StatusSuccess
	case r.Success == 0:
		return StatusError
	}
	return StatusMixed
}

// Summary returns e.g. "Total: 3 | Success: 2 | Errors: 1"
func (r *Report) Summary() string {
	return fmt.Sprintf("Total: %d | Success: %d | Errors: %d", r.Total(), r.Success, r.Errors)
}

// MarshalJSON adds the derived status and summary to the report.
func (r Report) MarshalJSON() ([]byte, error) {
	type report Report
	return json.Marshal(struct {
		report
		Status  Status `json:"status"`
		Summary string `json:"summary"`
	}{report(r), r.Status(), r.Summary()})
}

// Run converts every non-blank line of text. Lines are numbered from 1
// after blanks are removed.
func Run(text string, mode Mode, fps footage.FrameRate, reel int) (*Report, error) {
	return RunLines(strings.Split(text, "\n"), mode, fps, reel)
}

// RunLines is Run for input that is already split into lines.
func RunLines(lines []string, mode Mode, fps footage.FrameRate, reel int) (*Report, error) {
	convert, err := converter(mode)
	if err != nil {
		return nil, err
	}
	if !fps.Valid() {
		return nil, fmt.Errorf("%w: %d", footage.ErrFrameRate, fps)
	}
	if fps == 0 {
		fps = footage.FPS24
	}
	if reel < 0 || reel > footage.MaxReel {
		return nil, fmt.Errorf("%w: reel %d out of range", footage.ErrInvalidInteger, reel)
	}

	r := &Report{Mode: mode, FPS: fps, Reel: reel}
	for _, in := range lines {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		l := Line{Number: len(r.Lines) + 1, Input: in}
		out, err := convert(in, fps, reel)
		if err != nil {
			l.Output = Placeholder
			l.Error = lineMessage(mode, err)
			l.Kind = footage.Kind(err)
			r.Errors++
		} else {
			l.Output = out
			l.OK = true
			r.Success++
		}
		r.Lines = append(r.Lines, l)
	}
	if len(r.Lines) == 0 {
		return nil, footage.ErrNoInput
	}
	return r, nil
}

// lineMessage is the short status text of a failed line. Kind keeps the
// machine readable reason.
func lineMessage(m Mode, err error) string {
	switch kind := footage.Kind(err); {
	case m == FootageToTimecode && (kind == "format" || kind == "invalid_integer"):
		return "Invalid footage format"
	case m == FootageToTimecode && kind == "frame_overflow":
		return "Frames > 15"
	case kind == "format":
		return "Invalid timecode format"
	case kind == "frame_overflow":
		return "Frame value exceeds FPS"
	case kind == "reel_mismatch":
		return "Reel > HH"
	case kind == "negative_result":
		return "Timecode before reel start"
	}
	return err.Error()
}

type convertFunc func(line string, fps footage.FrameRate, reel int) (string, error)

func converter(m Mode) (convertFunc, error) {
	switch m {
	case FootageToTimecode:
		return footageLine, nil
	case TimecodeToFootage:
		return timecodeLine, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrMode, m)
}

func footageLine(line string, fps footage.FrameRate, reel int) (string, error) {
	f, err := footage.ParseFootage(line)
	if err != nil {
		return "", err
	}
	return footage.ToTimecode(f, fps, reel).String(), nil
}

func timecodeLine(line string, fps footage.FrameRate, reel int) (string, error) {
	tc, err := footage.ParseTimecode(line, fps)
	if err != nil {
		return "", err
	}
	f, err := footage.ToFootage(tc, fps, reel)
	if err != nil {
		return "", err
	}
	return f.String(), nil
}
