package service

import (
	"github.com/cbsinteractive/footage-timecode/batch"
	"github.com/cbsinteractive/footage-timecode/footage"
)

// ConvertRequest is a single conversion. Numeric fields are kept as text
// so that validation can report exactly what was typed.
type ConvertRequest struct {
	Mode       string `json:"mode" mapstructure:"mode"`
	Feet       string `json:"feet,omitempty" mapstructure:"feet"`
	Frames     string `json:"frames,omitempty" mapstructure:"frames"`
	Timecode   string `json:"timecode,omitempty" mapstructure:"timecode"`
	Reel       string `json:"reel,omitempty" mapstructure:"reel"`
	FPS        string `json:"fps,omitempty" mapstructure:"fps"`
	Autoformat bool   `json:"autoformat,omitempty" mapstructure:"autoformat"`
}

// ConvertResponse is the result of a single conversion
type ConvertResponse struct {
	Mode        batch.Mode        `json:"mode"`
	FPS         footage.FrameRate `json:"fps"`
	Reel        int               `json:"reel"`
	Input       string            `json:"input"`
	Output      string            `json:"output"`
	ValueOnly   string            `json:"valueOnly"`
	RunningTime string            `json:"runningTime,omitempty"`
}

// BatchRequest converts every line of Input, or Lines when given.
type BatchRequest struct {
	Mode  string   `json:"mode"`
	FPS   string   `json:"fps,omitempty"`
	Reel  string   `json:"reel,omitempty"`
	Input string   `json:"input,omitempty"`
	Lines []string `json:"lines,omitempty"`
}
