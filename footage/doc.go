// Package footage converts between 35mm feet+frames footage and
// HH:MM:SS:FF timecode. The two primary types in this package are:
//
// 	type Footage struct{ Feet int64; Frames int }
//
// 	and
//
// 	type Timecode struct{ Hours int64; Minutes, Seconds, Frames int }
//
// One foot of film holds 16 frames regardless of frame rate, so Footage
// only becomes time once a FrameRate is chosen. A reel offset shifts the
// hour field, since each reel's timecode track starts at the hour
// matching its reel number.
//
// Every function in this package is pure and safe to call concurrently.
package footage
