package batch

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/cbsinteractive/footage-timecode/footage"
)

func TestWriteText(t *testing.T) {
	r, err := Run("100+05\n0+8", FootageToTimecode, footage.FPS24, 1)
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := WriteText(&b, r); err != nil {
		t.Fatal(err)
	}
	want := "Batch Conversion Results\n" +
		"Mode: Footage → Timecode\n" +
		"FPS: 23.98/24\n" +
		"Reel: 1\n" +
		"\n" +
		"#  \tInput     \tOutput         \tStatus     \n" +
		"1  \t100+05    \t01:01:06:21    \t✓ Success  \n" +
		"2  \t0+8       \t01:00:00:08    \t✓ Success  \n"
	if have := b.String(); have != want {
		t.Fatalf("have:\n%q\nwant:\n%q", have, want)
	}
}

func TestWriteTextColumnWidths(t *testing.T) {
	r, err := Run("00:00:10:00\n00:00:00:99\n"+strings.Repeat("\n", 9)+"01:00:00:00", TimecodeToFootage, footage.FPS25, 0)
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := WriteText(&b, r); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	table := lines[5:]
	if len(table) != 4 {
		t.Fatalf("have %d table rows, want 4", len(table))
	}
	errStatus := r.Lines[1].Status()
	want := [4]int{1 + 2, len("00:00:10:00") + 4, len("5625+00") + 4, utf8.RuneCountInString(errStatus) + 2}
	for _, row := range table {
		cells := strings.Split(row, "\t")
		if len(cells) != 4 {
			t.Fatalf("row %q: have %d cells", row, len(cells))
		}
		for i, c := range cells {
			if n := utf8.RuneCountInString(c); n != want[i] {
				t.Errorf("row %q cell %d: have width %d, want %d", row, i, n, want[i])
			}
		}
	}
	if !strings.Contains(b.String(), "FPS: 25\n") || !strings.Contains(b.String(), "Mode: Timecode → Footage\n") {
		t.Fatalf("missing settings header:\n%s", b.String())
	}
}

func TestWriteTSV(t *testing.T) {
	r, err := Run("100+05\n\nbad", FootageToTimecode, footage.FPS24, 1)
	if err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	if err := WriteTSV(&b, r); err != nil {
		t.Fatal(err)
	}
	want := "#\tInput\tOutput\tStatus\n" +
		"1\t100+05\t01:01:06:21\t✓ Success\n" +
		"2\tbad\t—\t✗ Error: Invalid footage format\n"
	if have := b.String(); have != want {
		t.Fatalf("have:\n%q\nwant:\n%q", have, want)
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, time.March, 7, 9, 5, 59, 0, time.UTC)
	if have, want := Filename(at), "batch-conversion_2024-03-07_09-05.txt"; have != want {
		t.Fatalf("have %q, want %q", have, want)
	}
}

func TestFingerprint(t *testing.T) {
	a, _ := Run("100+05\n250+12", FootageToTimecode, footage.FPS24, 1)
	b, _ := Run("100+05\n250+12", FootageToTimecode, footage.FPS24, 1)
	c, _ := Run("100+05\n250+13", FootageToTimecode, footage.FPS24, 1)
	b.ID, b.Created = "other", time.Now()

	fa, err := Fingerprint(a)
	if err != nil {
		t.Fatal(err)
	}
	fb, _ := Fingerprint(b)
	fc, _ := Fingerprint(c)
	if fa != fb {
		t.Errorf("id and creation time changed the fingerprint: %s != %s", fa, fb)
	}
	if fa == fc {
		t.Errorf("different lines share fingerprint %s", fa)
	}
	if len(fa) != 16 {
		t.Errorf("fingerprint %q is not 16 hex digits", fa)
	}
}
