package footage

import "strings"

// ValueOnly drops the ':' and '+' separators, for pasting into systems
// that want bare digits.
func ValueOnly(s string) string {
	return strings.NewReplacer(":", "", "+", "").Replace(s)
}

// FormatDigits masks raw keyboard input as a timecode: non-digits are
// dropped, at most eight digits are kept and a colon is placed after
// every pair.
//
// 	FormatDigits("1002501")  == "10:02:50:1"
// 	FormatDigits("01:00:25") == "01:00:25"
func FormatDigits(s string) string {
	var d []byte
	for i := 0; i < len(s) && len(d) < 8; i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			d = append(d, c)
		}
	}
	var b strings.Builder
	for i := 0; i < len(d); i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		j := i + 2
		if j > len(d) {
			j = len(d)
		}
		b.Write(d[i:j])
	}
	return b.String()
}
