package node

import "unicode/utf16"

// The engine measures text offsets in UTF-16 code units because that is
// the coordinate space of editable host views. Strings are stored as
// UTF-8; the helpers below translate between the two.

// UTF16Len returns the length of s in UTF-16 code units.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// UTF16Slice returns the substring of s covering code units [i, j).
// Both bounds must already be validated against UTF16Len(s).
func UTF16Slice(s string, i, j int) string {
	units := utf16.Encode([]rune(s))
	return string(utf16.Decode(units[i:j]))
}

// UTF16Splice replaces code units [i, i+remove) of s with ins.
func UTF16Splice(s string, i, remove int, ins string) string {
	units := utf16.Encode([]rune(s))
	out := make([]uint16, 0, len(units)-remove+UTF16Len(ins))
	out = append(out, units[:i]...)
	out = append(out, utf16.Encode([]rune(ins))...)
	out = append(out, units[i+remove:]...)
	return string(utf16.Decode(out))
}
