package input

import (
	"unicode/utf8"
)

// ParseKeys converts a chunk of raw terminal bytes into key codes understood
// by the bindings. Handles CSI and SS3 arrow sequences, tab, escape and Ctrl+C.
// Unknown escape sequences are discarded.
func ParseKeys(data []byte) []string {
	var codes []string
	i := 0
	for i < len(data) {
		b := data[i]

		if b == 0x1b {
			// Both CSI sequences (ESC [) and SS3 sequences (ESC O)
			if i+2 < len(data) && (data[i+1] == '[' || data[i+1] == 'O') {
				switch data[i+2] {
				case 'A':
					codes = append(codes, "arrow_up")
				case 'B':
					codes = append(codes, "arrow_down")
				case 'C':
					codes = append(codes, "arrow_right")
				case 'D':
					codes = append(codes, "arrow_left")
				}
				i += 3
				continue
			}
			if i+1 == len(data) {
				codes = append(codes, "escape")
			}
			i++
			continue
		}

		switch b {
		case 3:
			codes = append(codes, "ctrl_c")
			i++
			continue
		case '\t':
			codes = append(codes, "tab")
			i++
			continue
		case '\r', '\n':
			codes = append(codes, "enter")
			i++
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r >= 32 && r < 127 {
			codes = append(codes, string(r))
		}
		i += size
	}
	return codes
}

// Intents maps a chunk of raw terminal bytes straight to intents, dropping
// keys without a binding.
func Intents(device Device, data []byte) []Intent {
	var out []Intent
	for _, code := range ParseKeys(data) {
		intent := MapToIntent(DebouncedInput{Device: device, Code: code})
		if intent.Action != ActionNone {
			out = append(out, intent)
		}
	}
	return out
}
