// Package morsetable provides the canonical bidirectional mapping between
// characters and Morse dot/dash strings.
package morsetable

// charToCode maps an uppercase letter, digit, or supported punctuation mark
// to its Morse symbol string. Grounded on the ITU table in
// audio_extensions/morse/morse_table.go, restricted to the punctuation set
// spec.md §3 names (". , ? / - ( )").
var charToCode = map[rune]string{
	'A': ".-",
	'B': "-...",
	'C': "-.-.",
	'D': "-..",
	'E': ".",
	'F': "..-.",
	'G': "--.",
	'H': "....",
	'I': "..",
	'J': ".---",
	'K': "-.-",
	'L': ".-..",
	'M': "--",
	'N': "-.",
	'O': "---",
	'P': ".--.",
	'Q': "--.-",
	'R': ".-.",
	'S': "...",
	'T': "-",
	'U': "..-",
	'V': "...-",
	'W': ".--",
	'X': "-..-",
	'Y': "-.--",
	'Z': "--..",

	'0': "-----",
	'1': ".----",
	'2': "..---",
	'3': "...--",
	'4': "....-",
	'5': ".....",
	'6': "-....",
	'7': "--...",
	'8': "---..",
	'9': "----.",

	'.': ".-.-.-",
	',': "--..--",
	'?': "..--..",
	'/': "-..-.",
	'-': "-....-",
	'(': "-.--.",
	')': "-.--.-",
}

// codeToChar is the inverse of charToCode, built once at init.
var codeToChar map[string]rune

func init() {
	codeToChar = make(map[string]rune, len(charToCode))
	for ch, code := range charToCode {
		codeToChar[code] = ch
	}
}

// Encode returns the Morse symbol string for an uppercase character and
// whether the character is in the table.
func Encode(ch rune) (code string, ok bool) {
	code, ok = charToCode[ch]
	return code, ok
}

// Decode returns the character for a Morse symbol string and whether the
// symbol string is mapped. Unmapped symbols (including the empty string)
// return ok=false; callers must drop them silently per spec.md §4.E/§4.F.
func Decode(code string) (ch rune, ok bool) {
	ch, ok = codeToChar[code]
	return ch, ok
}
