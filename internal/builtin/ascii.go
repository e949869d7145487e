package builtin

import (
	"unicode"
	"unicode/utf8"
)

// Ascii transliterates common accented Latin letters to their plain
// ASCII equivalent, turns any other Unicode whitespace into a plain
// space, and drops every other non-ASCII rune, record by record. It
// makes no attempt at full Unicode normalization -- this
// command exists to exercise the registry/builtin interface end to end,
// not as a general-purpose transliterator.
func Ascii(ctx Context) error {
	return mapRecords(ctx, func(record []byte) []byte {
		out := make([]byte, 0, len(record))
		for len(record) > 0 {
			r, size := utf8.DecodeRune(record)
			record = record[size:]
			if r < utf8.RuneSelf {
				out = append(out, byte(r))
				continue
			}
			if ascii, ok := asciiFold[r]; ok {
				out = append(out, ascii...)
				continue
			}
			if unicode.IsSpace(r) {
				out = append(out, ' ')
			}
		}
		return out
	})
}

var asciiFold = map[rune]string{
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "a", 'å': "a",
	'À': "A", 'Á': "A", 'Â': "A", 'Ã': "A", 'Ä': "A", 'Å': "A",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'È': "E", 'É': "E", 'Ê': "E", 'Ë': "E",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'Ì': "I", 'Í': "I", 'Î': "I", 'Ï': "I",
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o",
	'Ò': "O", 'Ó': "O", 'Ô': "O", 'Õ': "O", 'Ö': "O",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u",
	'Ù': "U", 'Ú': "U", 'Û': "U", 'Ü': "U",
	'ñ': "n", 'Ñ': "N",
	'ç': "c", 'Ç': "C",
	'ý': "y", 'ÿ': "y", 'Ý': "Y",
}
