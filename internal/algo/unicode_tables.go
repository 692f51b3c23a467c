package algo

// diacritics folds a small set of Latin-1 / Latin Extended-A diacritic
// codepoints to their plain ASCII base letter. This is deliberately not a
// full Unicode Normalization Form implementation (spec Non-goal) — just
// enough of a table that "resume" matches "résumé" under Config.Normalize.
var diacritics = map[rune]rune{
	'À': 'A', 'Á': 'A', 'Â': 'A', 'Ã': 'A', 'Ä': 'A', 'Å': 'A',
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a',
	'Ç': 'C', 'ç': 'c',
	'È': 'E', 'É': 'E', 'Ê': 'E', 'Ë': 'E',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'Ì': 'I', 'Í': 'I', 'Î': 'I', 'Ï': 'I',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'Ñ': 'N', 'ñ': 'n',
	'Ò': 'O', 'Ó': 'O', 'Ô': 'O', 'Õ': 'O', 'Ö': 'O',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'Ù': 'U', 'Ú': 'U', 'Û': 'U', 'Ü': 'U',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u',
	'Ý': 'Y', 'ý': 'y', 'ÿ': 'y',
	'Š': 'S', 'š': 's',
	'Ž': 'Z', 'ž': 'z',
	'Æ': 'A', 'æ': 'a',
	'Ø': 'O', 'ø': 'o',
}

// normalizeRune folds a diacritic to its ASCII base, leaving every other
// codepoint (including ones already ASCII) untouched.
func normalizeRune(r rune) rune {
	if r < 0x00C0 || r > 0x017E {
		return r
	}
	if n, ok := diacritics[r]; ok {
		return n
	}
	return r
}

// NormalizeRunes folds diacritics in place across a slice, used when a
// pattern atom needle itself needs normalizing ahead of matching.
func NormalizeRunes(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = normalizeRune(r)
	}
	return out
}
