package parser

import "strings"

// Classify derives the styling tag from a message: its second and third word.
// Log lines look like "<Engine> <Severity> error: ...", so skipping the first
// word yields e.g. "Fatal error".
func Classify(msg string) string {
	words := splitWords(msg)
	if len(words) <= 1 {
		return ""
	}
	end := min(len(words), 3)
	return strings.Join(words[1:end], " ")
}

// splitWords follows PHP's str_word_count: a word is a run of ASCII letters,
// apostrophes and hyphens. A leading ' or - of the whole string and a
// trailing - of the whole string never count.
func splitWords(s string) []string {
	start, end := 0, len(s)
	if end > 0 && (s[0] == '\'' || s[0] == '-') {
		start++
	}
	if end > start && s[end-1] == '-' {
		end--
	}

	var words []string
	for i := start; i < end; {
		j := i
		for j < end && isWordByte(s[j]) {
			j++
		}
		if j > i {
			words = append(words, s[i:j])
			i = j
			continue
		}
		i++
	}
	return words
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '\'' || b == '-'
}
