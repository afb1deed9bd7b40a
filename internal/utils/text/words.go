// Package text provides utilities for text processing and analysis.
// Word handling here is deliberately naive: a word is any maximal run of
// non-whitespace characters, with no locale or punctuation awareness.
package text

import "strings"

// CountRunes counts the number of Unicode characters (runes) in the given text.
//
// Examples:
//
//	CountRunes("hello")     // returns 5
//	CountRunes("hello世界")   // returns 7
//	CountRunes("")          // returns 0
func CountRunes(text string) int {
	return len([]rune(text))
}

// Words splits text into whitespace-delimited tokens.
func Words(text string) []string {
	return strings.Fields(text)
}

// CountWords returns the number of whitespace-delimited tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Truncate keeps at most maxWords words of text.
//
// When the word count exceeds maxWords the first maxWords words are rejoined with
// single spaces and truncated is true. Otherwise text is returned unchanged.
// A non-positive maxWords disables truncation.
//
// Example:
//
//	out, cut := Truncate("a  b\nc d", 3) // "a b c", true
func Truncate(text string, maxWords int) (out string, truncated bool) {
	if maxWords <= 0 {
		return text, false
	}
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text, false
	}
	return strings.Join(words[:maxWords], " "), true
}

// SplitChunks partitions the words of text into contiguous groups of size words.
//
// Each group is rejoined with single spaces. The last group may be shorter.
// Text without words yields no chunks. Chunks never overlap, and joining them with
// a space reproduces the original word sequence.
//
// Example:
//
//	SplitChunks("a b c d e", 2) // ["a b", "c d", "e"]
func SplitChunks(text string, size int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if size <= 0 {
		size = len(words)
	}

	chunks := make([]string, 0, (len(words)+size-1)/size)
	for start := 0; start < len(words); start += size {
		end := min(start+size, len(words))
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
