// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"strings"
	"unicode/utf8"
)

// Default chunking parameters.
const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 20
)

// DefaultSeparators prefer paragraph breaks, then line breaks.
var DefaultSeparators = []string{"\n\n", "\n"}

// Splitter cuts text into chunks of at most ChunkSize characters. It splits
// on the first separator present in the text and merges the pieces back up
// to ChunkSize, carrying up to Overlap characters of trailing pieces into the
// next chunk. Pieces still too long are split recursively with the remaining
// separators and finally cut at fixed character offsets.
type Splitter struct {
	ChunkSize  int
	Overlap    int
	Separators []string
}

// DefaultSplitter returns the 1000/20 paragraph-then-line splitter.
func DefaultSplitter() Splitter {
	return Splitter{ChunkSize: DefaultChunkSize, Overlap: DefaultOverlap, Separators: DefaultSeparators}
}

// Split returns the non-empty chunks of text in order.
func (s Splitter) Split(text string) []string {
	if s.ChunkSize <= 0 {
		s.ChunkSize = DefaultChunkSize
	}
	if s.Overlap < 0 || s.Overlap >= s.ChunkSize {
		s.Overlap = 0
	}

	var out []string
	for _, c := range s.split(text, s.Separators) {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func (s Splitter) split(text string, seps []string) []string {
	sep, rest, found := "", []string(nil), false
	for i, c := range seps {
		if c != "" && strings.Contains(text, c) {
			sep, rest, found = c, seps[i+1:], true
			break
		}
	}
	if !found {
		if runeLen(text) <= s.ChunkSize {
			return []string{text}
		}
		return s.hardCut(text)
	}

	var out, fitting []string
	for _, piece := range strings.Split(text, sep) {
		if strings.TrimSpace(piece) == "" {
			continue
		}
		if runeLen(piece) <= s.ChunkSize {
			fitting = append(fitting, piece)
			continue
		}
		if len(fitting) > 0 {
			out = append(out, s.merge(fitting, sep)...)
			fitting = nil
		}
		out = append(out, s.split(piece, rest)...)
	}
	if len(fitting) > 0 {
		out = append(out, s.merge(fitting, sep)...)
	}
	return out
}

// merge joins pieces with sep into chunks no longer than ChunkSize.
func (s Splitter) merge(pieces []string, sep string) []string {
	sepLen := runeLen(sep)
	var chunks, window []string
	total := 0

	joinedLen := func(extra int) int {
		if len(window) > 0 {
			return total + sepLen + extra
		}
		return extra
	}

	for _, p := range pieces {
		n := runeLen(p)
		if len(window) > 0 && joinedLen(n) > s.ChunkSize {
			chunks = append(chunks, strings.Join(window, sep))
			for len(window) > 0 && (total > s.Overlap || joinedLen(n) > s.ChunkSize) {
				total -= runeLen(window[0])
				if len(window) > 1 {
					total -= sepLen
				}
				window = window[1:]
			}
		}
		total = joinedLen(n)
		window = append(window, p)
	}
	if len(window) > 0 {
		chunks = append(chunks, strings.Join(window, sep))
	}
	return chunks
}

// hardCut slices text into ChunkSize windows that overlap by Overlap characters.
func (s Splitter) hardCut(text string) []string {
	runes := []rune(text)
	step := s.ChunkSize - s.Overlap
	var out []string
	for start := 0; start < len(runes); start += step {
		end := min(start+s.ChunkSize, len(runes))
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
