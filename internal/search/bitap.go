package search

import (
	"math"
)

// matchOptions tune a single approximate match.
type matchOptions struct {
	location           int
	distance           int
	threshold          float64
	minMatchCharLength int
	ignoreLocation     bool
}

// chunk is one bitap pattern of at most MaxPatternLength runes together with
// its character bitmasks.
type chunk struct {
	pattern  []rune
	alphabet map[rune]uint64
	offset   int
}

func newChunk(pattern []rune, offset int) chunk {
	alphabet := make(map[rune]uint64, len(pattern))
	n := len(pattern)
	for i, r := range pattern {
		alphabet[r] |= 1 << uint(n-i-1)
	}
	return chunk{pattern: pattern, alphabet: alphabet, offset: offset}
}

// matcher holds a lowercased query split into bitap chunks.
type matcher struct {
	pattern []rune
	chunks  []chunk
	opts    matchOptions
}

func newMatcher(pattern []rune, maxLen int, opts matchOptions) *matcher {
	m := &matcher{pattern: pattern, opts: opts}
	n := len(pattern)
	if n <= maxLen {
		m.chunks = []chunk{newChunk(pattern, 0)}
		return m
	}
	remainder := n % maxLen
	end := n - remainder
	for i := 0; i < end; i += maxLen {
		m.chunks = append(m.chunks, newChunk(pattern[i:i+maxLen], i))
	}
	if remainder > 0 {
		start := n - maxLen
		m.chunks = append(m.chunks, newChunk(pattern[start:], start))
	}
	return m
}

// match scores text against the query. The score is 0 for identical text and
// grows towards 1 as the match gets weaker.
func (m *matcher) match(text []rune) (bool, float64) {
	if runesEqual(text, m.pattern) {
		return true, 0
	}

	matched := false
	total := 0.0
	for _, c := range m.chunks {
		opts := m.opts
		opts.location += c.offset
		ok, score := bitap(text, c, opts)
		if ok {
			matched = true
		}
		total += score
	}
	if !matched {
		return false, 1
	}
	return true, total / float64(len(m.chunks))
}

// scoreAt combines the error ratio with how far a match sits from the
// expected location.
func scoreAt(errors, patternLen, current, expected int, opts matchOptions) float64 {
	accuracy := float64(errors) / float64(patternLen)
	if opts.ignoreLocation {
		return accuracy
	}
	proximity := current - expected
	if proximity < 0 {
		proximity = -proximity
	}
	if opts.distance == 0 {
		if proximity != 0 {
			return 1
		}
		return accuracy
	}
	return accuracy + float64(proximity)/float64(opts.distance)
}

// bitap runs the shift-or approximate matcher with a growing error budget,
// keeping the best match whose score stays within the threshold.
func bitap(text []rune, c chunk, opts matchOptions) (bool, float64) {
	pattern := c.pattern
	patternLen := len(pattern)
	textLen := len(text)
	expected := max(0, min(opts.location, textLen))
	threshold := opts.threshold

	computeMatches := opts.minMatchCharLength > 1
	var matchMask []bool
	if computeMatches {
		matchMask = make([]bool, textLen)
	}

	// Exact occurrences tighten the threshold before the fuzzy pass.
	for from := expected; ; {
		idx := indexRunes(text, pattern, from)
		if idx < 0 {
			break
		}
		threshold = math.Min(threshold, scoreAt(0, patternLen, idx, expected, opts))
		from = idx + patternLen
		if computeMatches {
			for i := 0; i < patternLen; i++ {
				matchMask[idx+i] = true
			}
		}
	}

	bestLocation := -1
	bestScore := 1.0
	var lastBits []uint64
	binMax := patternLen + textLen
	mask := uint64(1) << uint(patternLen-1)

	for errs := 0; errs < patternLen; errs++ {
		// Binary search how far from the expected location a match with this
		// many errors could still score within the threshold.
		binMin, binMid := 0, binMax
		for binMin < binMid {
			if scoreAt(errs, patternLen, expected+binMid, expected, opts) <= threshold {
				binMin = binMid
			} else {
				binMax = binMid
			}
			binMid = (binMax-binMin)/2 + binMin
		}
		binMax = binMid

		start := max(1, expected-binMid+1)
		finish := min(expected+binMid, textLen) + patternLen

		bits := make([]uint64, finish+2)
		bits[finish+1] = (1 << uint(errs)) - 1

		for j := finish; j >= start; j-- {
			loc := j - 1
			var charMatch uint64
			if loc < textLen {
				charMatch = c.alphabet[text[loc]]
				if computeMatches {
					matchMask[loc] = charMatch != 0
				}
			}

			bits[j] = ((bits[j+1] << 1) | 1) & charMatch
			if errs > 0 {
				bits[j] |= ((lastBits[j+1] | lastBits[j]) << 1) | 1 | lastBits[j+1]
			}

			if bits[j]&mask != 0 {
				score := scoreAt(errs, patternLen, loc, expected, opts)
				if score <= threshold {
					threshold = score
					bestLocation = loc
					bestScore = score
					if bestLocation <= expected {
						break
					}
					start = max(1, 2*expected-bestLocation)
				}
			}
		}

		if scoreAt(errs+1, patternLen, expected, expected, opts) > threshold {
			break
		}
		lastBits = bits
	}

	if bestLocation < 0 {
		return false, 1
	}
	if computeMatches && !hasRun(matchMask, opts.minMatchCharLength) {
		return false, 1
	}
	return true, math.Max(0.001, bestScore)
}

// hasRun reports whether mask holds at least n consecutive true values.
func hasRun(mask []bool, n int) bool {
	run := 0
	for _, v := range mask {
		if !v {
			run = 0
			continue
		}
		run++
		if run >= n {
			return true
		}
	}
	return false
}

func indexRunes(text, pattern []rune, from int) int {
	n := len(pattern)
	for i := max(from, 0); i+n <= len(text); i++ {
		if runesEqual(text[i:i+n], pattern) {
			return i
		}
	}
	return -1
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
