package excerpt

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// minSentenceChars drops fragments too short to carry an answer span.
const minSentenceChars = 10

// minTokenChars drops low-signal question tokens ("a", "is", "to", ...).
const minTokenChars = 3

// Build assembles a bounded excerpt of document most likely to contain the
// answer to question. Extractive QA models process a single length-limited
// context window, so when the document exceeds budget (in bytes) the
// sentences with the highest lexical overlap with the question are packed
// into the window instead of a blind prefix.
//
// Sentences are ranked by score only; ties keep original document order.
// Assembly is greedy and halts at the first sentence that would overflow
// the budget, rather than attempting best-fit packing.
//
// Build is total: when the document fits the budget it is returned
// unchanged, and when no sentence matches the question (or the budget is
// too small for any sentence) the result falls back to a prefix of the
// document. The result never exceeds budget bytes.
func Build(question, document string, budget int) string {
	if len(document) <= budget {
		return document
	}
	if budget <= 0 {
		return ""
	}

	tokens := queryTokens(question)
	sentences := splitSentences(document)

	type scored struct {
		text  string
		score int
	}
	ranked := make([]scored, 0, len(sentences))
	for _, s := range sentences {
		ranked = append(ranked, scored{text: s, score: score(s, tokens)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	var b strings.Builder
	for _, s := range ranked {
		if s.score == 0 {
			break
		}
		if b.Len()+len(s.text)+2 > budget {
			break
		}
		b.WriteString(s.text)
		b.WriteString(". ")
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return prefixBytes(document, budget)
	}
	return out
}

// splitSentences splits on runs of sentence-terminal punctuation and drops
// fragments shorter than minSentenceChars after trimming.
func splitSentences(document string) []string {
	parts := strings.FieldsFunc(document, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) < minSentenceChars {
			continue
		}
		out = append(out, p)
	}
	return out
}

// queryTokens lowercases the question, splits on whitespace, strips edge
// punctuation from each token, and drops tokens shorter than minTokenChars.
func queryTokens(question string) []string {
	fields := strings.Fields(strings.ToLower(question))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len(f) < minTokenChars {
			continue
		}
		out = append(out, f)
	}
	return out
}

// score sums case-insensitive occurrence counts of every question token in
// the sentence. Repeated occurrences count multiple times, a token repeated
// in the question counts once per repetition, and no stemming is applied.
func score(sentence string, tokens []string) int {
	lower := strings.ToLower(sentence)
	total := 0
	for _, tok := range tokens {
		total += strings.Count(lower, tok)
	}
	return total
}

// prefixBytes returns the longest prefix of s that fits max bytes without
// splitting a UTF-8 rune.
func prefixBytes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if max >= len(s) {
		return s
	}
	end := 0
	for i, r := range s {
		next := i + utf8.RuneLen(r)
		if next > max {
			break
		}
		end = next
	}
	return s[:end]
}
