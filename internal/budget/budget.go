package budget

import (
	"math"
	"strings"
)

// EstimateTokensFromChars converts a character count into an estimated token
// count using a conservative heuristic (~4 chars per token in English). The
// result is always at least 1 when chars > 0.
func EstimateTokensFromChars(charCount int) int {
	if charCount <= 0 {
		return 0
	}
	// Keep conservative to avoid overruns. Use ceiling for safety.
	return int(math.Ceil(float64(charCount) / 4.0))
}

// EstimateTokens returns the estimated token count of a string.
func EstimateTokens(s string) int {
	return EstimateTokensFromChars(len(s))
}

// charsPerToken is the inverse heuristic used when converting a token
// budget back into a character budget for excerpt assembly.
const charsPerToken = 4

// specialTokenReserve covers [CLS]/[SEP]-style framing plus tokenizer
// overhead so a full window never overruns the model's sequence limit.
const specialTokenReserve = 32

// minContextChars is the floor below which a context window stops being
// useful for span extraction; budgets never shrink past it.
const minContextChars = 256

// ModelMaxTokens returns the maximum input sequence length for a given
// extractive QA checkpoint. Unknown models fall back to the conservative
// 384 used by common question-answering pipelines.
func ModelMaxTokens(modelName string) int {
	name := strings.ToLower(strings.TrimSpace(modelName))
	if name == "" {
		return 384
	}
	if v, ok := knownModelMax[name]; ok {
		return v
	}
	// Long-context variants advertise it in the checkpoint name.
	if strings.Contains(name, "longformer") || strings.Contains(name, "long-context") {
		return 4096
	}
	return 384
}

// ContextChars derives the character budget available for the document
// excerpt once the question and special-token framing are reserved out of
// the model's sequence limit. The result never drops below minContextChars.
func ContextChars(modelName string, question string) int {
	maxTokens := ModelMaxTokens(modelName)
	remaining := maxTokens - specialTokenReserve - EstimateTokens(question)
	chars := remaining * charsPerToken
	if chars < minContextChars {
		return minContextChars
	}
	return chars
}

// knownModelMax contains sequence limits for common extractive QA
// checkpoints. These are best-effort and do not need to be exhaustive.
var knownModelMax = map[string]int{
	// SQuAD-tuned encoder checkpoints all cap at 512 positions.
	"deepset/roberta-base-squad2":                           512,
	"deepset/roberta-large-squad2":                          512,
	"deepset/minilm-uncased-squad2":                         512,
	"deepset/tinyroberta-squad2":                            512,
	"distilbert-base-cased-distilled-squad":                 512,
	"distilbert-base-uncased-distilled-squad":               512,
	"bert-large-uncased-whole-word-masking-finetuned-squad": 512,
}
