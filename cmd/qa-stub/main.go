// qa-stub is a tiny extractive QA inference server for offline runs and
// integration tests. It mimics the wire shape of question-answering
// pipeline servers and "answers" by returning the document sentence with
// the highest lexical overlap with the question, so end-to-end runs are
// deterministic without a real model.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

type answerRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
	Model    string `json:"model"`
}

type answerResponse struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}

func main() {
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8090"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/answer", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		if r.Method != http.MethodPost {
			http.Error(w, "POST only", http.StatusMethodNotAllowed)
			return
		}
		var req answerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(answer(req.Question, req.Context))
	})

	log.Printf("qa-stub listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}

// answer picks the context sentence sharing the most question words. The
// score is the matched fraction of question words, which makes confidence
// tiers exercisable from tests.
func answer(question, context string) answerResponse {
	tokens := questionTokens(question)
	if len(tokens) == 0 || strings.TrimSpace(context) == "" {
		return answerResponse{}
	}

	best := ""
	bestHits := 0
	for _, sentence := range strings.FieldsFunc(context, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		lower := strings.ToLower(sentence)
		hits := 0
		for _, tok := range tokens {
			if strings.Contains(lower, tok) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = sentence, hits
		}
	}
	if bestHits == 0 {
		return answerResponse{}
	}

	start := strings.Index(context, best)
	return answerResponse{
		Answer: best,
		Score:  float64(bestHits) / float64(len(tokens)),
		Start:  start,
		End:    start + len(best),
	}
}

func questionTokens(question string) []string {
	fields := strings.Fields(strings.ToLower(question))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "?!.,:;\"'")
		if len(f) < 3 {
			continue
		}
		out = append(out, f)
	}
	return out
}
