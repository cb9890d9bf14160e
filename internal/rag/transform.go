package rag

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"regexp"
	"strings"

	"ragcompare/internal/contextutil"
	"ragcompare/internal/llm"
	"ragcompare/internal/vectorstore"
)

const (
	// maxSubQuestions bounds the sub-questions searched by multi-query stacks.
	maxSubQuestions = 4

	transformTemperature = 0.2
	hydeMaxTokens        = 256
	decomposeMaxTokens   = 200
)

const hydePrompt = "Please write a passage to answer the question.\n" +
	"Try to include as many key details as possible.\n\n" +
	"Question: %s\n\nPassage:"

const decomposePrompt = "Break the question below into at most %d simpler, self-contained questions " +
	"that together answer it. Write one question per line, without numbering or commentary. " +
	"If the question is already simple, repeat it unchanged.\n\nQuestion: %s"

// queryVectors embeds the texts searched for message. HyDE stacks search with
// the mean of the hypothetical answer and the message; multi-query stacks
// search with the message and each sub-question.
func (e *Engine) queryVectors(ctx context.Context, message string) ([][]float32, error) {
	logger := contextutil.LoggerFromContext(ctx)

	texts := []string{message}
	switch {
	case e.stack.HyDE:
		passage, err := e.hypotheticalAnswer(ctx, message)
		if err != nil {
			return nil, err
		}
		texts = []string{passage, message}
	case e.stack.MultiQuery:
		subs, err := e.subQuestions(ctx, message)
		if err != nil {
			return nil, err
		}
		texts = append(texts, subs...)
	}

	embeddings, err := e.deps.Embedder.EmbedTexts(ctx, texts)
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed message", "error", err)
		return nil, fmt.Errorf("failed to embed message: %w", err)
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("got %d embeddings for %d queries", len(embeddings), len(texts))
	}

	if e.stack.HyDE {
		return [][]float32{meanVector(embeddings)}, nil
	}
	return embeddings, nil
}

// hypotheticalAnswer asks the LLM for a passage that would answer message.
func (e *Engine) hypotheticalAnswer(ctx context.Context, message string) (string, error) {
	text, err := e.deps.Chat.ChatWithMessages(ctx, []llm.Message{
		{Role: "user", Content: fmt.Sprintf(hydePrompt, message)},
	}, llm.ChatParams{MaxTokens: hydeMaxTokens, Temperature: transformTemperature})
	if err != nil {
		return "", fmt.Errorf("failed to write hypothetical answer: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return message, nil
	}
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "hypothetical answer", "stack", e.stack.Name, "length", len(text))
	return text, nil
}

// subQuestions asks the LLM to decompose message.
func (e *Engine) subQuestions(ctx context.Context, message string) ([]string, error) {
	text, err := e.deps.Chat.ChatWithMessages(ctx, []llm.Message{
		{Role: "user", Content: fmt.Sprintf(decomposePrompt, maxSubQuestions, message)},
	}, llm.ChatParams{MaxTokens: decomposeMaxTokens, Temperature: transformTemperature})
	if err != nil {
		return nil, fmt.Errorf("failed to decompose question: %w", err)
	}
	subs := parseSubQuestions(text, message, maxSubQuestions)
	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "question decomposed", "stack", e.stack.Name, "sub_questions", len(subs))
	return subs, nil
}

var listMarker = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)

// parseSubQuestions takes one question per line, strips list markers and drops
// blanks and repeats of the original message.
func parseSubQuestions(text, message string, n int) []string {
	seen := map[string]bool{strings.ToLower(strings.TrimSpace(message)): true}
	var subs []string
	for line := range strings.Lines(text) {
		q := strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		key := strings.ToLower(q)
		if q == "" || seen[key] {
			continue
		}
		seen[key] = true
		subs = append(subs, q)
		if len(subs) == n {
			break
		}
	}
	return subs
}

// meanVector averages equally sized vectors.
func meanVector(vecs [][]float32) []float32 {
	mean := make([]float32, len(vecs[0]))
	for _, v := range vecs {
		for i := range mean {
			mean[i] += v[i]
		}
	}
	for i := range mean {
		mean[i] /= float32(len(vecs))
	}
	return mean
}

// mergeResults unions several result lists, keeping each point once with its
// best score, and returns the top k by score.
func mergeResults(lists [][]vectorstore.SearchResult, k int) []vectorstore.SearchResult {
	if len(lists) == 1 {
		return lists[0]
	}

	best := make(map[string]vectorstore.SearchResult)
	for _, list := range lists {
		for _, r := range list {
			if prev, ok := best[r.PointID]; !ok || r.Score > prev.Score {
				best[r.PointID] = r
			}
		}
	}

	merged := make([]vectorstore.SearchResult, 0, len(best))
	for _, r := range best {
		merged = append(merged, r)
	}
	slices.SortFunc(merged, func(a, b vectorstore.SearchResult) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return strings.Compare(a.PointID, b.PointID)
	})
	if len(merged) > k {
		merged = merged[:k]
	}
	return merged
}
