package rag

import "ragcompare/internal/llm"

// Test-only accessors for the external rag_test package, which cannot live
// in package rag because rag/mocks imports rag.

const (
	AnswerTemperature = answerTemperature
	NoResultsAnswer   = noResultsAnswer
	HydeMaxTokens     = hydeMaxTokens
)

func (e *Engine) History() []llm.Message { return e.history }

func (e *Engine) CorpusID() int64 { return e.corpusID }
