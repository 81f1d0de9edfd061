package utils

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/rs/zerolog/log"
)

var (
	tokenizer     *tiktoken.Tiktoken
	tokenizerErr  error
	tokenizerOnce sync.Once
)

func initTokenizer() error {
	tokenizerOnce.Do(func() {
		tokenizer, tokenizerErr = tiktoken.GetEncoding("cl100k_base")
		if tokenizerErr != nil {
			log.Error().Err(tokenizerErr).Msg("failed to init tokenizer")
		}
	})
	return tokenizerErr
}

type Tokenizer struct {
	tokenizer *tiktoken.Tiktoken
}

func NewTokenizer() (Tokenizer, error) {
	if err := initTokenizer(); err != nil {
		return Tokenizer{}, err
	}

	return Tokenizer{tokenizer: tokenizer}, nil
}

func (t Tokenizer) CountTokens(s string) int {
	return len(t.tokenizer.Encode(s, nil, nil))
}
