package chat

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Estimator counts tokens in outgoing text so the UI can show a prompt-size
// estimate before sending. Counts are approximate for non-OpenAI models.
type Estimator struct {
	tokenizer *tiktoken.Tiktoken
}

// NewEstimator creates an estimator for the given model, falling back to
// cl100k_base when the model has no registered encoding.
func NewEstimator(model string) (*Estimator, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("get tokenizer: %w", err)
		}
	}
	return &Estimator{tokenizer: enc}, nil
}

// Count returns the token count for a string.
func (e *Estimator) Count(text string) int {
	return len(e.tokenizer.Encode(text, nil, nil))
}
