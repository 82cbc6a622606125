package apperrors

import (
	"errors"

	"github.com/sashabaranov/go-openai"
)

// FromOpenAI classifies an error returned by go-openai. API and request
// errors carry the upstream status code; anything else is a transport
// failure and counts as unavailable.
func FromOpenAI(op string, err error, badRequest Kind) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return Wrap(FromStatus(apiErr.HTTPStatusCode, badRequest), op, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return Wrap(FromStatus(reqErr.HTTPStatusCode, badRequest), op, err)
	}
	return Wrap(KindUnavailable, op, err)
}
