package gemini

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/flashdeck/internal/generation"
	"google.golang.org/genai"
)

// Pointers distinguish a missing key from an empty value: missing keys are
// malformed, empty strings are passed through.
type wireResult struct {
	Cards *[]wireCard `json:"cards"`
}

type wireCard struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

// blockingFinishReasons end a candidate because of content policy. Repeating
// the same request cannot succeed.
var blockingFinishReasons = map[genai.FinishReason]bool{
	genai.FinishReasonSafety:            true,
	genai.FinishReasonProhibitedContent: true,
	genai.FinishReasonBlocklist:         true,
	genai.FinishReasonSPII:              true,
	genai.FinishReasonImageSafety:       true,
}

// responseText concatenates the text parts of the first candidate after
// checking for safety blocks.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrMalformedOutput)
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, fb.BlockReason)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates in response", generation.ErrMalformedOutput)
	}

	candidate := resp.Candidates[0]
	if blockingFinishReasons[candidate.FinishReason] {
		return "", fmt.Errorf("%w: response blocked (%s)", generation.ErrContentBlocked, candidate.FinishReason)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrMalformedOutput)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

// decodeResult parses text as exactly one JSON object of the expected shape.
// Unknown keys, missing keys, wrong types and trailing data are all rejected.
func decodeResult(text string) (*generation.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty response text", generation.ErrMalformedOutput)
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()

	var wire wireResult
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrMalformedOutput, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", generation.ErrMalformedOutput)
	}
	if wire.Cards == nil {
		return nil, fmt.Errorf("%w: missing \"cards\" array", generation.ErrMalformedOutput)
	}

	cards := make([]generation.Card, 0, len(*wire.Cards))
	for i, c := range *wire.Cards {
		if c.Question == nil || c.Answer == nil {
			return nil, fmt.Errorf("%w: card %d is missing question or answer", generation.ErrMalformedOutput, i)
		}
		cards = append(cards, generation.Card{Question: *c.Question, Answer: *c.Answer})
	}

	return &generation.Result{Cards: cards}, nil
}

// isJSONObject reports whether text starts like a JSON object. Used only to
// make log output more useful when decoding fails.
func isJSONObject(text string) bool {
	return bytes.HasPrefix(bytes.TrimSpace([]byte(text)), []byte("{"))
}
