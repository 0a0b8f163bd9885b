// Package advice fetches a short piece of music theory advice for the
// player after a session. Every failure degrades to Fallback.
package advice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Advice struct {
	Explanation string `json:"explanation"`
	Tip         string `json:"tip"`
}

var Fallback = Advice{
	Explanation: "The muses are silent at the moment. Focus on your rhythm.",
	Tip:         "Keep practicing.",
}

var ErrEmptyAdvice = errors.New("advice: empty response")

// Provider produces advice for a mode and a free-form description of the
// player's situation.
type Provider interface {
	Advise(ctx context.Context, mode, situation string) (Advice, error)
}

// Request is the body accepted by the advice endpoint.
type Request struct {
	Mode    string `json:"mode"`
	Context string `json:"context"`
}

// Context describes a finished session.
func Context(mode string, score, streak, level int) string {
	if level > 0 {
		return fmt.Sprintf("The student just finished a %v session with a score of %v, a best streak of %v and reached level %v.",
			readable(mode), score, streak, level)
	}
	return fmt.Sprintf("The student just finished a %v session with a score of %v and a best streak of %v.",
		readable(mode), score, streak)
}

func readable(mode string) string {
	return strings.ToLower(strings.ReplaceAll(mode, "_", " "))
}

func prompt(mode, situation string) string {
	return fmt.Sprintf(`You are a strict but encouraging Classical Music Maestro from the Baroque era.
The student is currently studying %v.
Context/State of the app: %v.

Provide a brief, elegant piece of music theory advice or a historical anecdote related to this topic.
Keep it under 50 words.
Use a sophisticated tone.
`, mode, situation)
}

// decode parses model output, which is sometimes wrapped in a markdown fence.
func decode(text string) (Advice, error) {
	clean := strings.TrimSpace(text)
	clean = strings.ReplaceAll(clean, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var a Advice
	if err := json.Unmarshal([]byte(clean), &a); nil != err {
		return Advice{}, fmt.Errorf("advice: decode: %w", err)
	}
	if a.Explanation == "" && a.Tip == "" {
		return Advice{}, ErrEmptyAdvice
	}
	return a, nil
}

// HTTPError is a non-200 response from an advice backend.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("advice: HTTP %d: %s", e.StatusCode, e.Body)
}

// IsRetryable is true for rate limiting and server errors.
func (e *HTTPError) IsRetryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
