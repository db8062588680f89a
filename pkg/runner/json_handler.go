package runner

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/onboarding"
)

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
// Each view is one line; commands are read one per line, either as an object
// ({"action":"activate","guide":"Vela"}), a JSON string or plain text.
type JSONHandler struct {
	Reader *bufio.Reader

	mu      sync.Mutex
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
}

type jsonEvent struct {
	Type    string           `json:"type"`
	View    *onboarding.View `json:"view,omitempty"`
	Message string           `json:"message,omitempty"`
}

func (h *JSONHandler) Output(ctx context.Context, view onboarding.View) error {
	return h.encode(jsonEvent{Type: "view", View: &view})
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.encode(jsonEvent{Type: "system", Message: msg})
}

func (h *JSONHandler) Input(ctx context.Context, step domain.Step) (Command, error) {
	text, err := h.Reader.ReadString('\n')
	text = strings.TrimSpace(text)
	if text == "" && err != nil {
		return Command{}, err
	}

	clean, serr := SanitizeInput(text)
	if serr != nil {
		return Command{}, serr
	}
	raw := []byte(clean)

	if bytes.HasPrefix(raw, []byte("{")) {
		var cmd Command
		if err := json.Unmarshal(raw, &cmd); err != nil {
			return Command{}, fmt.Errorf("failed to decode command: %w", err)
		}
		return cmd, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		clean = s
	}
	return ParseCommand(step, clean)
}

func (h *JSONHandler) encode(v any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Encoder.Encode(v)
}
