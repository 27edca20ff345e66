package ebitenhost

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// scriptStep is one action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script sequences injected input and screenshots across ticks. Supported
// actions are click, hover, drag, wait and screenshot.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// ErrEmptyScript is returned for scripts without steps.
var ErrEmptyScript = errors.New("ebitenhost: script has no steps")

// ParseScript parses a JSON input script.
func ParseScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ebitenhost: parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "click", "hover", "drag", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("ebitenhost: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// LoadScript reads and parses the script at path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ebitenhost: load script: %w", err)
	}
	return ParseScript(data)
}

// Done reports whether every step has run and its input has drained.
func (r *Script) Done() bool { return r.done }

// step advances the script by one tick.
func (r *Script) step(h *Host) {
	if r.done {
		return
	}
	if len(h.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		h.Screenshot(st.Label)
	case "click":
		h.InjectClick(st.X, st.Y)
	case "hover":
		h.InjectHover(st.X, st.Y)
	case "drag":
		h.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(h.injectQueue) == 0 {
		r.done = true
	}
}
