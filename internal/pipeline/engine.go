package pipeline

import (
	"fmt"
	"strings"

	"unit-translator/internal/dictionary"
	"unit-translator/internal/glossary"
	"unit-translator/internal/rewriter"
	"unit-translator/internal/textutil"
)

// Mode selects the translation direction for a run.
type Mode string

const (
	ModeForward Mode = "forward"
	ModeReverse Mode = "reverse"
	// ModeAuto picks reverse for files containing Han characters, forward otherwise.
	ModeAuto Mode = "auto"
)

// ParseMode validates a direction flag value.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeForward, ModeReverse, ModeAuto:
		return m, nil
	case "":
		return ModeForward, nil
	default:
		if d, err := dictionary.ParseDirection(s); err == nil {
			return Mode(d.String()), nil
		}
		return "", fmt.Errorf("unknown direction %q (want forward, reverse or auto)", s)
	}
}

// Engine holds both directional rewriters built once from the glossary. It is
// read-only after construction.
type Engine struct {
	forward *rewriter.Rewriter
	reverse *rewriter.Rewriter
}

// NewEngine builds forward and reverse dictionaries from the same entries.
func NewEngine(entries []glossary.Entry) *Engine {
	return &Engine{
		forward: rewriter.New(dictionary.Build(entries, dictionary.Forward)),
		reverse: rewriter.New(dictionary.Build(entries, dictionary.Reverse)),
	}
}

// Rewriter returns the rewriter for dir.
func (e *Engine) Rewriter(dir dictionary.Direction) *rewriter.Rewriter {
	if dir == dictionary.Reverse {
		return e.reverse
	}
	return e.forward
}

// Choose returns the rewriter to apply to text under mode.
func (e *Engine) Choose(mode Mode, text string) *rewriter.Rewriter {
	switch mode {
	case ModeReverse:
		return e.reverse
	case ModeAuto:
		if textutil.ContainsChinese(text) {
			return e.reverse
		}
		return e.forward
	default:
		return e.forward
	}
}
