package session

import (
	"context"
	"strings"
	"time"
)

// terminatorSet is the set of characters that end a device prompt.
const terminatorSet = "#>$%"

// stripPromptTerminator removes a single trailing mode terminator and any
// trailing whitespace from a line, returning the bare base prompt.
func stripPromptTerminator(line string) string {
	line = strings.TrimRight(line, " \t")
	if line == "" {
		return ""
	}
	last := line[len(line)-1]
	if strings.IndexByte(terminatorSet, last) >= 0 {
		return strings.TrimRight(line[:len(line)-1], " \t")
	}
	return line
}

// defaultSetBasePrompt writes a bare newline, reads the response, takes the
// last non-empty line, and stores the terminator-stripped remainder as the
// base prompt. It is the DefaultHooks implementation of the prompt-learning
// delta point; vendors with non-standard prompt shapes override it.
func defaultSetBasePrompt(ctx context.Context, eng Engine) error {
	if err := eng.WriteLine(""); err != nil {
		return err
	}
	out, err := eng.ReadUntilPrompt(ctx, "", 5*time.Second)
	if err != nil && out == "" {
		return err
	}
	line := lastNonEmptyLine(out)
	base := stripPromptTerminator(line)
	eng.SetBasePrompt(base)
	return nil
}
