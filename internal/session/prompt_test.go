package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripPromptTerminator(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hash terminator", "router1#", "router1"},
		{"angle terminator", "srx1>", "srx1"},
		{"dollar terminator", "user@host$", "user@host"},
		{"trailing whitespace after terminator", "switch1#   ", "switch1"},
		{"no terminator", "no-terminator-here", "no-terminator-here"},
		{"empty line", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripPromptTerminator(tt.in))
		})
	}
}

type scriptedEngine struct {
	written []string
	reply   string
	err     error
	prompt  string
}

func (e *scriptedEngine) WriteLine(text string) error {
	e.written = append(e.written, text)
	return nil
}
func (e *scriptedEngine) Write(text string) error { return e.WriteLine(text) }
func (e *scriptedEngine) ReadUntilPrompt(ctx context.Context, expectedPrompt string, timeout time.Duration) (string, error) {
	return e.reply, e.err
}
func (e *scriptedEngine) ReadChannel(timeout time.Duration) (string, error) { return e.reply, e.err }
func (e *scriptedEngine) BasePrompt() string                                { return e.prompt }
func (e *scriptedEngine) SetBasePrompt(prompt string)                       { e.prompt = prompt }
func (e *scriptedEngine) Mode() (bool, bool)                                { return false, false }
func (e *scriptedEngine) SetMode(enable, config bool)                      {}
func (e *scriptedEngine) Credentials() Credentials                         { return Credentials{} }
func (e *scriptedEngine) FastMode() bool                                   { return false }

func TestDefaultSetBasePrompt_LearnsFromLastLine(t *testing.T) {
	eng := &scriptedEngine{reply: "\nrouter1#"}
	err := defaultSetBasePrompt(context.Background(), eng)
	require.NoError(t, err)
	assert.Equal(t, "router1", eng.BasePrompt())
	assert.Equal(t, []string{""}, eng.written)
}
