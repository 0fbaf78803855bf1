package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsCommandError(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   bool
	}{
		{"invalid command", "% Invalid command detected", true},
		{"syntax error", "syntax error, unexpected token", true},
		{"unknown command mixed case", "Unknown Command", true},
		{"generic error prefix", "error: interface does not exist", true},
		{"clean output", "interface eth0 is up", false},
		{"empty output", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsCommandError(tt.output))
		})
	}
}

func TestUnsupportedDeviceError(t *testing.T) {
	err := &UnsupportedDeviceError{Tag: "nonexistent_os", Supported: []string{"cisco_ios", "arista_eos"}}

	assert.Contains(t, err.Error(), "nonexistent_os")
	assert.Contains(t, err.Error(), "cisco_ios")
	assert.True(t, errors.Is(err, ErrUnsupportedDevice))

	var asErr *UnsupportedDeviceError
	assert.True(t, errors.As(err, &asErr))
	assert.Equal(t, "nonexistent_os", asErr.Tag)
}
