package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseSession_SendCommandBeforeConnectReturnsErrNotConnected(t *testing.T) {
	s := NewBaseSession(testCreds("10.0.0.1"), AdvancedOptions{}, fakeHooks{})

	result, err := s.SendCommand(context.Background(), "show version")
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.False(t, result.Success)
	assert.Zero(t, result.CommandRetries, "ErrNotConnected is not retryable, so no retry attempts should run")
}

func TestBaseSession_SendCommandFailOnErrorFalseReturnsNilErrorWithFailureResult(t *testing.T) {
	opts := MergeOptions(AdvancedOptions{FailOnError: BoolPtr(false)})
	s := NewBaseSession(testCreds("10.0.0.1"), opts, fakeHooks{})

	result, err := s.SendCommand(context.Background(), "show version")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, ErrNotConnected.Error(), result.Error)
}

func TestBaseSession_DisconnectBeforeConnectIsNoOp(t *testing.T) {
	s := NewBaseSession(testCreds("10.0.0.1"), AdvancedOptions{}, fakeHooks{})
	assert.NoError(t, s.Disconnect(context.Background()))
}

func TestBaseSession_GetCurrentConfigServesFromCacheWithoutTouchingTransport(t *testing.T) {
	s := NewBaseSession(testCreds("10.0.0.1"), AdvancedOptions{}, fakeHooks{})
	s.cache.set("interface eth0\n no shutdown")

	result, err := s.GetCurrentConfig(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "interface eth0\n no shutdown", result.Output)
}

func TestBaseSession_SaveConfigWithNoCommandConfiguredIsTrivialSuccess(t *testing.T) {
	s := NewBaseSession(testCreds("10.0.0.1"), AdvancedOptions{}, fakeHooks{})

	result, err := s.SaveConfig(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestBaseSession_ModeRoundTrips(t *testing.T) {
	s := NewBaseSession(testCreds("10.0.0.1"), AdvancedOptions{}, fakeHooks{})
	s.SetMode(true, false)
	enable, config := s.Mode()
	assert.True(t, enable)
	assert.False(t, config)
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "first", firstLine("first\nsecond\nthird"))
	assert.Equal(t, "only", firstLine("only"))
	assert.Equal(t, "", firstLine(""))
}
