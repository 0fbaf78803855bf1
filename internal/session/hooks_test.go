package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHooks_SaneDefaults(t *testing.T) {
	h := DefaultHooks{}

	assert.Equal(t, "\n", h.Newline())
	assert.False(t, h.RequiresEnable())
	assert.False(t, h.RequiresPromptRelearn())
	assert.Equal(t, "", h.SaveConfigCommand())
	assert.Equal(t, "reboot", h.RebootCommand())
	assert.Equal(t, "show running-config", h.GetConfigCommand())
	assert.Equal(t, "admin", h.AdjustUsername("admin"))
	assert.Equal(t, "unchanged output", h.SanitizeExtra("unchanged output"))
}

func TestDefaultHooks_ConfirmationPatternMatchesCommonDialogs(t *testing.T) {
	pattern := DefaultHooks{}.ConfirmationPattern()

	assert.True(t, pattern.MatchString("Proceed? [confirm]"))
	assert.True(t, pattern.MatchString("Are you sure (y/n)"))
	assert.True(t, pattern.MatchString("Continue [y/n]?"))
	assert.False(t, pattern.MatchString("interface GigabitEthernet0/1 is up"))
}

func TestDefaultHooks_NoOpTransitionsSucceed(t *testing.T) {
	h := DefaultHooks{}
	eng := &scriptedEngine{}
	ctx := context.Background()

	assert.NoError(t, h.EnterConfigMode(ctx, eng))
	assert.NoError(t, h.ExitConfigMode(ctx, eng))
	assert.NoError(t, h.DisablePaging(ctx, eng))
	assert.NoError(t, h.SetTerminalWidth(ctx, eng))
	assert.NoError(t, h.Authorize(ctx, eng, "secret"))
	assert.NoError(t, h.PostConnect(ctx, eng))
}

func TestDefaultHooks_DisconnectWritesExit(t *testing.T) {
	h := DefaultHooks{}
	eng := &scriptedEngine{}

	require.NoError(t, h.Disconnect(context.Background(), eng))
	assert.Equal(t, []string{"exit"}, eng.written)
}
