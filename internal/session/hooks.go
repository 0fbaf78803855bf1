package session

import (
	"context"
	"regexp"
	"time"
)

// Engine is the narrow surface BaseSession exposes to a Hooks implementation
// so vendor deltas can act on the session (write, read-until-prompt, mode
// flags) without importing the concrete session type. Hooks methods must
// only call Engine, never call back into each other through the session -
// that path would hit Go's lack of virtual dispatch through embedding.
type Engine interface {
	// WriteLine writes text followed by the session's configured newline.
	WriteLine(text string) error
	// Write writes raw bytes with no newline appended.
	Write(text string) error
	// ReadUntilPrompt reads until expectedPrompt (or the learned base
	// prompt plus a mode terminator) appears at the tail, or timeout elapses.
	ReadUntilPrompt(ctx context.Context, expectedPrompt string, timeout time.Duration) (string, error)
	// ReadChannel reads whatever arrives within timeout, no prompt matching.
	ReadChannel(timeout time.Duration) (string, error)

	BasePrompt() string
	SetBasePrompt(prompt string)

	Mode() (enable, config bool)
	SetMode(enable, config bool)

	Credentials() Credentials
	FastMode() bool
}

// Hooks captures the per-vendor deltas from DefaultHooks: the "trait with
// provided methods" called out in the design notes. BaseSession holds a
// Hooks value and calls through it for every overridable behavior; the
// capability set itself (sendCommand, sendConfig, disconnect, ...) lives
// once in BaseSession and is never duplicated per vendor.
type Hooks interface {
	// Newline is the line ending written after each command.
	Newline() string

	// SetBasePrompt learns the device's base prompt.
	SetBasePrompt(ctx context.Context, eng Engine) error
	// RequiresPromptRelearn reports whether the prompt mutates per command
	// (Extreme EXOS's incrementing `.N` suffix), so sendCommand must call
	// SetBasePrompt again before every command rather than once during
	// sessionPreparation.
	RequiresPromptRelearn() bool
	// EnterConfigMode transitions User/Enable -> Config.
	EnterConfigMode(ctx context.Context, eng Engine) error
	// ExitConfigMode transitions Config -> Enable/User.
	ExitConfigMode(ctx context.Context, eng Engine) error
	// DisablePaging issues the vendor's "no pager" command, best-effort.
	DisablePaging(ctx context.Context, eng Engine) error
	// SetTerminalWidth issues the vendor's terminal-width command, best-effort.
	SetTerminalWidth(ctx context.Context, eng Engine) error

	// RequiresEnable reports whether privileged commands need an enable/admin dialog first.
	RequiresEnable() bool
	// Authorize runs the enable/admin password sub-dialog. No-op for vendors without one.
	Authorize(ctx context.Context, eng Engine, secret string) error

	// SaveConfigCommand is the command issued by saveConfig.
	SaveConfigCommand() string
	// ConfirmationPattern matches confirmation dialogs auto-answered with "y".
	ConfirmationPattern() *regexp.Regexp
	// RebootCommand is the command issued by rebootDevice.
	RebootCommand() string
	// GetConfigCommand is the command issued by getCurrentConfig.
	GetConfigCommand() string

	// AdjustUsername mutates the SSH username before dial (MikroTik suffix).
	AdjustUsername(username string) string
	// SanitizeExtra applies a vendor-specific sanitizer pass beyond the
	// shared decorations the base Output Sanitizer already strips.
	SanitizeExtra(output string) string

	// PostConnect runs after sessionPreparation, for vendors that need an
	// extra stage before the session is usable (Ubiquiti UniFi's telnet hop).
	PostConnect(ctx context.Context, eng Engine) error
	// Disconnect runs the vendor's graceful logout sequence.
	Disconnect(ctx context.Context, eng Engine) error
}

// confirmDefault matches the generic "[confirm]" / "(y/n)" / "[y/n]" style
// confirmation dialogs most vendors present.
var confirmDefault = regexp.MustCompile(`(?i)\[confirm\]|\(y/n\)|\[y/n\]`)

// DefaultHooks is the shared base implementation every vendor's Hooks
// embeds, overriding only the methods that actually differ (§4.6).
type DefaultHooks struct{}

func (DefaultHooks) Newline() string { return "\n" }

func (DefaultHooks) SetBasePrompt(ctx context.Context, eng Engine) error {
	return defaultSetBasePrompt(ctx, eng)
}

func (DefaultHooks) EnterConfigMode(ctx context.Context, eng Engine) error {
	return nil
}

func (DefaultHooks) ExitConfigMode(ctx context.Context, eng Engine) error {
	return nil
}

func (DefaultHooks) DisablePaging(ctx context.Context, eng Engine) error {
	return nil
}

func (DefaultHooks) SetTerminalWidth(ctx context.Context, eng Engine) error {
	return nil
}

func (DefaultHooks) RequiresPromptRelearn() bool { return false }

func (DefaultHooks) RequiresEnable() bool { return false }

func (DefaultHooks) Authorize(ctx context.Context, eng Engine, secret string) error {
	return nil
}

func (DefaultHooks) SaveConfigCommand() string { return "" }

func (DefaultHooks) ConfirmationPattern() *regexp.Regexp { return confirmDefault }

func (DefaultHooks) RebootCommand() string { return "reboot" }

func (DefaultHooks) GetConfigCommand() string { return "show running-config" }

func (DefaultHooks) AdjustUsername(username string) string { return username }

func (DefaultHooks) SanitizeExtra(output string) string { return output }

func (DefaultHooks) PostConnect(ctx context.Context, eng Engine) error { return nil }

func (DefaultHooks) Disconnect(ctx context.Context, eng Engine) error {
	return eng.WriteLine("exit")
}
