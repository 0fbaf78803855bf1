package session

import (
	"context"
	"fmt"
	"time"

	"github.com/sh1/netsession/internal/logging"
)

// Session is the operation surface a caller (Dispatcher, CLI, or a vendor's
// own wrapper such as the Jump-Host decorator) drives. Every operation
// returns a CommandResult so callers get a uniform shape regardless of which
// vendor answered.
type Session interface {
	Connect(ctx context.Context) error
	SessionPreparation(ctx context.Context) error

	SendCommand(ctx context.Context, command string) (CommandResult, error)
	SendConfig(ctx context.Context, lines []string) (CommandResult, error)
	// SendConfigExpectingDrop sends config lines where the device is
	// expected to drop the connection mid-command (VPN tunnel rewrite,
	// interface renumber) and treats that drop as success rather than error.
	SendConfigExpectingDrop(ctx context.Context, lines []string) (CommandResult, error)

	GetCurrentConfig(ctx context.Context) (CommandResult, error)
	SaveConfig(ctx context.Context) (CommandResult, error)
	RebootDevice(ctx context.Context) (CommandResult, error)

	Authorize(ctx context.Context, secret string) error

	Disconnect(ctx context.Context) error
}

// BaseSession implements Session's state machine and I/O orchestration once;
// every vendor supplies only a Hooks value for the delta points. It is the
// Engine its own Hooks methods are called with.
type BaseSession struct {
	creds Credentials
	opts  AdvancedOptions
	hooks Hooks

	ch *shellChannel

	basePrompt string
	inEnable   bool
	inConfig   bool

	cache *configCache
}

// NewBaseSession builds a BaseSession bound to creds/opts/hooks. Hooks is
// never nil in practice; the Dispatcher always supplies at least DefaultHooks.
func NewBaseSession(creds Credentials, opts AdvancedOptions, hooks Hooks) *BaseSession {
	return &BaseSession{
		creds: creds,
		opts:  opts,
		hooks: hooks,
		cache: newConfigCache(),
	}
}

// --- Engine -----------------------------------------------------------

func (s *BaseSession) WriteLine(text string) error {
	return s.ch.writeChannel([]byte(text + s.hooks.Newline()))
}

func (s *BaseSession) Write(text string) error {
	return s.ch.writeChannel([]byte(text))
}

func (s *BaseSession) ReadUntilPrompt(ctx context.Context, expectedPrompt string, timeout time.Duration) (string, error) {
	return s.ch.readUntilPrompt(ctx, s.basePrompt, expectedPrompt, timeout, s.opts.FastMode)
}

func (s *BaseSession) ReadChannel(timeout time.Duration) (string, error) {
	return s.ch.readChannel(timeout)
}

func (s *BaseSession) BasePrompt() string          { return s.basePrompt }
func (s *BaseSession) SetBasePrompt(prompt string) { s.basePrompt = prompt }

func (s *BaseSession) Mode() (enable, config bool) { return s.inEnable, s.inConfig }
func (s *BaseSession) SetMode(enable, config bool) { s.inEnable, s.inConfig = enable, config }

func (s *BaseSession) Credentials() Credentials { return s.creds }
func (s *BaseSession) FastMode() bool           { return s.opts.FastMode }

// --- Session ------------------------------------------------------------

// connect opens the transport and shell channel. Algorithm fallback inside
// dial is not a retry; the caller (Dispatcher/Pool) wraps connect itself in
// the connectionRetryCount-bounded retry loop.
func (s *BaseSession) Connect(ctx context.Context) error {
	username := s.hooks.AdjustUsername(s.creds.Username)
	creds := s.creds
	creds.Username = username

	ch, err := dial(ctx, creds, s.opts)
	if err != nil {
		return err
	}
	s.ch = ch
	return nil
}

// sessionPreparation learns the base prompt and applies the vendor's
// paging/width adjustments, each as an independent top-level call so a
// vendor override of one delta point can never be silently bypassed by
// another hook calling into DefaultHooks directly.
func (s *BaseSession) SessionPreparation(ctx context.Context) error {
	if err := s.hooks.SetBasePrompt(ctx, s); err != nil {
		return fmt.Errorf("%w: %v", ErrPromptNotFound, err)
	}
	// Enable/admin authorization runs before paging/width: several vendors
	// (hp_procurve, aruba_os, aruba_aoscx) require privileged mode before
	// "no page"/"no paging" is even accepted.
	if s.hooks.RequiresEnable() && s.creds.EnablePassword != "" {
		if err := s.hooks.Authorize(ctx, s, s.creds.EnablePassword); err != nil {
			return err
		}
	}
	if err := s.hooks.DisablePaging(ctx, s); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("disable paging failed, continuing")
	}
	if err := s.hooks.SetTerminalWidth(ctx, s); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("set terminal width failed, continuing")
	}
	return s.hooks.PostConnect(ctx, s)
}

func (s *BaseSession) Authorize(ctx context.Context, secret string) error {
	return s.hooks.Authorize(ctx, s, secret)
}

// SendCommand is the single read/write/sanitize path every public command
// operation funnels through. A transient failure (sendCommandOnce returning
// an IsRetryable error, chiefly a prompt-read timeout) is retried up to
// CommandRetryCount times with RetryDelay between attempts (§9); the final
// attempt's CommandResult carries the number of retries actually used.
func (s *BaseSession) SendCommand(ctx context.Context, command string) (CommandResult, error) {
	backoff := NewLinearBackoff(s.opts.RetryDelay, s.opts.CommandRetryCount)

	var result CommandResult
	var err error
	retries := 0
	for {
		result, err = s.sendCommandOnce(ctx, command)
		if err == nil || !IsRetryable(err) {
			break
		}

		delay, giveUp := backoff.Next(retries)
		if giveUp {
			break
		}
		retries++
		logging.FromContext(ctx).Debug().Str("host", s.creds.Host).Str("command", logging.SanitizeString(command)).Int("retry", retries).Err(err).Msg("retrying command after transient failure")
		select {
		case <-ctx.Done():
			result.Error = ctx.Err().Error()
			result.CommandRetries = retries
			return result, ctx.Err()
		case <-time.After(delay):
		}
	}

	result.CommandRetries = retries
	if err != nil {
		return s.commandFailure(result, err)
	}
	result.Success = true
	return result, nil
}

// sendCommandOnce issues command exactly once and reports its outcome
// without applying FailOnError; SendCommand wraps it with the retry loop and
// the FailOnError decision.
func (s *BaseSession) sendCommandOnce(ctx context.Context, command string) (CommandResult, error) {
	start := time.Now()
	result := CommandResult{
		Command:    command,
		DeviceType: s.creds.DeviceType,
		Host:       s.creds.Host,
		Timestamp:  start,
	}

	if s.ch == nil {
		result.Error = ErrNotConnected.Error()
		return result, ErrNotConnected
	}

	if s.hooks.RequiresPromptRelearn() {
		if err := s.hooks.SetBasePrompt(ctx, s); err != nil {
			result.Error = err.Error()
			return result, fmt.Errorf("%w: %v", ErrPromptNotFound, err)
		}
	}

	if err := s.WriteLine(command); err != nil {
		result.Error = err.Error()
		return result, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	raw, err := s.ReadUntilPrompt(ctx, "", s.opts.CommandTimeout)
	result.ExecutionTime = time.Since(start)
	if err != nil && raw == "" {
		result.Error = err.Error()
		return result, err
	}

	clean := sanitize(raw, command, s.basePrompt, s.hooks.SanitizeExtra)
	result.Output = clean

	if ContainsCommandError(clean) {
		result.Error = clean
		return result, fmt.Errorf("%w: %s", ErrCommand, firstLine(clean))
	}

	result.Success = true
	return result, nil
}

// commandFailure applies FailOnError (§7): by default a command failure is
// returned as a Go error alongside the CommandResult, but when the caller
// set AdvancedOptions.FailOnError to false, SendCommand instead reports the
// failure purely through CommandResult.Success/Error and returns a nil error,
// so a batch caller can keep going without wrapping every call in its own
// error check.
func (s *BaseSession) commandFailure(result CommandResult, err error) (CommandResult, error) {
	result.Success = false
	if s.opts.FailOnErrorOrDefault() {
		return result, err
	}
	return result, nil
}

// sendConfig enters config mode, issues each line, and exits config mode,
// restoring the prior mode even when a line fails.
func (s *BaseSession) SendConfig(ctx context.Context, lines []string) (CommandResult, error) {
	start := time.Now()
	result := CommandResult{
		DeviceType: s.creds.DeviceType,
		Host:       s.creds.Host,
		Timestamp:  start,
	}

	if err := s.hooks.EnterConfigMode(ctx, s); err != nil {
		return result, fmt.Errorf("%w: %v", ErrConfigMode, err)
	}
	s.SetMode(s.inEnable, true)

	var allOutput string
	for _, line := range lines {
		r, err := s.SendCommand(ctx, line)
		allOutput += r.Output + "\n"
		if err != nil {
			s.hooks.ExitConfigMode(ctx, s)
			s.SetMode(s.inEnable, false)
			result.Output = allOutput
			result.Error = err.Error()
			result.ExecutionTime = time.Since(start)
			return result, err
		}
	}

	if err := s.hooks.ExitConfigMode(ctx, s); err != nil {
		result.Output = allOutput
		result.Error = err.Error()
		result.ExecutionTime = time.Since(start)
		return result, fmt.Errorf("%w: %v", ErrConfigMode, err)
	}
	s.SetMode(s.inEnable, false)

	result.Output = allOutput
	result.Success = true
	result.ExecutionTime = time.Since(start)
	s.cache.invalidate()
	return result, nil
}

// SendConfigExpectingDrop behaves like sendConfig but treats a connection
// drop mid-sequence as success: the device is known to sever the session
// when the line being applied rewrites the path the session itself uses
// (VPN tunnel endpoint, management interface renumber). On a drop it polls
// for reconnection before reporting success, so a caller that follows up
// with SaveConfig is not racing a device that hasn't come back yet.
func (s *BaseSession) SendConfigExpectingDrop(ctx context.Context, lines []string) (CommandResult, error) {
	result, err := s.SendConfig(ctx, lines)
	if err == nil {
		return result, nil
	}
	if !IsRetryable(err) && ContainsCommandError(result.Output) {
		return result, err
	}

	logging.FromContext(ctx).Info().Str("host", s.creds.Host).Msg("config push dropped the connection as expected, waiting for reconnect")
	if recErr := s.waitForReconnection(ctx); recErr != nil {
		result.Error = recErr.Error()
		return result, fmt.Errorf("%w: reconnect after expected drop failed: %v", ErrConnect, recErr)
	}

	result.Success = true
	result.Error = ""
	return result, nil
}

// waitForReconnection polls until a fresh Connect+SessionPreparation
// succeeds or the context/ConnectionTimeout expires, re-dialing rather than
// reusing the severed channel.
func (s *BaseSession) waitForReconnection(ctx context.Context) error {
	timeout := s.opts.ConnectionTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	deadline := time.Now().Add(timeout)
	logger := logging.FromContext(ctx)

	if s.ch != nil {
		_ = s.ch.close()
		s.ch = nil
	}

	var lastErr error
	attempt := 0
	for {
		attempt++
		err := s.Connect(ctx)
		if err == nil {
			if err := s.SessionPreparation(ctx); err == nil {
				logger.Info().Int("attempt", attempt).Msg("reconnected after expected drop")
				return nil
			} else {
				lastErr = err
			}
		} else {
			lastErr = err
		}
		logger.Debug().Int("attempt", attempt).Err(lastErr).Msg("reconnect attempt failed")

		if time.Now().After(deadline) {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}

func (s *BaseSession) GetCurrentConfig(ctx context.Context) (CommandResult, error) {
	if cached, ok := s.cache.get(); ok {
		return CommandResult{
			Command:    s.hooks.GetConfigCommand(),
			Output:     cached,
			Success:    true,
			DeviceType: s.creds.DeviceType,
			Host:       s.creds.Host,
			Timestamp:  time.Now(),
		}, nil
	}

	result, err := s.SendCommand(ctx, s.hooks.GetConfigCommand())
	if err == nil {
		s.cache.set(result.Output)
	}
	return result, err
}

func (s *BaseSession) SaveConfig(ctx context.Context) (CommandResult, error) {
	cmd := s.hooks.SaveConfigCommand()
	if cmd == "" {
		return CommandResult{Success: true, DeviceType: s.creds.DeviceType, Host: s.creds.Host, Timestamp: time.Now()}, nil
	}

	if err := s.WriteLine(cmd); err != nil {
		return CommandResult{Error: err.Error()}, err
	}
	raw, err := s.ReadUntilPrompt(ctx, "", s.opts.CommandTimeout)
	if err != nil && raw == "" {
		return CommandResult{Error: err.Error()}, err
	}

	if s.hooks.ConfirmationPattern().MatchString(raw) {
		if err := s.WriteLine("y"); err != nil {
			return CommandResult{Error: err.Error()}, err
		}
		raw, err = s.ReadUntilPrompt(ctx, "", s.opts.CommandTimeout)
		if err != nil && raw == "" {
			return CommandResult{Error: err.Error()}, err
		}
	}

	clean := sanitize(raw, cmd, s.basePrompt, s.hooks.SanitizeExtra)
	return CommandResult{
		Command:    cmd,
		Output:     clean,
		Success:    !ContainsCommandError(clean),
		DeviceType: s.creds.DeviceType,
		Host:       s.creds.Host,
		Timestamp:  time.Now(),
	}, nil
}

func (s *BaseSession) RebootDevice(ctx context.Context) (CommandResult, error) {
	cmd := s.hooks.RebootCommand()
	if err := s.WriteLine(cmd); err != nil {
		return CommandResult{Error: err.Error()}, err
	}
	raw, _ := s.ReadChannel(2 * time.Second)
	if s.hooks.ConfirmationPattern().MatchString(raw) {
		_ = s.WriteLine("y")
		raw, _ = s.ReadChannel(2 * time.Second)
	}
	return CommandResult{
		Command:    cmd,
		Output:     sanitize(raw, cmd, s.basePrompt, s.hooks.SanitizeExtra),
		Success:    true,
		DeviceType: s.creds.DeviceType,
		Host:       s.creds.Host,
		Timestamp:  time.Now(),
	}, nil
}

func (s *BaseSession) Disconnect(ctx context.Context) error {
	if s.ch == nil {
		return nil
	}
	_ = s.hooks.Disconnect(ctx, s)
	return s.ch.close()
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
