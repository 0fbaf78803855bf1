package session

import (
	"net"
	"strconv"
	"time"
)

// AuthMethod identifies how a Credentials value authenticates to a device.
type AuthMethod int

const (
	// AuthPassword authenticates with a plaintext password.
	AuthPassword AuthMethod = iota
	// AuthPrivateKey authenticates with a private key, optionally passphrase protected.
	AuthPrivateKey
)

// JumpHost describes a bastion the Transport must tunnel through before
// reaching the target device. A JumpHost is "complete" when Host, Port,
// and Username are all set and Auth resolves to a usable credential.
type JumpHost struct {
	Host       string
	Port       int
	Username   string
	Auth       AuthMethod
	Password   string
	PrivateKey string
	Passphrase string
}

// Complete reports whether the jump-host block carries enough information
// for the Dispatcher to wrap a Session in the Jump-Host Wrapper.
func (j *JumpHost) Complete() bool {
	if j == nil {
		return false
	}
	if j.Host == "" || j.Port == 0 || j.Username == "" {
		return false
	}
	switch j.Auth {
	case AuthPassword:
		return j.Password != ""
	case AuthPrivateKey:
		return j.PrivateKey != ""
	default:
		return false
	}
}

// Credentials is the immutable request-scoped identity and target of a
// Session. It is supplied by the caller per request and never mutated by
// the Session itself.
type Credentials struct {
	Host     string
	Port     int
	Username string

	Auth       AuthMethod
	Password   string
	PrivateKey string
	Passphrase string

	DeviceType string

	EnablePassword string

	JumpHost *JumpHost

	ConnectTimeout time.Duration
	KeepAlive      bool

	HostKey          string
	KnownHostsFile   string
	SkipHostKeyCheck bool
}

// WithPort returns a copy of the credentials defaulted to port 22 when Port
// is unset, mirroring the data model's "port (default 22)" essential.
func (c Credentials) WithPort() Credentials {
	if c.Port == 0 {
		c.Port = 22
	}
	return c
}

// Addr returns the host:port dial target.
func (c Credentials) Addr() string {
	c = c.WithPort()
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// AdvancedOptions is an immutable record of per-operation tuning knobs,
// merged with defaults at the request boundary by MergeOptions. Only the
// fields named in spec are ever populated; there is no escape hatch for
// unrecognized keys.
type AdvancedOptions struct {
	CommandTimeout       time.Duration
	ConnectionTimeout    time.Duration
	FastMode             bool
	ConnectionPooling    bool
	ReuseConnection      bool
	ConnectionRetryCount int
	CommandRetryCount    int
	RetryDelay           time.Duration

	// FailOnError is a pointer so MergeOptions can tell "not set, use the
	// documented true default" apart from an explicit false; a plain bool's
	// zero value can't carry that distinction. BoolPtr builds one.
	FailOnError *bool
}

// BoolPtr returns a pointer to b, for populating AdvancedOptions.FailOnError.
func BoolPtr(b bool) *bool { return &b }

// FailOnErrorOrDefault reports the effective FailOnError value, true when unset.
func (o AdvancedOptions) FailOnErrorOrDefault() bool {
	if o.FailOnError == nil {
		return true
	}
	return *o.FailOnError
}

// DefaultAdvancedOptions returns the documented defaults: commandTimeout
// 10s (MergeOptions lowers it to 5s in fast mode), connectionTimeout
// 15s, connectionRetryCount 3, commandRetryCount 2, retryDelay 2s,
// failOnError true.
func DefaultAdvancedOptions() AdvancedOptions {
	return AdvancedOptions{
		CommandTimeout:       10 * time.Second,
		ConnectionTimeout:    15 * time.Second,
		FastMode:             false,
		ConnectionPooling:    false,
		ReuseConnection:      false,
		ConnectionRetryCount: 3,
		CommandRetryCount:    2,
		RetryDelay:           2 * time.Second,
		FailOnError:          BoolPtr(true),
	}
}

// MergeOptions merges a partial AdvancedOptions (as supplied by a caller)
// with the defaults, a zero value for any field meaning "use the default".
// FastMode shortens the default command timeout to 5s when no explicit
// CommandTimeout was supplied.
func MergeOptions(opts AdvancedOptions) AdvancedOptions {
	merged := DefaultAdvancedOptions()

	if opts.CommandTimeout != 0 {
		merged.CommandTimeout = opts.CommandTimeout
	} else if opts.FastMode {
		merged.CommandTimeout = 5 * time.Second
	}
	if opts.ConnectionTimeout != 0 {
		merged.ConnectionTimeout = opts.ConnectionTimeout
	}
	merged.FastMode = opts.FastMode
	merged.ConnectionPooling = opts.ConnectionPooling
	merged.ReuseConnection = opts.ReuseConnection
	if opts.ConnectionRetryCount != 0 {
		merged.ConnectionRetryCount = opts.ConnectionRetryCount
	}
	if opts.CommandRetryCount != 0 {
		merged.CommandRetryCount = opts.CommandRetryCount
	}
	if opts.RetryDelay != 0 {
		merged.RetryDelay = opts.RetryDelay
	}
	if opts.FailOnError != nil {
		merged.FailOnError = opts.FailOnError
	}

	return merged
}

// CommandResult is the pure value produced by every Session operation.
type CommandResult struct {
	Command            string
	Output             string
	Success            bool
	Error              string
	DeviceType         string
	Host               string
	Timestamp          time.Time
	ExecutionTime      time.Duration
	ConnectionRetries  int
	CommandRetries     int
}

// PromptModel is the learned shape of a device's command prompt, set during
// sessionPreparation and refreshed by vendors whose prompts mutate per
// command (Extreme EXOS).
type PromptModel struct {
	BasePrompt    string
	ConfigPrompt  string
	EnabledPrompt string
}
