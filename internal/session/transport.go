package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/sh1/netsession/internal/logging"
)

// algorithmProfile names one rung of the progressive algorithm fallback
// ladder described for the Transport: modern, legacy, ultra-legacy.
type algorithmProfile struct {
	name       string
	kex        []string
	ciphers    []string
	macs       []string
	hostKeys   []string
	forceRSA   bool
}

var algorithmProfiles = []algorithmProfile{
	{
		name: "modern",
		kex: []string{
			"curve25519-sha256", "curve25519-sha256@libssh.org",
			"ecdh-sha2-nistp256", "ecdh-sha2-nistp384", "ecdh-sha2-nistp521",
		},
		ciphers:  []string{"aes128-gcm@openssh.com", "aes256-gcm@openssh.com", "chacha20-poly1305@openssh.com"},
		macs:     []string{"hmac-sha2-256", "hmac-sha2-512"},
		hostKeys: []string{ssh.KeyAlgoED25519, ssh.KeyAlgoRSASHA256, ssh.KeyAlgoRSASHA512, ssh.KeyAlgoRSA, ssh.KeyAlgoECDSA256, ssh.KeyAlgoECDSA384, ssh.KeyAlgoECDSA521},
	},
	{
		name: "legacy",
		kex: []string{
			"diffie-hellman-group-exchange-sha256", "diffie-hellman-group-exchange-sha1",
			"diffie-hellman-group14-sha1",
		},
		ciphers:  []string{"aes128-cbc", "aes192-cbc", "aes256-cbc"},
		macs:     []string{"hmac-sha1"},
		hostKeys: []string{ssh.KeyAlgoRSA, ssh.KeyAlgoDSA},
		forceRSA: true,
	},
	{
		name:     "ultra-legacy",
		kex:      []string{"diffie-hellman-group1-sha1"},
		ciphers:  []string{"3des-cbc"},
		macs:     []string{"hmac-md5"},
		hostKeys: []string{ssh.KeyAlgoRSA, ssh.KeyAlgoDSA},
		forceRSA: true,
	},
}

// shellSettleInterval bounds how long the Transport waits after opening the
// channel before considering it usable: 200ms in fast mode, 600-1000ms otherwise.
func shellSettleInterval(fastMode bool) time.Duration {
	if fastMode {
		return 200 * time.Millisecond
	}
	return 800 * time.Millisecond
}

// dial establishes the shell channel for creds, trying each algorithm
// profile in order. The algorithm fallback itself is never counted against
// connectionRetryCount; only the outer retry loop in dispatch's
// connectAndPrepare (which also builds pooled sessions) is.
func dial(ctx context.Context, creds Credentials, opts AdvancedOptions) (*shellChannel, error) {
	logger := logging.FromContext(ctx)
	creds = creds.WithPort()
	addr := creds.Addr()

	authMethods := buildAuthMethods(creds)
	hostKeyCallback := hostKeyCallback(creds)

	var lastErr error
	for _, profile := range algorithmProfiles {
		logger.Debug().Str("addr", addr).Str("profile", profile.name).Msg("dialing with algorithm profile")

		methods := authMethods
		if profile.forceRSA {
			methods = wrapAuthMethodsForLegacyRSA(creds, authMethods)
		}

		cfg := &ssh.ClientConfig{
			User:            creds.Username,
			Auth:            methods,
			HostKeyCallback: hostKeyCallback,
			Timeout:         opts.ConnectionTimeout,
			Config: ssh.Config{
				KeyExchanges: profile.kex,
				Ciphers:      profile.ciphers,
				MACs:         profile.macs,
			},
			HostKeyAlgorithms: profile.hostKeys,
		}

		client, err := dialContext(ctx, addr, cfg)
		if err != nil {
			lastErr = err
			if isAuthError(err) {
				return nil, fmt.Errorf("%w: %v", ErrAuthOrAlgorithm, err)
			}
			continue
		}

		ch, err := openShellChannel(client, opts.FastMode)
		if err != nil {
			client.Close()
			lastErr = err
			continue
		}

		logger.Debug().Str("addr", addr).Str("profile", profile.name).Msg("shell channel open")
		return ch, nil
	}

	return nil, fmt.Errorf("%w: all algorithm profiles exhausted: %v", ErrAuthOrAlgorithm, lastErr)
}

// dialContext performs a context-bounded TCP dial and SSH handshake,
// tying the client's lifetime to ctx so no goroutine outlives cancellation.
func dialContext(ctx context.Context, addr string, cfg *ssh.ClientConfig) (*ssh.Client, error) {
	d := &net.Dialer{Timeout: cfg.Timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	client := ssh.NewClient(c, chans, reqs)

	go func() {
		<-ctx.Done()
		_ = client.Close()
	}()

	return client, nil
}

func isAuthError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unable to authenticate") || strings.Contains(msg, "permission denied")
}

// buildAuthMethods builds authentication methods in priority order:
// explicit private key (when Auth is AuthPrivateKey), then SSH agent (when
// SSH_AUTH_SOCK is set, with or without an explicit key), then password (also registered as keyboard-interactive for devices that
// present a KBI challenge instead of a plain password prompt).
func buildAuthMethods(creds Credentials) []ssh.AuthMethod {
	var methods []ssh.AuthMethod

	switch creds.Auth {
	case AuthPrivateKey:
		if signer := loadPrivateKey(creds); signer != nil {
			methods = append(methods, ssh.PublicKeys(signer))
		}
		if am := trySSHAgent(); am != nil {
			methods = append(methods, am)
		}
	default:
		if am := trySSHAgent(); am != nil {
			methods = append(methods, am)
		}
	}

	if creds.Password != "" {
		methods = append(methods, ssh.Password(creds.Password))
		methods = append(methods, ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
			answers := make([]string, len(questions))
			for i := range questions {
				answers[i] = creds.Password
			}
			return answers, nil
		}))
	}

	return methods
}

// wrapAuthMethodsForLegacyRSA re-derives the PublicKeys auth method with the
// RSA signer forced to ssh-rsa, for use on the legacy/ultra-legacy profiles.
func wrapAuthMethodsForLegacyRSA(creds Credentials, methods []ssh.AuthMethod) []ssh.AuthMethod {
	if creds.Auth != AuthPrivateKey {
		return methods
	}
	signer := loadPrivateKey(creds)
	if signer == nil {
		return methods
	}
	wrapped := make([]ssh.AuthMethod, 0, len(methods)+1)
	wrapped = append(wrapped, ssh.PublicKeys(wrapLegacyRSA(signer)))
	for _, m := range methods {
		wrapped = append(wrapped, m)
	}
	return wrapped
}

func loadPrivateKey(creds Credentials) ssh.Signer {
	if creds.PrivateKey == "" {
		return nil
	}
	var signer ssh.Signer
	var err error
	if creds.Passphrase != "" {
		signer, err = ssh.ParsePrivateKeyWithPassphrase([]byte(creds.PrivateKey), []byte(creds.Passphrase))
	} else {
		signer, err = ssh.ParsePrivateKey([]byte(creds.PrivateKey))
	}
	if err != nil {
		logging.Global().Error().Err(err).Msg("failed to parse private key")
		return nil
	}
	return signer
}

func trySSHAgent() ssh.AuthMethod {
	socketPath := os.Getenv("SSH_AUTH_SOCK")
	if socketPath == "" {
		return nil
	}
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil
	}
	agentClient := agent.NewClient(conn)
	return ssh.PublicKeysCallback(agentClient.Signers)
}

func hostKeyCallback(creds Credentials) ssh.HostKeyCallback {
	if creds.SkipHostKeyCheck {
		return ssh.InsecureIgnoreHostKey()
	}
	if creds.HostKey != "" {
		return fixedHostKeyCallback(creds.HostKey)
	}
	if creds.KnownHostsFile != "" {
		cb, err := knownhosts.New(creds.KnownHostsFile)
		if err != nil {
			return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
				return fmt.Errorf("failed to load known_hosts file %q: %w", creds.KnownHostsFile, err)
			}
		}
		return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
			if err := cb(hostname, remote, key); err != nil {
				msg := strings.ToLower(err.Error())
				if strings.Contains(msg, "mismatch") || strings.Contains(msg, "changed") || strings.Contains(msg, "unknown") {
					return fmt.Errorf("%w: %v", ErrHostKeyMismatch, err)
				}
				return err
			}
			return nil
		}
	}
	logging.Global().Warn().Msg("SSH host key verification disabled: no known_hosts_file or host_key configured")
	return ssh.InsecureIgnoreHostKey()
}

func fixedHostKeyCallback(expectedB64 string) ssh.HostKeyCallback {
	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		expected, err := base64.StdEncoding.DecodeString(expectedB64)
		if err != nil {
			return fmt.Errorf("invalid host key format: %w", err)
		}
		provided := key.Marshal()
		if len(expected) != len(provided) {
			return fmt.Errorf("%w: host key mismatch for %s", ErrHostKeyMismatch, hostname)
		}
		for i := range expected {
			if expected[i] != provided[i] {
				return fmt.Errorf("%w: host key mismatch for %s", ErrHostKeyMismatch, hostname)
			}
		}
		return nil
	}
}
