package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/sh1/netsession/internal/logging"
)

// ErrFetcherClosed is returned once a ConfigFileFetcher's Close has run.
var ErrFetcherClosed = errors.New("config file fetcher is closed")

// ConfigFileFetcher downloads configuration files over SFTP instead of
// capturing "show running-config" style output over the interactive shell -
// useful for devices that stage a full config as a file (startup-config,
// backup archives) too large or too binary to push through the prompt-driven
// Engine cleanly (§4.12). No Session operation calls it; GetCurrentConfig
// always reads the configuration through the shell.
type ConfigFileFetcher interface {
	// Fetch downloads path from the device and returns its content in memory.
	Fetch(ctx context.Context, path string) ([]byte, error)
	Close() error
}

type sftpConfigFetcher struct {
	sshClient  *ssh.Client
	sftpClient *sftp.Client
	mu         sync.Mutex
	closed     bool
}

// NewConfigFileFetcher dials creds over SSH and opens an SFTP subsystem on
// top of it. The connection is independent of any interactive shell Session
// against the same device; callers typically open one alongside a Session
// and close both together.
func NewConfigFileFetcher(ctx context.Context, creds Credentials, opts AdvancedOptions) (ConfigFileFetcher, error) {
	logger := logging.FromContext(ctx)
	creds = creds.WithPort()

	cfg := &ssh.ClientConfig{
		User:            creds.Username,
		Auth:            buildAuthMethods(creds),
		HostKeyCallback: hostKeyCallback(creds),
		Timeout:         opts.ConnectionTimeout,
	}

	logger.Debug().Str("addr", creds.Addr()).Msg("dialing SSH for SFTP config fetch")
	sshClient, err := dialContext(ctx, creds.Addr(), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: sftp dial: %v", ErrConnect, err)
	}

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, fmt.Errorf("%w: sftp subsystem: %v", ErrConnect, err)
	}

	return &sftpConfigFetcher{sshClient: sshClient, sftpClient: sftpClient}, nil
}

func (f *sftpConfigFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrFetcherClosed
	}
	f.mu.Unlock()

	logger := logging.FromContext(ctx)
	logger.Debug().Str("path", path).Msg("fetching config file via sftp")

	file, err := f.sftpClient.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote file %q: %w", path, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read remote file %q: %w", path, err)
	}

	logger.Debug().Int("bytes", len(content)).Msg("config file fetched")
	return content, nil
}

func (f *sftpConfigFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true

	var errs []error
	if f.sftpClient != nil {
		if err := f.sftpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing sftp client: %w", err))
		}
	}
	if f.sshClient != nil {
		if err := f.sshClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing ssh connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
