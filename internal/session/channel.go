package session

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
)

// ptyWidth and ptyHeight are the default PTY dimensions: vt100, 200x24.
const (
	ptyWidth  = 200
	ptyHeight = 24
)

// shellChannel is the low-level shell I/O primitive over an ssh.Client:
// writeChannel / readChannel / readUntilPrompt from the component design.
// It owns exactly one ssh.Client and one ssh.Session (I1).
type shellChannel struct {
	client  *ssh.Client
	session *ssh.Session
	stdin   io.WriteCloser
	stdout  *bufio.Reader

	mu     sync.Mutex
	closed bool
}

// openShellChannel requests an interactive vt100 shell over client and
// waits the fast-mode-dependent settle interval before returning.
func openShellChannel(client *ssh.Client, fastMode bool) (*shellChannel, error) {
	sshSession, err := client.NewSession()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open ssh session: %v", ErrConnect, err)
	}

	stdin, err := sshSession.StdinPipe()
	if err != nil {
		sshSession.Close()
		return nil, fmt.Errorf("%w: failed to get stdin: %v", ErrConnect, err)
	}
	stdout, err := sshSession.StdoutPipe()
	if err != nil {
		sshSession.Close()
		return nil, fmt.Errorf("%w: failed to get stdout: %v", ErrConnect, err)
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 14400,
		ssh.TTY_OP_OSPEED: 14400,
	}
	if err := sshSession.RequestPty("vt100", ptyHeight, ptyWidth, modes); err != nil {
		sshSession.Close()
		return nil, fmt.Errorf("%w: failed to allocate pty: %v", ErrConnect, err)
	}
	if err := sshSession.Shell(); err != nil {
		sshSession.Close()
		return nil, fmt.Errorf("%w: failed to start shell: %v", ErrConnect, err)
	}

	time.Sleep(shellSettleInterval(fastMode))

	return &shellChannel{
		client:  client,
		session: sshSession,
		stdin:   stdin,
		stdout:  bufio.NewReader(stdout),
	}, nil
}

// writeChannel appends bytes to the shell channel without buffering
// partial writes across calls.
func (c *shellChannel) writeChannel(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrNotConnected
	}
	_, err := c.stdin.Write(b)
	return err
}

// readChannel returns whatever has been received within the timeout
// window, including the empty string on a quiet channel.
func (c *shellChannel) readChannel(timeout time.Duration) (string, error) {
	var buf bytes.Buffer
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		if n := c.stdout.Buffered(); n > 0 {
			chunk := make([]byte, n)
			read, _ := c.stdout.Read(chunk)
			buf.Write(chunk[:read])
			continue
		}
		b, err := c.stdout.ReadByte()
		if err != nil {
			if err == io.EOF {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			return buf.String(), err
		}
		buf.WriteByte(b)
	}

	return buf.String(), nil
}

var promptTailPattern = regexp.MustCompile(`[#>$%\]]\s*$`)

// readUntilPrompt polls the channel with a short interval, concatenating
// received chunks, and returns as soon as the tail of the accumulated
// buffer matches expectedPrompt verbatim, basePrompt followed by a mode
// terminator, or (in fast mode) any non-empty tail line ending in a mode
// terminator with trailing whitespace.
func (c *shellChannel) readUntilPrompt(ctx context.Context, basePrompt, expectedPrompt string, timeout time.Duration, fastMode bool) (string, error) {
	var buf bytes.Buffer
	deadline := time.Now().Add(timeout)
	byt := make([]byte, 1)

	for {
		select {
		case <-ctx.Done():
			return buf.String(), fmt.Errorf("%w: %v", ErrCanceled, ctx.Err())
		default:
		}
		if time.Now().After(deadline) {
			return buf.String(), fmt.Errorf("%w: no prompt within %s", ErrTimeout, timeout)
		}

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return buf.String(), ErrNotConnected
		}
		n, err := c.stdout.Read(byt)
		c.mu.Unlock()

		if err != nil {
			if err == io.EOF {
				time.Sleep(10 * time.Millisecond)
				continue
			}
			return buf.String(), fmt.Errorf("%w: %v", ErrConnect, err)
		}
		if n == 0 {
			continue
		}
		buf.WriteByte(byt[0])

		tail := lastNonEmptyLine(buf.String())
		if tail == "" {
			continue
		}

		if expectedPrompt != "" && strings.HasSuffix(tail, expectedPrompt) {
			return buf.String(), nil
		}
		// Contains rather than HasPrefix so a vendor that wraps its learned
		// hostname in decoration the session strips before comparing (Huawei's
		// `<HOST>` / `[HOST]` forms) still matches once that hostname
		// reappears anywhere in the tail.
		if basePrompt != "" && strings.Contains(tail, basePrompt) && promptTailPattern.MatchString(tail) {
			return buf.String(), nil
		}
		if fastMode && promptTailPattern.MatchString(buf.String()) {
			return buf.String(), nil
		}
	}
}

func lastNonEmptyLine(s string) string {
	lines := strings.Split(s, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			return lines[i]
		}
	}
	return ""
}

// close closes the shell session and underlying SSH client. Idempotent.
func (c *shellChannel) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	var err error
	if c.session != nil {
		err = c.session.Close()
	}
	if c.client != nil {
		if cerr := c.client.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
