package session

import (
	"context"
	"fmt"

	"golang.org/x/crypto/ssh"
)

// JumpHostSession wraps another Session so every operation first tunnels
// through a bastion: Connect opens an SSH client to the jump host, asks it
// to open a direct-tcpip channel to the target, and runs the wrapped
// Session's setup over that channel. Every other operation delegates
// straight to the wrapped Session (§4.7).
type JumpHostSession struct {
	jump    JumpHost
	target  Credentials
	opts    AdvancedOptions
	inner   Session
	bastion *ssh.Client
}

// WrapWithJumpHost builds a JumpHostSession around inner, which must not
// yet be connected.
func WrapWithJumpHost(jump JumpHost, target Credentials, opts AdvancedOptions, inner Session) *JumpHostSession {
	return &JumpHostSession{jump: jump, target: target, opts: opts, inner: inner}
}

func (j *JumpHostSession) Connect(ctx context.Context) error {
	jumpCreds := Credentials{
		Host:       j.jump.Host,
		Port:       j.jump.Port,
		Username:   j.jump.Username,
		Auth:       j.jump.Auth,
		Password:   j.jump.Password,
		PrivateKey: j.jump.PrivateKey,
		Passphrase: j.jump.Passphrase,
	}.WithPort()

	authMethods := buildAuthMethods(jumpCreds)
	cfg := &ssh.ClientConfig{
		User:            jumpCreds.Username,
		Auth:            authMethods,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         j.opts.ConnectionTimeout,
	}

	bastion, err := dialContext(ctx, jumpCreds.Addr(), cfg)
	if err != nil {
		return fmt.Errorf("%w: jump host dial: %v", ErrConnect, err)
	}
	j.bastion = bastion

	targetAddr := j.target.WithPort().Addr()
	tunnelConn, err := bastion.Dial("tcp", targetAddr)
	if err != nil {
		bastion.Close()
		return fmt.Errorf("%w: jump host tunnel to %s: %v", ErrConnect, targetAddr, err)
	}

	targetAuth := buildAuthMethods(j.target)
	targetCfg := &ssh.ClientConfig{
		User:            j.target.Username,
		Auth:            targetAuth,
		HostKeyCallback: hostKeyCallback(j.target),
		Timeout:         j.opts.ConnectionTimeout,
	}

	c, chans, reqs, err := ssh.NewClientConn(tunnelConn, targetAddr, targetCfg)
	if err != nil {
		bastion.Close()
		return fmt.Errorf("%w: %v", ErrAuthOrAlgorithm, err)
	}
	targetClient := ssh.NewClient(c, chans, reqs)

	ch, err := openShellChannel(targetClient, j.opts.FastMode)
	if err != nil {
		targetClient.Close()
		bastion.Close()
		return err
	}

	bs, ok := j.inner.(*BaseSession)
	if !ok {
		targetClient.Close()
		bastion.Close()
		return fmt.Errorf("%w: jump-host wrapper requires a *BaseSession target", ErrConnect)
	}
	bs.ch = ch
	return bs.SessionPreparation(ctx)
}

// SessionPreparation is a no-op: Connect already ran it once the tunneled
// channel existed, which is the earliest point it could run.
func (j *JumpHostSession) SessionPreparation(ctx context.Context) error {
	return nil
}

func (j *JumpHostSession) SendCommand(ctx context.Context, command string) (CommandResult, error) {
	return j.inner.SendCommand(ctx, command)
}

func (j *JumpHostSession) SendConfig(ctx context.Context, lines []string) (CommandResult, error) {
	return j.inner.SendConfig(ctx, lines)
}

func (j *JumpHostSession) SendConfigExpectingDrop(ctx context.Context, lines []string) (CommandResult, error) {
	return j.inner.SendConfigExpectingDrop(ctx, lines)
}

func (j *JumpHostSession) GetCurrentConfig(ctx context.Context) (CommandResult, error) {
	return j.inner.GetCurrentConfig(ctx)
}

func (j *JumpHostSession) SaveConfig(ctx context.Context) (CommandResult, error) {
	return j.inner.SaveConfig(ctx)
}

func (j *JumpHostSession) RebootDevice(ctx context.Context) (CommandResult, error) {
	return j.inner.RebootDevice(ctx)
}

func (j *JumpHostSession) Authorize(ctx context.Context, secret string) error {
	return j.inner.Authorize(ctx, secret)
}

// Disconnect closes the inner (target) session first, then the bastion client.
func (j *JumpHostSession) Disconnect(ctx context.Context) error {
	err := j.inner.Disconnect(ctx)
	if j.bastion != nil {
		if berr := j.bastion.Close(); berr != nil && err == nil {
			err = berr
		}
	}
	return err
}
