package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sh1/netsession/internal/session"
)

func TestResolve_UnsupportedDeviceType(t *testing.T) {
	_, err := resolve("does_not_exist")
	require.Error(t, err)

	var unsupported *session.UnsupportedDeviceError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "does_not_exist", unsupported.Tag)
	assert.NotEmpty(t, unsupported.Supported)
}

func TestResolve_IsCaseInsensitive(t *testing.T) {
	factory, err := resolve("CISCO_IOS")
	require.NoError(t, err)
	assert.NotNil(t, factory())
}

func TestDispatcherBuild_PlainSession(t *testing.T) {
	d := New()
	creds := session.Credentials{
		Host: "10.0.0.1", Port: 22, Username: "admin", Password: "x", DeviceType: "linux",
	}

	sess, err := d.Build(creds, session.DefaultAdvancedOptions())
	require.NoError(t, err)

	_, isJumpWrapped := sess.(*session.JumpHostSession)
	assert.False(t, isJumpWrapped, "no jump host given, session should not be wrapped")

	_, isBase := sess.(*session.BaseSession)
	assert.True(t, isBase)
}

func TestDispatcherBuild_WrapsJumpHost(t *testing.T) {
	d := New()
	creds := session.Credentials{
		Host: "10.0.0.1", Port: 22, Username: "admin", Password: "x", DeviceType: "linux",
		JumpHost: &session.JumpHost{
			Host: "bastion.example.com", Port: 22, Username: "jumper",
			Auth: session.AuthPassword, Password: "jump-secret",
		},
	}
	require.True(t, creds.JumpHost.Complete())

	sess, err := d.Build(creds, session.DefaultAdvancedOptions())
	require.NoError(t, err)

	_, isJumpWrapped := sess.(*session.JumpHostSession)
	assert.True(t, isJumpWrapped, "complete jump host should wrap the session")
}

func TestDispatcherBuild_UnknownDeviceType(t *testing.T) {
	d := New()
	creds := session.Credentials{Host: "10.0.0.1", Username: "admin", DeviceType: "not_a_real_vendor"}

	_, err := d.Build(creds, session.DefaultAdvancedOptions())
	require.Error(t, err)
}
