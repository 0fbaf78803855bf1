package cmd

import (
	"fmt"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/sh1/netsession/internal/session"
)

// inventoryDevice is one entry of a YAML device inventory file, the
// fleet-pointing alternative to spelling every --host/--username flag by
// hand for each invocation.
type inventoryDevice struct {
	Name           string            `yaml:"name"`
	Host           string            `yaml:"host"`
	Port           int               `yaml:"port"`
	Username       string            `yaml:"username"`
	Password       string            `yaml:"password"`
	PrivateKey     string            `yaml:"private_key"`
	Passphrase     string            `yaml:"passphrase"`
	EnablePassword string            `yaml:"enable_password"`
	DeviceType     string            `yaml:"device_type"`
	JumpHost       *inventoryJumpKey `yaml:"jump_host"`
}

type inventoryJumpKey struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type inventory struct {
	Devices []inventoryDevice `yaml:"devices"`
}

func loadInventory(path string) (inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return inventory{}, fmt.Errorf("reading inventory %s: %w", path, err)
	}
	var inv inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return inventory{}, fmt.Errorf("parsing inventory %s: %w", path, err)
	}
	return inv, nil
}

func findDevice(inv inventory, name string) (inventoryDevice, error) {
	for _, d := range inv.Devices {
		if d.Name == name {
			return d, nil
		}
	}
	return inventoryDevice{}, fmt.Errorf("device %q not found in inventory", name)
}

// resolveCredentials builds session.Credentials from --inventory/--target
// when both are set, otherwise from the individual connection flags. On the
// flags path, a missing password is prompted for interactively when stdin is
// a terminal and no private key was supplied; inventory entries are used
// as written, without a prompt. --device-type is required except for the
// detect command, which is how an operator learns it in the first place.
func resolveCredentials() (session.Credentials, error) {
	return resolveCredentialsFor(true)
}

func resolveCredentialsForDetect() (session.Credentials, error) {
	return resolveCredentialsFor(false)
}

func resolveCredentialsFor(requireDeviceType bool) (session.Credentials, error) {
	if flagInventory != "" && flagTarget != "" {
		inv, err := loadInventory(flagInventory)
		if err != nil {
			return session.Credentials{}, err
		}
		dev, err := findDevice(inv, flagTarget)
		if err != nil {
			return session.Credentials{}, err
		}
		creds := session.Credentials{
			Host:           dev.Host,
			Port:           dev.Port,
			Username:       dev.Username,
			Password:       dev.Password,
			PrivateKey:     dev.PrivateKey,
			Passphrase:     dev.Passphrase,
			EnablePassword: dev.EnablePassword,
			DeviceType:     dev.DeviceType,
			SkipHostKeyCheck: flagSkipHostKey,
		}
		if dev.PrivateKey != "" {
			creds.Auth = session.AuthPrivateKey
		}
		if dev.JumpHost != nil {
			creds.JumpHost = &session.JumpHost{
				Host:     dev.JumpHost.Host,
				Port:     dev.JumpHost.Port,
				Username: dev.JumpHost.Username,
				Password: dev.JumpHost.Password,
			}
		}
		return creds, nil
	}

	if flagHost == "" || flagUsername == "" {
		return session.Credentials{}, fmt.Errorf("--host and --username are required (or --inventory with --target)")
	}
	if requireDeviceType && flagDeviceType == "" {
		return session.Credentials{}, fmt.Errorf("--device-type is required; run 'netsessionctl detect' first if unknown")
	}

	creds := session.Credentials{
		Host:             flagHost,
		Port:             flagPort,
		Username:         flagUsername,
		Password:         flagPassword,
		PrivateKey:       flagPrivateKey,
		Passphrase:       flagPassphrase,
		EnablePassword:   flagEnablePassword,
		DeviceType:       flagDeviceType,
		SkipHostKeyCheck: flagSkipHostKey,
	}
	if flagPrivateKey != "" {
		creds.Auth = session.AuthPrivateKey
	}
	if flagJumpHost != "" {
		creds.JumpHost = &session.JumpHost{
			Host:     flagJumpHost,
			Port:     22,
			Username: flagJumpUsername,
			Password: flagJumpPassword,
		}
	}

	if creds.Password == "" && creds.PrivateKey == "" {
		pw, err := promptPassword()
		if err != nil {
			return session.Credentials{}, err
		}
		creds.Password = pw
	}

	return creds, nil
}

// promptPassword reads a password from the controlling terminal without
// echoing it back, refusing to block on a non-interactive stdin (a pipe or
// redirect) where there would be nothing for the user to type.
func promptPassword() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no --password given and stdin is not a terminal to prompt on")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}
