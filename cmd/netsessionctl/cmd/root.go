// Package cmd implements netsessionctl, an operator CLI that exercises one
// device session at a time: dial, send-command, send-config, get-config,
// save-config, reboot, auto-detect. It is deliberately thin - no workflow
// engine, no scheduling, no fleet-wide fan-out - standing in for the calling
// layer the session engine itself stays agnostic of.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sh1/netsession/internal/logging"
	"github.com/sh1/netsession/internal/session"
)

var (
	flagHost           string
	flagPort           int
	flagUsername       string
	flagPassword       string
	flagPrivateKey     string
	flagPassphrase     string
	flagEnablePassword string
	flagDeviceType     string
	flagInventory      string
	flagTarget         string
	flagJumpHost       string
	flagJumpUsername   string
	flagJumpPassword   string

	flagFastMode    bool
	flagPool        bool
	flagSkipHostKey bool
	flagTimeout     time.Duration
	flagVerbose     bool
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "netsessionctl",
	Short:         "Drive one multi-vendor network-device SSH session",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `netsessionctl opens a single session against a network device and
drives it through one operation: a command, a config push, a config fetch,
a save, a reboot, or a device-type auto-detection probe.

Target a device with --host/--username/--password (or --key) plus
--device-type, or point --inventory/--target at a YAML device list.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagVerbose {
			logging.SetGlobal(logging.Global().Level(zerolog.DebugLevel))
		}
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagHost, "host", "", "device hostname or IP")
	flags.IntVar(&flagPort, "port", 22, "SSH port")
	flags.StringVar(&flagUsername, "username", "", "SSH username")
	flags.StringVar(&flagPassword, "password", "", "SSH password (prompted if omitted and no key given)")
	flags.StringVar(&flagPrivateKey, "key", "", "path to a private key file")
	flags.StringVar(&flagPassphrase, "passphrase", "", "private key passphrase")
	flags.StringVar(&flagEnablePassword, "enable-password", "", "enable/admin password for vendors that gate privileged mode")
	flags.StringVar(&flagDeviceType, "device-type", "", "device type tag (cisco_ios, juniper_junos, ...); run 'netsessionctl detect' if unknown")

	flags.StringVar(&flagInventory, "inventory", "", "path to a YAML device inventory file")
	flags.StringVar(&flagTarget, "target", "", "device name to resolve from --inventory")

	flags.StringVar(&flagJumpHost, "jump-host", "", "bastion host to tunnel through (SSH port 22)")
	flags.StringVar(&flagJumpUsername, "jump-username", "", "bastion SSH username")
	flags.StringVar(&flagJumpPassword, "jump-password", "", "bastion SSH password")

	flags.BoolVar(&flagFastMode, "fast", false, "shorten command timeouts for trusted, low-latency links")
	flags.BoolVar(&flagPool, "pool", false, "reuse a pooled connection for this device instead of dialing fresh")
	flags.BoolVar(&flagSkipHostKey, "skip-host-key-check", false, "skip SSH host key verification (insecure)")
	flags.DurationVar(&flagTimeout, "timeout", 15*time.Second, "connection timeout")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newRunCmd(),
		newConfigCmd(),
		newGetConfigCmd(),
		newSaveConfigCmd(),
		newRebootCmd(),
		newDetectCmd(),
	)
}

// advancedOptions builds session.AdvancedOptions from the persistent flags.
func advancedOptions() session.AdvancedOptions {
	return session.MergeOptions(session.AdvancedOptions{
		ConnectionTimeout: flagTimeout,
		FastMode:          flagFastMode,
		ConnectionPooling: flagPool,
	})
}
