package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sh1/netsession/internal/dispatch"
	"github.com/sh1/netsession/internal/session"
)

// openSession resolves credentials from flags/inventory and opens a
// connected, prepared Session via the Dispatcher, honoring --pool.
func openSession(ctx context.Context) (session.Session, error) {
	creds, err := resolveCredentials()
	if err != nil {
		return nil, err
	}

	var d *dispatch.Dispatcher
	if flagPool {
		d = dispatch.NewWithPool(session.DefaultPoolConfig())
	} else {
		d = dispatch.New()
	}

	sess, err := d.Open(ctx, creds, advancedOptions())
	if err != nil {
		return nil, fmt.Errorf("opening session to %s: %w", creds.Host, err)
	}
	return sess, nil
}

// printResult writes a CommandResult's output to stdout and returns an error
// for a non-zero-exit-worthy failure so cobra's RunE surfaces it uniformly.
func printResult(result session.CommandResult, err error) error {
	if result.Output != "" {
		fmt.Fprintln(os.Stdout, result.Output)
	}
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("command failed: %s", result.Error)
	}
	return nil
}
