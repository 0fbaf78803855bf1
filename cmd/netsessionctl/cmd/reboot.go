package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var flagRebootConfirm bool

func newRebootCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "reboot",
		Short: "Reboot the device",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !flagRebootConfirm {
				return fmt.Errorf("refusing to reboot without --yes")
			}

			ctx := context.Background()
			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Disconnect(ctx)

			result, err := sess.RebootDevice(ctx)
			return printResult(result, err)
		},
	}
	c.Flags().BoolVar(&flagRebootConfirm, "yes", false, "confirm the reboot")
	return c
}
