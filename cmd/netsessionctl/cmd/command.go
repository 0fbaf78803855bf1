package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <command...>",
		Short: "Send a single command and print its sanitized output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Disconnect(ctx)

			result, err := sess.SendCommand(ctx, strings.Join(args, " "))
			return printResult(result, err)
		},
	}
}
