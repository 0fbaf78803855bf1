package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sh1/netsession/internal/dispatch"
)

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Probe a device and print its detected device-type tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := resolveCredentialsForDetect()
			if err != nil {
				return err
			}

			ctx := context.Background()
			tag, err := dispatch.AutoDetect(ctx, creds, advancedOptions())
			if err != nil {
				return err
			}
			if tag == "" {
				return fmt.Errorf("could not determine device type from banner/prompt text")
			}
			fmt.Println(tag)
			return nil
		},
	}
}
