package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var flagConfigFile string
var flagExpectDrop bool

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config <line...>",
		Short: "Push configuration lines (from --file or positional args)",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := configLines(args)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				return fmt.Errorf("no configuration lines given (use --file or positional arguments)")
			}

			ctx := context.Background()
			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Disconnect(ctx)

			if flagExpectDrop {
				r, err := sess.SendConfigExpectingDrop(ctx, lines)
				return printResult(r, err)
			}
			r, err := sess.SendConfig(ctx, lines)
			return printResult(r, err)
		},
	}
	c.Flags().StringVar(&flagConfigFile, "file", "", "path to a file of configuration lines, one per line")
	c.Flags().BoolVar(&flagExpectDrop, "expect-drop", false, "treat a connection drop mid-push as success")
	return c
}

func newGetConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-config",
		Short: "Fetch the device's current running configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Disconnect(ctx)

			result, err := sess.GetCurrentConfig(ctx)
			return printResult(result, err)
		},
	}
}

func newSaveConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save-config",
		Short: "Persist the device's running configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Disconnect(ctx)

			result, err := sess.SaveConfig(ctx)
			return printResult(result, err)
		},
	}
}

func configLines(args []string) ([]string, error) {
	if flagConfigFile == "" {
		return args, nil
	}
	f, err := os.Open(flagConfigFile)
	if err != nil {
		return nil, fmt.Errorf("opening config file %s: %w", flagConfigFile, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", flagConfigFile, err)
	}
	return append(lines, args...), nil
}
