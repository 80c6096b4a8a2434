package cli

import (
	"errors"
	"fmt"

	"github.com/arthur-debert/linkany/pkg/config"
	"github.com/spf13/cobra"
)

func newManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: MsgManifestShort,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <path>",
		Short: MsgManifestSet,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := config.SetDefaultManifestPath(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), abs)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: MsgManifestShow,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultManifestPath()
			if err != nil {
				return err
			}
			if path == "" {
				return &ExitError{Code: 2, Err: errors.New(MsgErrNoDefault)}
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: MsgManifestClear,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.ClearDefaultManifestPath()
		},
	})

	return cmd
}
