package cli

import (
	"errors"
	"fmt"

	"github.com/arthur-debert/linkany/pkg/commands"
	"github.com/arthur-debert/linkany/pkg/types"
	"github.com/spf13/cobra"
)

func newAddCmd(g *globalOptions) *cobra.Command {
	var (
		source   string
		target   string
		kind     string
		atomic   bool
		noAtomic bool
	)

	cmd := &cobra.Command{
		Use:   "add --source <path> --target <path>",
		Short: MsgAddShort,
		Long:  MsgAddLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" || target == "" {
				return errors.New(MsgErrAddNeedsPaths)
			}
			linkKind, err := types.ParseLinkKind(kind)
			if err != nil {
				return fmt.Errorf(MsgErrInvalidKind, kind)
			}
			if atomic && noAtomic {
				return errors.New(MsgErrAtomicExclusive)
			}

			mapping := commands.Mapping{Source: source, Target: target, Kind: linkKind}
			switch {
			case atomic:
				mapping.Atomic = &atomic
			case noAtomic:
				off := false
				mapping.Atomic = &off
			}

			opts, err := g.operationOptions()
			if err != nil {
				return err
			}
			result, _ := commands.Add(mapping, opts)
			return g.render(cmd, result)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", MsgFlagSource)
	cmd.Flags().StringVar(&target, "target", "", MsgFlagTarget)
	cmd.Flags().StringVar(&kind, "kind", "", MsgFlagKind)
	cmd.Flags().BoolVar(&atomic, "atomic", false, MsgFlagAtomic)
	cmd.Flags().BoolVar(&noAtomic, "no-atomic", false, MsgFlagNoAtomic)

	return cmd
}

func newRemoveCmd(g *globalOptions) *cobra.Command {
	var keepLink bool

	cmd := &cobra.Command{
		Use:   "remove <key>",
		Short: MsgRemoveShort,
		Long:  MsgRemoveLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.operationOptions()
			if err != nil {
				return err
			}
			result, _ := commands.Remove(args[0], commands.RemoveOptions{Options: opts, KeepLink: keepLink})
			return g.render(cmd, result)
		},
	}

	cmd.Flags().BoolVar(&keepLink, "keep-link", false, MsgFlagKeepLink)
	return cmd
}

func newInstallCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: MsgInstallShort,
		Long:  MsgInstallLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.operationOptions()
			if err != nil {
				return err
			}
			result, _ := commands.Install(opts)
			return g.render(cmd, result)
		},
	}
}

func newUninstallCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: MsgUninstallShort,
		Long:  MsgUninstallLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.operationOptions()
			if err != nil {
				return err
			}
			result, _ := commands.Uninstall(opts)
			return g.render(cmd, result)
		},
	}
}
