package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/sarahbx/must-oc/internal/config"
	"github.com/sarahbx/must-oc/internal/core"
	"github.com/sarahbx/must-oc/internal/printer"
	"github.com/sarahbx/must-oc/internal/registry"
)

type updateTypesOptions struct {
	dirs []string
}

type updateTypesRunOptions struct {
	streams genericiooptions.IOStreams
	opts    updateTypesOptions
}

// NewUpdateTypesCmd builds the "update-types" subcommand.
func NewUpdateTypesCmd(streams genericiooptions.IOStreams) *cobra.Command {
	uo := updateTypesOptions{}

	cmd := &cobra.Command{
		Use:   "update-types",
		Short: "Discover new resource kinds in one or more archives and merge them into the Type Registry",
		Example: `
  must-oc update-types -d must-gather.local.123 -d must-gather.local.456
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			run := &updateTypesRunOptions{streams: streams, opts: uo}
			return runUpdateTypes(cmd.Context(), run)
		},
	}

	f := cmd.Flags()
	f.SortFlags = false
	f.StringSliceVarP(&uo.dirs, "dir", "d", nil, "Archive directories to walk (repeatable).")
	//nolint:errcheck
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

func runUpdateTypes(ctx context.Context, run *updateTypesRunOptions) error {
	cfgDir, err := config.Dir()
	if err != nil {
		return err
	}

	// Concurrent invocations are unsupported; the lock turns that into an
	// explicit wait instead of a silent last-rename-wins race.
	lock, err := registry.Lock(ctx, cfgDir)
	if err != nil {
		return err
	}
	defer lock.Close()

	reg, err := registry.Load(cfgDir)
	if err != nil {
		return err
	}

	c := core.New(nil, reg, noopLogger(), 0, 0)
	summary, err := c.UpdateTypes(run.opts.dirs)
	if err != nil {
		return err
	}

	if err := registry.Store(cfgDir, reg); err != nil {
		return err
	}

	printer.UpdateSummary(run.streams.Out, summary)
	return nil
}
