package cmd

import (
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/sarahbx/must-oc/internal/query"
)

type logsOptions struct {
	dirs         []string
	namespace    string
	container    string
	previous     bool
	maxLogBytes  int64
}

type logsRunOptions struct {
	streams genericiooptions.IOStreams
	opts    logsOptions
	pod     string
}

// NewLogsCmd builds the "logs POD" subcommand.
func NewLogsCmd(streams genericiooptions.IOStreams) *cobra.Command {
	lo := logsOptions{}

	cmd := &cobra.Command{
		Use:   "logs POD",
		Short: "Stream a container's log from the archive",
		Example: `
  # Stream a pod's single-container current log
  must-oc logs my-pod -d must-gather.local.123 -n openshift-monitoring

  # Stream a named container's previous log
  must-oc logs my-pod -d must-gather.local.123 -n ns -c sidecar --previous
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run := &logsRunOptions{streams: streams, opts: lo, pod: args[0]}
			return runLogs(run)
		},
	}

	f := cmd.Flags()
	f.SortFlags = false
	f.StringSliceVarP(&lo.dirs, "dir", "d", nil, "Archive directories to search (repeatable).")
	//nolint:errcheck
	_ = cmd.MarkFlagRequired("dir")
	f.StringVarP(&lo.namespace, "namespace", "n", "", "Namespace the pod lives in.")
	//nolint:errcheck
	_ = cmd.MarkFlagRequired("namespace")
	f.StringVarP(&lo.container, "container", "c", "", "Container name (required if the pod has more than one).")
	f.BoolVar(&lo.previous, "previous", false, "Stream the previous (crashed) container's log.")
	f.Int64Var(&lo.maxLogBytes, "max-log-bytes", 0, "Override the log byte ceiling before truncation.")

	return cmd
}

func runLogs(run *logsRunOptions) error {
	c, err := bootstrap(run.opts.dirs, 0, run.opts.maxLogBytes)
	if err != nil {
		return err
	}

	variant := query.LogCurrent
	if run.opts.previous {
		variant = query.LogPrevious
	}

	var lastErr error
	for _, root := range c.Roots {
		h := query.LogHandle{
			ArchiveRoot: root.Path,
			Namespace:   run.opts.namespace,
			Pod:         run.pod,
			Container:   run.opts.container,
			Variant:     variant,
		}
		if err := c.StreamLog(h, run.streams.Out); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
