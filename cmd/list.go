package cmd

import (
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/sarahbx/must-oc/internal/core"
	"github.com/sarahbx/must-oc/internal/printer"
	"github.com/sarahbx/must-oc/internal/query"
	"github.com/sarahbx/must-oc/internal/selector"
)

type listOptions struct {
	dirs          []string
	namespace     string
	allNamespaces bool
	clusterScoped bool
	labelSelector string
	reveal        bool
	maxYAMLBytes  int64
}

type listRunOptions struct {
	streams genericiooptions.IOStreams
	opts    listOptions
	kind    string
}

// NewListCmd builds the "list KIND" subcommand.
func NewListCmd(streams genericiooptions.IOStreams) *cobra.Command {
	lo := listOptions{}

	cmd := &cobra.Command{
		Use:   "list KIND",
		Short: "List resources of a given kind across one or more archives",
		Example: `
  # List every pod in namespace "openshift-monitoring"
  must-oc list pods -d must-gather.local.123 -n openshift-monitoring

  # List every pod in every namespace, filtered by label
  must-oc list pods -d must-gather.local.123 --all-namespaces -l app=prometheus

  # List a cluster-scoped kind
  must-oc list nodes -d must-gather.local.123 --cluster
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run := &listRunOptions{streams: streams, opts: lo, kind: args[0]}
			return runList(run)
		},
	}

	f := cmd.Flags()
	f.SortFlags = false
	f.StringSliceVarP(&lo.dirs, "dir", "d", nil, "Archive directories to search (repeatable).")
	//nolint:errcheck
	_ = cmd.MarkFlagRequired("dir")
	f.StringVarP(&lo.namespace, "namespace", "n", "", "Namespace to query.")
	f.BoolVar(&lo.allNamespaces, "all-namespaces", false, "Query every namespace in the archive.")
	f.BoolVar(&lo.clusterScoped, "cluster", false, "Query the cluster-scoped resource tree.")
	f.StringVarP(&lo.labelSelector, "selector", "l", "", "Label selector (see the selector grammar in the docs).")
	f.BoolVar(&lo.reveal, "reveal", false, "Disable redaction for this invocation.")
	f.Int64Var(&lo.maxYAMLBytes, "max-yaml-bytes", 0, "Override the per-file YAML size ceiling.")

	return cmd
}

func runList(run *listRunOptions) error {
	c, err := bootstrap(run.opts.dirs, run.opts.maxYAMLBytes, 0)
	if err != nil {
		return err
	}

	group, plural, err := c.Registry.Resolve(run.kind)
	if err != nil {
		return err
	}
	scope, err := resolveScope(c, plural, run.opts.namespace, run.opts.allNamespaces, run.opts.clusterScoped)
	if err != nil {
		return err
	}
	sel, err := selector.Parse(run.opts.labelSelector)
	if err != nil {
		return err
	}

	q := query.Query{Group: group, Plural: plural, Scope: scope}
	recs, err := c.List(q, core.ListOptions{Selector: sel, Reveal: run.opts.reveal})
	if err != nil {
		return err
	}

	printer.List(run.streams.Out, recs)
	return nil
}
