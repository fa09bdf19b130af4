package cmd

import (
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/sarahbx/must-oc/internal/printer"
	"github.com/sarahbx/must-oc/internal/query"
	"github.com/sarahbx/must-oc/internal/record"
)

type getOptions struct {
	dirs          []string
	namespace     string
	allNamespaces bool
	clusterScoped bool
	reveal        bool
	maxYAMLBytes  int64
}

type getRunOptions struct {
	streams genericiooptions.IOStreams
	opts    getOptions
	kind    string
	name    string
	describe bool
}

// NewGetCmd builds the "get KIND NAME" subcommand.
func NewGetCmd(streams genericiooptions.IOStreams) *cobra.Command {
	return newGetLikeCmd(streams, "get", "Fetch a single named resource", false)
}

// NewDescribeCmd builds the "describe KIND NAME" subcommand: the same core
// get(q) operation as NewGetCmd, rendered field-by-field instead of as a
// table row.
func NewDescribeCmd(streams genericiooptions.IOStreams) *cobra.Command {
	return newGetLikeCmd(streams, "describe", "Show every field of a single named resource", true)
}

func newGetLikeCmd(streams genericiooptions.IOStreams, use, short string, describe bool) *cobra.Command {
	gopts := getOptions{}

	cmd := &cobra.Command{
		Use:   use + " KIND NAME",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			run := &getRunOptions{
				streams:  streams,
				opts:     gopts,
				kind:     args[0],
				name:     args[1],
				describe: describe,
			}
			return runGet(run)
		},
	}

	f := cmd.Flags()
	f.SortFlags = false
	f.StringSliceVarP(&gopts.dirs, "dir", "d", nil, "Archive directories to search (repeatable).")
	//nolint:errcheck
	_ = cmd.MarkFlagRequired("dir")
	f.StringVarP(&gopts.namespace, "namespace", "n", "", "Namespace to query.")
	f.BoolVar(&gopts.allNamespaces, "all-namespaces", false, "Search every namespace for a match.")
	f.BoolVar(&gopts.clusterScoped, "cluster", false, "Query the cluster-scoped resource tree.")
	f.BoolVar(&gopts.reveal, "reveal", false, "Disable redaction for this invocation.")
	f.Int64Var(&gopts.maxYAMLBytes, "max-yaml-bytes", 0, "Override the per-file YAML size ceiling.")

	return cmd
}

func runGet(run *getRunOptions) error {
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

	q := query.Query{Group: group, Plural: plural, Scope: scope, Name: run.name}
	rec, err := c.Get(q, run.opts.reveal)
	if err != nil {
		return err
	}

	if run.describe {
		printer.Describe(run.streams.Out, rec)
	} else {
		printer.List(run.streams.Out, []*record.Record{rec})
	}
	return nil
}
