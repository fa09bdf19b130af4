package cmd

import (
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"
)

// NewRootCmd builds the must-oc root command and wires every subcommand
// onto it.
func NewRootCmd(streams genericiooptions.IOStreams) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "must-oc",
		Short:         "Query an offline must-gather/must-oc archive without touching a live cluster.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})

	rootCmd.AddCommand(NewListCmd(streams))
	rootCmd.AddCommand(NewGetCmd(streams))
	rootCmd.AddCommand(NewDescribeCmd(streams))
	rootCmd.AddCommand(NewLogsCmd(streams))
	rootCmd.AddCommand(NewUpdateTypesCmd(streams))
	return rootCmd
}
