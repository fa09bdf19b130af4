// Command must-oc queries an offline must-gather/must-oc archive: list and
// describe the resources it captured, stream a container's log, and keep
// the local Type Registry up to date, all without ever touching a live
// cluster.
package main

import (
	"fmt"
	"os"

	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/sarahbx/must-oc/cmd"
)

func main() {
	streams := genericiooptions.IOStreams{
		In:     os.Stdin,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}

	root := cmd.NewRootCmd(streams)
	if err := root.Execute(); err != nil {
		// Exit-code contract: 0 on success, non-zero on any fatal core
		// error. The root command silences cobra's own error printing, so
		// the diagnostic is written to stderr here.
		fmt.Fprintln(streams.ErrOut, err)
		os.Exit(1)
	}
}
