package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/twizmwazin/yodalib/host"
)

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List registered decompiler backends",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()

			registered := host.Backends()
			if len(registered) == 0 {
				fmt.Fprintln(out, "registered:  (none)")
			} else {
				fmt.Fprintf(out, "registered:  %s\n", strings.Join(registered, ", "))
			}
			fmt.Fprintf(out, "probe order: %s\n", strings.Join(host.Priority(), ", "))
			fmt.Fprintf(out, "default:     %s\n", host.DefaultBackend)
		},
	}
}
