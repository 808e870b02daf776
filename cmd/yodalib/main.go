package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "yodalib",
		Short: "Inspect and translate decompiler artifacts",
	}

	root.AddCommand(newVersionCmd())
	root.AddCommand(newBackendsCmd())
	root.AddCommand(newTypeCmd())
	root.AddCommand(newArtifactCmd())
	root.AddCommand(newHashCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("yodalib 0.1.0-dev")
		},
	}
}
