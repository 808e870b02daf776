package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/twizmwazin/yodalib/host"
)

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <binary>",
		Short: "Print the MD5 content hash of a binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := host.BinaryHash(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sum)
			return nil
		},
	}
}
