package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/twizmwazin/yodalib/ctype"
	"github.com/twizmwazin/yodalib/decompiler"
)

func newTypeCmd() *cobra.Command {
	var structNames []string

	cmd := &cobra.Command{
		Use:   "type <descriptor>",
		Short: "Parse a C type descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, ok := ctype.NewParser().Parse(args[0])
			if !ok {
				return fmt.Errorf("cannot parse type %q", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "base:      %s\n", typ.Base)
			fmt.Fprintf(out, "pointers:  %d\n", typ.Pointers)
			if typ.IsArray {
				fmt.Fprintf(out, "array len: %d\n", typ.ArrayLen)
			}
			if typ.IsFunc {
				fmt.Fprintln(out, "function:  true")
			}
			fmt.Fprintf(out, "primitive: %t\n", typ.Primitive)

			if typ.UserDefined() && len(structNames) > 0 {
				index := make(decompiler.StructSet, len(structNames))
				for _, name := range structNames {
					index[name] = true
				}
				fmt.Fprintf(out, "known:     %t\n", index.HasStruct(typ.Base))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&structNames, "struct", nil, "struct name known to the binary (repeatable)")

	return cmd
}
