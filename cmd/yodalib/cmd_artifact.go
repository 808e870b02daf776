package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/twizmwazin/yodalib/artifact"
	"github.com/twizmwazin/yodalib/lifter"
)

func newArtifactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifact",
		Short: "Translate artifact dumps between address spaces",
	}

	cmd.AddCommand(newArtifactTranslateCmd("lift",
		"Rebase a native artifact dump into the canonical address space", lifter.Lift))
	cmd.AddCommand(newArtifactTranslateCmd("lower",
		"Rebase a canonical artifact dump into the native address space", lifter.Lower))

	return cmd
}

func newArtifactTranslateCmd(name, short string, translate func(lifter.Lifter, artifact.Artifact) artifact.Artifact) *cobra.Command {
	var kindName string
	var baseSpec string
	var configPath string
	var outPath string

	cmd := &cobra.Command{
		Use:   name + " <file.toml>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := artifact.ParseKind(kindName)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			base, err := cfg.imageBase()
			if err != nil {
				return fmt.Errorf("invalid image base %q: %w", cfg.Lifter.ImageBase, err)
			}
			if baseSpec != "" {
				base, err = strconv.ParseUint(baseSpec, 0, 64)
				if err != nil {
					return fmt.Errorf("invalid image base %q: %w", baseSpec, err)
				}
			}

			ctx := context.Background()
			a, err := artifact.Load(ctx, args[0], kind)
			if err != nil {
				return err
			}

			translated := translate(lifter.New(base, cfg.Lifter.TypeMap), a)

			if outPath != "" {
				return artifact.Save(ctx, outPath, translated)
			}
			data, err := artifact.EncodeTOML(translated)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&kindName, "kind", "function", "artifact kind stored in the dump")
	cmd.Flags().StringVar(&baseSpec, "base", "", "image base, decimal or 0x hex (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config with lifter settings")
	cmd.Flags().StringVar(&outPath, "out", "", "write the result here instead of stdout")

	return cmd
}
