package cli

import (
	"context"
	"io"

	"github.com/specialistvlad/toolchaingo/internal/app"
	"github.com/spf13/cobra"
)

func newDescCommand(flags *globalFlags, outW, errW io.Writer) *cobra.Command {
	var (
		format     string
		toolchains []string
	)
	cmd := &cobra.Command{
		Use:   "desc [PATH]",
		Short: "Print the defined toolchains",
		Long: "Evaluate every *.hcl file under PATH (default: current directory) and\n" +
			"print the resulting toolchains as YAML or HCL.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := newConfig(flags, args, format)
			if err != nil {
				return err
			}
			return runApp(cmd.Context(), cfg, outW, errW, func(ctx context.Context, a *app.App) error {
				return a.Describe(ctx, toolchains)
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format. Options: 'yaml' or 'hcl'.")
	cmd.Flags().StringArrayVarP(&toolchains, "toolchain", "t", nil, "Only print this toolchain label (repeatable).")
	return cmd
}
