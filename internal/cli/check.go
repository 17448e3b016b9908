package cli

import (
	"context"
	"io"

	"github.com/specialistvlad/toolchaingo/internal/app"
	"github.com/spf13/cobra"
)

func newCheckCommand(flags *globalFlags, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "check [PATH]",
		Short: "Evaluate declarations and report the defined toolchains",
		Long: "Evaluate every *.hcl file under PATH (default: current directory) and\n" +
			"report the toolchains they define. Exits non-zero on the first error.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := newConfig(flags, args, "")
			if err != nil {
				return err
			}
			return runApp(cmd.Context(), cfg, outW, errW, func(ctx context.Context, a *app.App) error {
				return a.Check(ctx)
			})
		},
	}
}
