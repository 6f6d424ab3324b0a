package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/logging"
	"github.com/abhisek/quizbank/internal/quiz"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the question bank as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx = logging.IntoContext(ctx, logging.New(cfg.LogLevel))

		svc, be, err := openService(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer be.Close()

		items := svc.Bank().Export()
		if lf, _ := cmd.Flags().GetString("level"); lf != "" {
			level, err := quiz.ParseLevel(lf)
			if err != nil {
				return err
			}
			items = svc.Bank().Items(level)
		}

		var w io.Writer = os.Stdout
		if out, _ := cmd.Flags().GetString("out"); out != "" && out != "-" {
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if err := quiz.WriteCSV(w, items); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%d questions exported\n", len(items))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "Output file (stdout when empty)")
	exportCmd.Flags().StringP("level", "l", "", "Export only this level")
}
