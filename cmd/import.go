package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/logging"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/trivia"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import questions from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx = logging.IntoContext(ctx, logging.New(cfg.LogLevel))

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		items, err := quiz.ReadCSV(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		if len(items) == 0 {
			fmt.Println("No valid questions found.")
			return nil
		}

		mode := bank.ImportMerge
		if replace, _ := cmd.Flags().GetBool("replace"); replace {
			mode = bank.ImportReplace
		}

		svc, be, err := openService(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer be.Close()

		results, err := svc.Import(ctx, items, mode)
		for _, l := range quiz.Levels() {
			r, ok := results[l]
			if !ok {
				continue
			}
			fmt.Printf("%-13s %4d added  %4d duplicates  %4d evicted  %4d total\n",
				l.Label(), r.Added, r.Skipped, r.Evicted, r.Total)
		}
		if err != nil {
			return errors.New(trivia.UserMessage(err))
		}
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("replace", false, "Replace the bank instead of merging into it")
}
