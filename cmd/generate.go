package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/generator"
	"github.com/abhisek/quizbank/internal/logging"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/trivia"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one batch of questions and save it to the bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx = logging.IntoContext(ctx, logging.New(cfg.LogLevel))

		levelFlag, _ := cmd.Flags().GetString("level")
		level, err := quiz.ParseLevel(levelFlag)
		if err != nil {
			return err
		}
		count, _ := cmd.Flags().GetInt("count")
		topic, _ := cmd.Flags().GetString("topic")
		asCSV, _ := cmd.Flags().GetBool("csv")

		svc, be, err := openService(ctx, cfg, nil)
		if err != nil {
			return err
		}
		defer be.Close()

		batch, err := svc.Generate(ctx, generator.Config{Level: level, Count: count, Topic: topic})
		if err != nil {
			return errors.New(trivia.UserMessage(err))
		}

		if asCSV {
			if err := quiz.WriteCSV(os.Stdout, batch.Items); err != nil {
				return err
			}
		} else {
			for i, it := range batch.Items {
				fmt.Printf("%2d. %s\n", i+1, it.Question)
				for j, opt := range it.Options() {
					mark := " "
					if j == it.CorrectIdx {
						mark = "*"
					}
					fmt.Printf("    %s %c) %s\n", mark, 'A'+rune(j), opt)
				}
			}
			fmt.Println()
		}

		fmt.Fprintf(os.Stderr, "%s: %d generated, %d added, %d duplicates, %d evicted, %d in bank\n",
			level.Label(), len(batch.Items), batch.Merge.Added, batch.Merge.Skipped, batch.Merge.Evicted, batch.Merge.Total)
		if batch.SaveErr != nil {
			fmt.Fprintln(os.Stderr, "warning:", trivia.UserMessage(batch.SaveErr))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("level", "l", string(quiz.LevelBeginner), "Difficulty level (beginner, intermediate, advanced, expert)")
	generateCmd.Flags().IntP("count", "c", generator.DefaultCount, "Number of questions to request")
	generateCmd.Flags().StringP("topic", "t", "", "Topic (random when empty)")
	generateCmd.Flags().Bool("csv", false, "Print the batch as CSV instead of text")
}
