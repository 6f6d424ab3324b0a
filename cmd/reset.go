package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/logging"
	"github.com/abhisek/quizbank/internal/trivia"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every saved question and the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Print("This deletes all saved questions and the stored API key. Continue? [y/N] ")
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		svc, be, err := openService(logging.IntoContext(ctx, logging.New(cfg.LogLevel)), cfg, nil)
		if err != nil {
			return err
		}
		defer be.Close()

		if err := svc.Reset(ctx); err != nil {
			return errors.New(trivia.UserMessage(err))
		}
		fmt.Println("Question bank cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
