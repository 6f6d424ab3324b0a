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

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the API key (read from stdin when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) == 1 {
			key = args[0]
		} else {
			fmt.Fprint(os.Stderr, "API key: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read key: %w", err)
			}
			key = line
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return errors.New("empty key; use `quizbank key clear` to remove the stored key")
		}
		return withService(cmd, func(svc *trivia.Service) error {
			if err := svc.Bank().SetCredential(cmd.Context(), key); err != nil {
				return errors.New(trivia.UserMessage(err))
			}
			fmt.Println("API key saved.")
			return nil
		})
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the API key in use (masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(svc *trivia.Service) error {
			stored, err := svc.Bank().Credential(cmd.Context())
			if err != nil {
				return err
			}
			active, err := svc.Credential(cmd.Context())
			if err != nil {
				return err
			}
			switch {
			case stored != "":
				fmt.Printf("stored: %s\n", trivia.MaskKey(stored))
			case active != "":
				fmt.Printf("from environment: %s\n", trivia.MaskKey(active))
			default:
				fmt.Println("No API key set.")
			}
			return nil
		})
	},
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(svc *trivia.Service) error {
			if err := svc.Bank().SetCredential(cmd.Context(), ""); err != nil {
				return errors.New(trivia.UserMessage(err))
			}
			fmt.Println("Stored API key removed.")
			return nil
		})
	},
}

// withService opens the configured backend for the duration of fn.
func withService(cmd *cobra.Command, fn func(*trivia.Service) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := logging.IntoContext(cmd.Context(), logging.New(cfg.LogLevel))
	svc, be, err := openService(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer be.Close()
	return fn(svc)
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyShowCmd)
	keyCmd.AddCommand(keyClearCmd)
}
