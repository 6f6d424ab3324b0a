package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/autofill"
	"github.com/abhisek/quizbank/internal/logging"
	"github.com/abhisek/quizbank/internal/metrics"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/trivia"
)

var autofillCmd = &cobra.Command{
	Use:   "autofill",
	Short: "Generate batches until a level holds the target number of questions",
	Long: "autofill keeps generating batches for one level until the bank holds --target questions. " +
		"Failures are paced and retried; press Ctrl+C to stop after the current step.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := logging.New(cfg.LogLevel)

		levelFlag, _ := cmd.Flags().GetString("level")
		level, err := quiz.ParseLevel(levelFlag)
		if err != nil {
			return err
		}
		target, _ := cmd.Flags().GetInt("target")
		if target <= 0 {
			return errors.New("--target must be positive")
		}
		if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
			cfg.MetricsAddr = addr
		}

		ctx, stop := signal.NotifyContext(logging.IntoContext(cmd.Context(), logger), os.Interrupt, syscall.SIGTERM)
		defer stop()

		collector := metrics.New()
		if cfg.MetricsAddr != "" {
			go func() {
				if err := collector.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
					logger.Error().Err(err).Msg("metrics server failed")
				}
			}()
		}

		svc, be, err := openService(ctx, cfg, collector)
		if err != nil {
			return err
		}
		defer be.Close()

		last := ""
		res, err := svc.StartAutoFill(ctx, level, target, func(p autofill.Progress) {
			line := fmt.Sprintf("[%s %d/%d] %s", p.Level, p.Current, p.Target, p.Status)
			if p.Stopping {
				line += " (stopping)"
			}
			if line != last {
				fmt.Fprintln(os.Stderr, line)
				last = line
			}
		})
		if err != nil {
			return errors.New(trivia.UserMessage(err))
		}

		fmt.Printf("%s: %d/%d questions, %d added in %d batches (%s)\n",
			res.Level.Label(), res.Count, res.Target, res.Added, res.Batches, res.Reason)
		return nil
	},
}

func init() {
	autofillCmd.Flags().StringP("level", "l", string(quiz.LevelBeginner), "Difficulty level to fill")
	autofillCmd.Flags().IntP("target", "n", 100, "Number of questions the level should hold")
	autofillCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}
