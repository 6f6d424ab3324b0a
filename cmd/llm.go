package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/llm"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect generation requests",
	Long: `Inspect the log of generation requests. Every attempt, retries included,
is recorded with its level, batch and outcome. Only the sqlite store keeps
this log.`,
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent generation attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := listOpts(cmd)
		if err != nil {
			return err
		}

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No generation requests recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTIME\tPURPOSE\tLEVEL\tBATCH\tMODEL\tIN\tOUT\tMS\tRESULT")
		for _, e := range events {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
				e.ID,
				e.Timestamp.Local().Format(timeLayout),
				e.Purpose,
				dash(e.Level),
				dash(shortBatch(e.BatchID)),
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				outcome(e.LLMRequestEventData),
			)
		}
		return w.Flush()
	},
}

func listOpts(cmd *cobra.Command) (store.QueryOpts, error) {
	limit, _ := cmd.Flags().GetInt("limit")
	purpose, _ := cmd.Flags().GetString("purpose")
	levelFlag, _ := cmd.Flags().GetString("level")
	batch, _ := cmd.Flags().GetString("batch")
	failed, _ := cmd.Flags().GetBool("failed")

	opts := store.QueryOpts{Limit: limit, Purpose: purpose, Batch: batch, FailedOnly: failed}
	if levelFlag != "" {
		level, err := quiz.ParseLevel(levelFlag)
		if err != nil {
			return opts, err
		}
		opts.Level = string(level)
	}
	return opts, nil
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one attempt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID:\t%d\n", e.ID)
		fmt.Fprintf(w, "Time:\t%s\n", e.Timestamp.Local().Format(timeLayout))
		fmt.Fprintf(w, "Provider:\t%s (%s)\n", e.Provider, e.Model)
		fmt.Fprintf(w, "Purpose:\t%s\n", e.Purpose)
		fmt.Fprintf(w, "Level:\t%s\n", dash(e.Level))
		fmt.Fprintf(w, "Batch:\t%s\n", dash(e.BatchID))
		fmt.Fprintf(w, "Tokens:\t%d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Fprintf(w, "Latency:\t%dms\n", e.LatencyMs)
		fmt.Fprintf(w, "Result:\t%s\n", outcome(e.LLMRequestEventData))
		if e.ErrorMessage != "" {
			fmt.Fprintf(w, "Error:\t%s\n", e.ErrorMessage)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		section("REQUEST", e.RequestBody)
		section("RESPONSE", e.ResponseBody)
		return nil
	},
}

func section(title, body string) {
	sep := strings.Repeat("─", 60)
	fmt.Printf("\n%s\n%s\n%s\n", sep, title, sep)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage, cost and failures per level",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()

		byPurpose, err := repo.LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No generation requests recorded.")
			return nil
		}
		byLevel, err := repo.LLMOutcomesByLevel(ctx)
		if err != nil {
			return fmt.Errorf("query outcomes: %w", err)
		}
		byModel, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		printUsage(byPurpose)
		printOutcomes(byLevel)
		printCost(byModel)
		return nil
	},
}

func printUsage(stats []store.PurposeUsage) {
	fmt.Println("Usage by purpose")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "PURPOSE\tCALLS\tINPUT\tOUTPUT\tAVG MS\t")
	var calls, in, out int
	for _, st := range stats {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t\n", st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, st.AvgLatencyMs)
		calls += st.Calls
		in += st.InputTokens
		out += st.OutputTokens
	}
	fmt.Fprintf(w, "TOTAL\t%d\t%d\t%d\t\t\n", calls, in, out)
	w.Flush()
}

func printOutcomes(levels []store.LevelOutcome) {
	if len(levels) == 0 {
		return
	}
	fmt.Println("\nOutcomes by level")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tBATCHES\tCALLS\tFAILED\tAVG MS\tFAILURES")
	for _, o := range levels {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\n",
			dash(o.Level), o.Batches, o.Calls, o.Failures, o.AvgLatencyMs, formatKinds(o.FailuresByKind))
	}
	w.Flush()
}

func printCost(models []store.ModelUsage) {
	if len(models) == 0 {
		return
	}
	fmt.Println("\nEstimated cost (USD)")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tCALLS\tINPUT\tOUTPUT\tCOST")

	var (
		total   float64
		unknown []string
	)
	for _, mu := range models {
		cost := "?"
		if c := llm.LookupCost(mu.Model); c != nil {
			usd := c.Cost(mu.InputTokens, mu.OutputTokens)
			total += usd
			cost = formatCost(usd)
		} else {
			unknown = append(unknown, mu.Model)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, cost)
	}
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%s\t\t\t\t%s\n", label, formatCost(total))
	w.Flush()

	if len(unknown) > 0 {
		fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
}

// formatKinds renders failure counts as "rate_limited×2, overloaded×1",
// most frequent first.
func formatKinds(kinds map[string]int) string {
	if len(kinds) == 0 {
		return "-"
	}
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if kinds[names[i]] != kinds[names[j]] {
			return kinds[names[i]] > kinds[names[j]]
		}
		return names[i] < names[j]
	})
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s×%d", k, kinds[k])
	}
	return strings.Join(parts, ", ")
}

func outcome(e store.LLMRequestEventData) string {
	if e.Success {
		return "ok"
	}
	if e.ErrorKind != "" {
		return e.ErrorKind
	}
	return "failed"
}

func shortBatch(id string) string {
	return truncate(id, 8)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (batch-gen, manual, autofill)")
	llmListCmd.Flags().StringP("level", "l", "", "Filter by level name or rank")
	llmListCmd.Flags().StringP("batch", "b", "", "Show the attempts of one batch")
	llmListCmd.Flags().Bool("failed", false, "Show failed attempts only")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
