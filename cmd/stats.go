package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/trivia"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how full each level of the bank is",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(svc *trivia.Service) error {
			b := svc.Bank()
			counts := b.Counts()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "LEVEL\tSAVED\tCAP\tFULL\tJAPAN\t")
			total := 0
			for _, l := range quiz.Levels() {
				japan := 0
				for _, it := range b.Items(l) {
					if it.IsJapan {
						japan++
					}
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%d\t\n", l.Label(), counts[l], b.Cap(), percent(counts[l], b.Cap()), japan)
				total += counts[l]
			}
			fmt.Fprintf(w, "TOTAL\t%d\t%d\t%s\t\t\n", total, b.Cap()*len(quiz.Levels()), percent(total, b.Cap()*len(quiz.Levels())))
			return w.Flush()
		})
	},
}

func percent(n, of int) string {
	if of <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", 100*float64(n)/float64(of))
}
