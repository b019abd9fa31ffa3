package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"resto_dashboard/internal/sentiment"
)

func newClassifyCmd() *cobra.Command {
	var rating float64
	cmd := &cobra.Command{
		Use:   "classify <text>",
		Short: "Score one comment and print its sentiment label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clf := sentiment.NewClassifier(nil)
			p := clf.Polarity(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "polarity\t%.3f\nsentiment\t%s\n", p, sentiment.Label(p, rating))
			return nil
		},
	}
	cmd.Flags().Float64Var(&rating, "rating", 3, "star rating used when the text is neutral")
	return cmd
}
