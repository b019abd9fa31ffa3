package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"resto_dashboard/internal/app"
	"resto_dashboard/internal/domain"
)

func newSummaryCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print statistics of the filtered reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindLocal(cmd, v); err != nil {
				return err
			}
			c, err := criteriaFrom(v)
			if err != nil {
				return err
			}
			ds, err := loadDataset(cmd, v)
			if err != nil {
				return err
			}
			rs := app.Filter(ds.Records, c)
			return writeSummary(cmd.OutOrStdout(), ds, rs, v.GetInt("words"))
		},
	}
	addCriteriaFlags(cmd)
	cmd.Flags().Int("words", 10, "number of top words to list")
	return cmd
}

func writeSummary(w io.Writer, ds *app.Dataset, rs []domain.Review, words int) error {
	st := app.Summarize(rs)
	fmt.Fprintf(w, "source %s (%d rows, %d kept, %d dropped)\n\n",
		ds.Source, ds.Report.Rows, ds.Report.Kept, ds.Report.Dropped())

	t := tablewriter.NewWriter(w)
	rows := [][]string{
		{"Jumlah Review", strconv.Itoa(st.Total)},
		{"Rata-rata Rating", fmtOpt(st.MeanRating, "%.2f")},
		{"% Positif", fmtOpt(st.PositivePct, "%.1f%%")},
		{"% Netral", fmtOpt(st.NeutralPct, "%.1f%%")},
		{"% Negatif", fmtOpt(st.NegativePct, "%.1f%%")},
	}
	for _, r := range rows {
		if err := t.Append(r); err != nil {
			return err
		}
	}
	if err := t.Render(); err != nil {
		return err
	}
	if st.Total == 0 {
		return nil
	}

	fmt.Fprintln(w, "\nDistribusi Rating")
	t = tablewriter.NewWriter(w)
	if err := t.Append([]string{"Rating", "Count"}); err != nil {
		return err
	}
	for _, b := range app.RatingDistribution(rs) {
		if err := t.Append([]string{strconv.FormatFloat(b.Rating, 'f', -1, 64), strconv.Itoa(b.Count)}); err != nil {
			return err
		}
	}
	if err := t.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nSentiment per restoran")
	t = tablewriter.NewWriter(w)
	if err := t.Append([]string{"Restoran", "Positive", "Neutral", "Negative"}); err != nil {
		return err
	}
	for _, sc := range app.SentimentByRestaurant(rs) {
		if err := t.Append([]string{sc.Restaurant, strconv.Itoa(sc.Positive), strconv.Itoa(sc.Neutral), strconv.Itoa(sc.Negative)}); err != nil {
			return err
		}
	}
	if err := t.Render(); err != nil {
		return err
	}

	if words > 0 {
		fmt.Fprintln(w, "\nKata teratas")
		for _, wc := range app.WordFrequencies(app.Corpus(rs), words) {
			fmt.Fprintf(w, "  %-20s %d\n", wc.Word, wc.Count)
		}
	}
	return nil
}

func fmtOpt(p *float64, format string) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf(format, *p)
}
