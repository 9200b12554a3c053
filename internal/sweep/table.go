package sweep

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
)

// WriteTable prints results as an aligned table.
func WriteTable(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Qw (m3/s)\tsig (mm/yr)\tTa (yr)\tseed\tyears\tavulsions\tbodies\tproportion\tthickness (m)\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%d\t%s%%\t%s\t\n",
			humanize.Commaf(r.Qw),
			humanize.FormatFloat("#.##", r.Sig*1000),
			humanize.Commaf(r.Ta),
			r.Seed,
			humanize.Commaf(r.Years),
			humanize.Comma(int64(r.Avulsions)),
			r.Bodies,
			humanize.FormatFloat("#.#", 100*r.Proportion),
			humanize.FormatFloat("#.##", r.MeanThickness),
		)
	}
	return tw.Flush()
}
