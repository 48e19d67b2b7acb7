package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	domain "github.com/milestonemotors/motors/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printListingsTable(listings []domain.Listing) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tBRAND\tMODEL\tYEAR\tPRICE\tFUEL\tCONDITION\n")
	for i := range listings {
		l := &listings[i]
		tw.writef("%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			l.ID,
			l.Brand,
			truncate(l.Model, 30),
			l.Year,
			l.DisplayPrice(),
			l.FuelType,
			l.Condition,
		)
	}
	return tw.finish()
}

func printListingDetail(l *domain.Listing) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%d\n", l.ID)
	tw.writef("Ad Number:\t%s\n", l.AdNumber)
	tw.writef("Brand:\t%s\n", l.Brand)
	tw.writef("Model:\t%s\n", l.Model)
	tw.writef("Year:\t%d\n", l.Year)
	tw.writef("Price:\t%s\n", l.DisplayPrice())
	tw.writef("Condition:\t%s\n", l.Condition)
	tw.writef("Body:\t%s\n", l.BodyType)
	tw.writef("Fuel:\t%s\n", l.FuelType)
	tw.writef("Mileage:\t%s\n", l.DisplayMileage())
	tw.writef("Engine:\t%s\n", l.DisplayEngineCapacity())
	tw.writef("Power:\t%s\n", l.DisplayEnginePower())
	tw.writef("Fixed Price:\t%s\n", l.FixedPrice)
	tw.writef("Exchange:\t%s\n", l.Exchange)
	tw.writef("Seller:\t%s\n", l.UserID)
	tw.writef("Listed:\t%s\n", l.CreatedAt.Format("2006-01-02 15:04:05"))
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
