// internal/browse/render.go
package browse

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/currency"
)

// RenderList writes the snapshot as an aligned table followed by a paging
// summary.
func RenderList(w io.Writer, snapshot Snapshot) error {
	if snapshot.Err != nil {
		_, err := fmt.Fprintf(w, "error: %v\n", snapshot.Err)
		return err
	}

	if len(snapshot.Items) == 0 {
		if _, err := fmt.Fprintln(w, "No properties match the current filters."); err != nil {
			return err
		}
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tADDRESS\tPRICE\tYEAR\tOWNER")
		for _, p := range snapshot.Items {
			owner := "-"
			if p.Owner != nil {
				owner = p.Owner.Name
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", p.IDProperty, p.Name, p.Address, FormatMoney(currency.USD, p.Price), p.Year, owner)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nPage %d of %d (%d properties, %d per page)\n",
		snapshot.State.CurrentPage, max(snapshot.TotalPages, 1), snapshot.TotalCount, snapshot.State.PageSize)
	return err
}

func RenderDetail(w io.Writer, view DetailView) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n%s\n\n", view.Name, strings.Repeat("=", len([]rune(view.Name))))

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", view.ID)
	fmt.Fprintf(tw, "Address\t%s\n", view.Address)
	fmt.Fprintf(tw, "Code\t%s\n", view.CodeInternal)
	fmt.Fprintf(tw, "Year\t%d\n", view.Year)
	if view.OwnerName != "" {
		fmt.Fprintf(tw, "Owner\t%s\n", view.OwnerName)
	}
	fmt.Fprintf(tw, "Price\t%s\n", view.Price)
	if view.MonthlyUSD != "" {
		fmt.Fprintf(tw, "Monthly payment\t%s (%.2f%%/month, %d years, %.0f%% down)\n",
			view.MonthlyUSD, view.Mortgage.RateMonthly*100, view.Mortgage.Years, view.Mortgage.DownPct*100)
	}
	fmt.Fprintf(tw, "Map\t%s\n", view.MapAddress)
	tw.Flush()

	if len(view.Gallery) > 0 {
		b.WriteString("\nGallery\n")
		for _, file := range view.Gallery {
			fmt.Fprintf(&b, "  %s\n", file)
		}
	}

	if len(view.Traces) > 0 {
		b.WriteString("\nSales history\n")
		tw = tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  DATE\tNAME\tVALUE\tTAX")
		for _, trace := range view.Traces {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", trace.DateSale, trace.Name, trace.Value, trace.Tax)
		}
		tw.Flush()
	}

	_, err := io.WriteString(w, b.String())
	return err
}
