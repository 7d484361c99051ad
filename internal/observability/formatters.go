// Package observability renders recommendations, catalogs and reports for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jonathan/party-optimizer/internal/analysis"
	"github.com/jonathan/party-optimizer/internal/csvio"
	"github.com/jonathan/party-optimizer/internal/db"
	"github.com/jonathan/party-optimizer/internal/optimizer"
	"github.com/jonathan/party-optimizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// PrintRecommendations outputs a ranked table of at most limit recommendations
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRecommendations(recs []types.Recommendation, limit int) {
	if len(recs) == 0 {
		fmt.Fprintln(p.out, "No viable party found within the budget.")
		return
	}
	shown := optimizer.Top(recs, limit)

	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tGUESTS\tCOST\tSATISFACTION\tINTIMACY\tHAPPINESS")
	for i, r := range shown {
		fmt.Fprintf(tw, "%d\t%s\t$%.2f\t%.1f\t%d\t%.4f\n",
			i+1, truncate(strings.Join(r.Guests, ", "), 40), r.TotalCost, r.TotalSatisfaction, r.TotalIntimacy, r.Happiness)
	}
	tw.Flush()

	if len(recs) > len(shown) {
		fmt.Fprintf(p.out, "... and %d more viable parties\n", len(recs)-len(shown))
	}
}

// PrintRecommendation outputs one recommendation in detail
func (p *Printer) PrintRecommendation(rank int, r types.Recommendation) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Guests (%d): %s\n", r.NumGuests(), strings.Join(r.Guests, ", ")))
	sb.WriteString(fmt.Sprintf("Total intimacy: %d (avg %.1f)\n", r.TotalIntimacy, float64(r.TotalIntimacy)/float64(max(1, r.NumGuests()))))
	sb.WriteString("\n")

	foods, drinks := r.Menu.Foods(), r.Menu.Drinks()
	sb.WriteString(fmt.Sprintf("Foods (%d):  %s\n", len(foods), strings.Join(foods.Names(), ", ")))
	sb.WriteString(fmt.Sprintf("Drinks (%d): %s\n", len(drinks), strings.Join(drinks.Names(), ", ")))
	sb.WriteString(fmt.Sprintf("Per guest:  $%.2f\n", r.CostPerGuest()))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Total cost:     $%.2f\n", r.TotalCost))
	sb.WriteString(fmt.Sprintf("Savings:        $%.2f\n", r.CostSavings))
	sb.WriteString(fmt.Sprintf("Satisfaction:   %.1f (avg %.2f/5)\n", r.TotalSatisfaction, r.AvgSatisfaction))
	sb.WriteString(fmt.Sprintf("Efficiency:     %.2f per $\n", r.Efficiency()))
	sb.WriteString(fmt.Sprintf("Host happiness: %.4f", r.Happiness))

	p.printBox(fmt.Sprintf("RECOMMENDATION #%d", rank), sb.String())
}

// PrintStatistics outputs the aggregate numbers over all viable parties
func (p *Printer) PrintStatistics(s optimizer.Statistics) {
	if s.Total == 0 {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Viable parties:  %d\n", s.Total))
	sb.WriteString(fmt.Sprintf("Cost:            $%.2f ± %.2f\n", s.CostMean, s.CostStd))
	sb.WriteString(fmt.Sprintf("Satisfaction:    %.1f ± %.1f\n", s.SatisfactionMean, s.SatisfactionStd))
	sb.WriteString(fmt.Sprintf("Intimacy (mean): %.1f\n", s.IntimacyMean))
	sb.WriteString(fmt.Sprintf("Guests:          %.1f (range %d-%d)\n", s.GuestsMean, s.GuestsMin, s.GuestsMax))
	sb.WriteString(fmt.Sprintf("Best happiness:  %.4f", s.HappinessMax))
	p.printBox("OPTIMIZATION STATISTICS", sb.String())
}

// PrintFriends lists friends with intimacy and rating count
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFriends(friends []types.Friend) {
	if len(friends) == 0 {
		fmt.Fprintln(p.out, "No friends available. Add friends first.")
		return
	}
	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tINTIMACY\tRATED\tRESTRICTIONS")
	for _, f := range friends {
		restrictions := "-"
		if len(f.DietaryRestrictions) > 0 {
			restrictions = strings.Join(f.DietaryRestrictions, ", ")
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", truncate(f.Name, 25), f.Intimacy, len(f.Preferences), restrictions)
	}
	tw.Flush()
	fmt.Fprintf(p.out, "Total: %d friends\n", len(friends))
}

// PrintFoods lists foods grouped by category in display order
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFoods(foods []types.Food) {
	if len(foods) == 0 {
		fmt.Fprintln(p.out, "No food items available. Add food items first.")
		return
	}
	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tNAME\tCOST")
	for _, c := range types.Categories {
		for _, f := range foods {
			if f.Category == c {
				fmt.Fprintf(tw, "%s\t%s\t$%.2f\n", c, f.Name, f.Cost)
			}
		}
	}
	tw.Flush()
	fmt.Fprintf(p.out, "Total: %d items\n", len(foods))
}

// PrintReport outputs the catalog analysis report
func (p *Printer) PrintReport(r analysis.Report) {
	var sb strings.Builder

	if r.Overview.TotalFriends > 0 {
		sb.WriteString(fmt.Sprintf("Total friends:    %d\n", r.Overview.TotalFriends))
		sb.WriteString(fmt.Sprintf("Average intimacy: %.2f\n", r.Overview.AvgIntimacy))
		sb.WriteString(fmt.Sprintf("Intimacy range:   %d-%d\n", r.Overview.MinIntimacy, r.Overview.MaxIntimacy))
		sb.WriteString("\nClosest friends:\n")
		for _, f := range r.Friends[:min(len(r.Friends), maxItemsToShow)] {
			sb.WriteString(fmt.Sprintf("  • %s (intimacy %d, avg rating %.2f)\n", f.Name, f.Intimacy, f.AvgPreference))
		}
	} else {
		sb.WriteString("No friends in catalog.\n")
	}

	sb.WriteString("\n")
	if r.Overview.TotalFoods > 0 {
		sb.WriteString(fmt.Sprintf("Total foods:  %d\n", r.Overview.TotalFoods))
		sb.WriteString(fmt.Sprintf("Average cost: $%.2f\n", r.Overview.AvgFoodCost))
		if len(r.Foods) > 0 {
			sb.WriteString("\nMost popular:\n")
			for _, f := range r.Foods[:min(len(r.Foods), maxItemsToShow)] {
				sb.WriteString(fmt.Sprintf("  • %s: %.2f/5 ($%.2f, %d ratings)\n", f.Name, f.AvgRating, f.Cost, f.NumRatings))
			}
		}
	} else {
		sb.WriteString("No foods in catalog.\n")
	}

	p.printBox("PARTY PLANNING DATA ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFoodAnalysis outputs the per-food table including value scores
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFoodAnalysis(foods []analysis.FoodAnalysis) {
	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FOOD\tCATEGORY\tCOST\tAVG\tWEIGHTED\tRATINGS\tPOPULARITY\tVALUE")
	for _, f := range foods {
		fmt.Fprintf(tw, "%s\t%s\t$%.2f\t%.2f\t%.2f\t%d\t%.1f\t%.2f\n",
			f.Name, f.Category, f.Cost, f.AvgRating, f.WeightedAvg, f.NumRatings, f.Popularity, f.ValueScore)
	}
	tw.Flush()
}

// PrintRatingDistribution outputs rating spread per rated food name
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRatingDistribution(stats []analysis.RatingStats) {
	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FOOD\tAVG\tMEDIAN\tSTD\tRATINGS")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%.2f\t%.1f\t%.2f\t%d\n", s.Food, s.Avg, s.Median, s.Std, s.NumRatings)
	}
	tw.Flush()
}

// PrintMatrix outputs the preference grid; unrated cells show "-"
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMatrix(m analysis.Matrix) {
	tw := tabwriter.NewWriter(p.out, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "FRIEND\tINT\t%s\t\n", strings.Join(m.Foods, "\t"))
	for _, r := range m.Rows {
		cells := make([]string, len(r.Ratings))
		for i, v := range r.Ratings {
			if v > 0 {
				cells[i] = fmt.Sprint(v)
			} else {
				cells[i] = "-"
			}
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t\n", truncate(r.Friend, 20), r.Intimacy, strings.Join(cells, "\t"))
	}
	tw.Flush()
	fmt.Fprintf(p.out, "Coverage: %.0f%%\n", m.Coverage()*100)
}

// PrintImportStats outputs the result of a CSV import
func (p *Printer) PrintImportStats(s *csvio.ImportStats) {
	if s == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rows:    %d\n", s.TotalRows))
	sb.WriteString(fmt.Sprintf("Added:   %d\n", s.Successful))
	sb.WriteString(fmt.Sprintf("Updated: %d\n", s.Updated))
	sb.WriteString(fmt.Sprintf("Failed:  %d", s.Failed))

	msgs := s.ErrorMessages()
	if len(msgs) > 0 {
		sb.WriteString("\n\nErrors:\n")
		for _, m := range msgs[:min(len(msgs), maxItemsToShow)] {
			sb.WriteString(fmt.Sprintf("  • %s\n", m))
		}
		if len(msgs) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(msgs)-maxItemsToShow))
		}
	}
	p.printBox("CSV IMPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRuns lists persisted optimization runs
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRuns(runs []db.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(p.out, "No optimization runs recorded.")
		return
	}
	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tBUDGET\tMAX GUESTS\tFRIENDS\tRESULTS\tDURATION")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t$%.2f\t%d\t%d\t%d\t%s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Budget, r.MaxGuests, r.NumFriends, r.NumRecommendations, r.Duration)
	}
	tw.Flush()
}
