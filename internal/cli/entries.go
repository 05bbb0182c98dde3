package cli

import (
	"fmt"
	"strconv"

	"weighttrack/internal/domain"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// EntriesAddCmd records a weight, dated today unless --date is given.
type EntriesAddCmd struct {
	Credentials `embed:""`

	Weight float64 `arg:"" help:"Measured weight."`
	Date   string  `short:"d" help:"Entry date (YYYY-MM-DD). Defaults to today."`
}

// Run stores the entry and reports when it lands below the goal.
func (cmd *EntriesAddCmd) Run(ctx *Context) error {
	sess, err := cmd.session(ctx)
	if err != nil {
		return err
	}
	date := cmd.Date
	if date == "" {
		date = today()
	}
	res, err := ctx.Weights.AddEntry(ctx.Ctx, sess, date, cmd.Weight)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Recorded %s on %s (id %d)\n", formatWeight(cmd.Weight), date, res.ID)
	if res.GoalCrossed {
		fmt.Fprintln(ctx.Out, "Goal reached!")
	}
	return nil
}

// EntriesListCmd prints the entries in the requested order.
type EntriesListCmd struct {
	Credentials `embed:""`

	Sort string `short:"s" help:"Order: date_newest, date_oldest, weight_highest, weight_lowest, distance_from_goal." default:"date_newest"`
}

// Run lists the entries as a table.
func (cmd *EntriesListCmd) Run(ctx *Context) error {
	sess, err := cmd.session(ctx)
	if err != nil {
		return err
	}
	list, err := ctx.Weights.ListEntries(ctx.Ctx, sess, domain.ParseSortKey(cmd.Sort))
	if err != nil {
		return err
	}
	if list.GoalMissing {
		fmt.Fprintln(ctx.Out, "No goal set; showing newest first")
	}
	if len(list.Items) == 0 {
		fmt.Fprintln(ctx.Out, "No entries")
		return nil
	}
	fmt.Fprintln(ctx.Out, renderEntries(list.Items))
	return nil
}

func renderEntries(entries []domain.WeightEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{strconv.FormatInt(e.ID, 10), e.Date, formatWeight(e.Weight)})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "DATE", "WEIGHT").
		Rows(rows...).
		Render()
}

// EntriesDeleteCmd deletes entries by id.
type EntriesDeleteCmd struct {
	Credentials `embed:""`

	IDs []int64 `arg:"" name:"id" help:"Entry ids to delete."`
}

// Run deletes the entries owned by the account and prints how many went away.
func (cmd *EntriesDeleteCmd) Run(ctx *Context) error {
	sess, err := cmd.session(ctx)
	if err != nil {
		return err
	}
	n, err := ctx.Weights.DeleteEntries(ctx.Ctx, sess, cmd.IDs)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Deleted %d of %d entries\n", n, len(cmd.IDs))
	return nil
}
