package cli

import "fmt"

// SummaryCmd prints the latest weight against the goal.
type SummaryCmd struct {
	Credentials `embed:""`
}

// Run prints the summary.
func (cmd *SummaryCmd) Run(ctx *Context) error {
	sess, err := cmd.session(ctx)
	if err != nil {
		return err
	}
	sum, err := ctx.Summary.Get(ctx.Ctx, sess)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Account: %s\n", sum.Username)
	if sum.MostRecent == nil {
		fmt.Fprintln(ctx.Out, "Latest:  no entries yet")
	} else {
		fmt.Fprintf(ctx.Out, "Latest:  %s on %s\n", formatWeight(sum.MostRecent.Weight), sum.MostRecent.Date)
	}
	if sum.Goal == nil {
		fmt.Fprintln(ctx.Out, "Goal:    not set")
		return nil
	}
	fmt.Fprintf(ctx.Out, "Goal:    %s\n", formatWeight(*sum.Goal))
	switch {
	case sum.Remaining == nil:
	case sum.GoalMet:
		fmt.Fprintln(ctx.Out, "Goal reached!")
	default:
		fmt.Fprintf(ctx.Out, "To go:   %s\n", formatWeight(*sum.Remaining))
	}
	return nil
}
