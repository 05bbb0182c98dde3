package cli

import (
	"fmt"
	"time"

	"weighttrack/internal/domain"
)

// Credentials identify the account a local command acts for.
type Credentials struct {
	Username string `short:"u" help:"Account username." env:"WEIGHTTRACK_USERNAME" required:""`
	Password string `short:"p" help:"Account password." env:"WEIGHTTRACK_PASSWORD" required:""`
}

// session verifies the credentials and returns an in-process session.
func (c Credentials) session(ctx *Context) (*domain.Session, error) {
	acct, err := ctx.Auth.Authenticate(ctx.Ctx, c.Username, c.Password)
	if err != nil {
		return nil, err
	}
	return &domain.Session{AccountID: acct.ID, CreatedAt: time.Now()}, nil
}

// RegisterCmd creates a password account.
type RegisterCmd struct {
	Credentials `embed:""`
}

// Run registers the account and prints its id.
func (cmd *RegisterCmd) Run(ctx *Context) error {
	acct, err := ctx.Auth.Register(ctx.Ctx, cmd.Username, cmd.Password)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Registered %s (id %d)\n", acct.Username, acct.ID)
	return nil
}

// GoalSetCmd sets the weight goal.
type GoalSetCmd struct {
	Credentials `embed:""`

	Goal float64 `arg:"" help:"Goal weight."`
}

// Run stores the goal for the authenticated account.
func (cmd *GoalSetCmd) Run(ctx *Context) error {
	sess, err := cmd.session(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Accounts.SetGoal(ctx.Ctx, sess, cmd.Goal); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Goal set to %s\n", formatWeight(cmd.Goal))
	return nil
}

// GoalShowCmd prints the weight goal.
type GoalShowCmd struct {
	Credentials `embed:""`
}

// Run prints the goal, or a notice when none is set.
func (cmd *GoalShowCmd) Run(ctx *Context) error {
	sess, err := cmd.session(ctx)
	if err != nil {
		return err
	}
	goal, err := ctx.Accounts.Goal(ctx.Ctx, sess)
	if err != nil {
		return err
	}
	if goal == nil {
		fmt.Fprintln(ctx.Out, "No goal set")
		return nil
	}
	fmt.Fprintf(ctx.Out, "Goal: %s\n", formatWeight(*goal))
	return nil
}

// PhoneSetCmd sets the goal notification phone number.
type PhoneSetCmd struct {
	Credentials `embed:""`

	Phone string `arg:"" help:"Phone number for goal notifications."`
}

// Run validates and stores the phone number.
func (cmd *PhoneSetCmd) Run(ctx *Context) error {
	sess, err := cmd.session(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Accounts.SetPhone(ctx.Ctx, sess, cmd.Phone); err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, "Phone number saved")
	return nil
}

// PhoneShowCmd prints the notification phone number.
type PhoneShowCmd struct {
	Credentials `embed:""`
}

// Run prints the phone number, or a notice when none is set.
func (cmd *PhoneShowCmd) Run(ctx *Context) error {
	sess, err := cmd.session(ctx)
	if err != nil {
		return err
	}
	phone, err := ctx.Accounts.Phone(ctx.Ctx, sess)
	if err != nil {
		return err
	}
	if phone == nil {
		fmt.Fprintln(ctx.Out, "No phone number set")
		return nil
	}
	fmt.Fprintf(ctx.Out, "Phone: %s\n", *phone)
	return nil
}

func formatWeight(w float64) string {
	return fmt.Sprintf("%.1f", w)
}
