package cli

import (
	"time"

	"github.com/alecthomas/kong"
)

// Root is the top-level command tree. Global flags configure logging and
// the store; subcommands receive a *Context.
type Root struct {
	Version kong.VersionFlag `help:"Print version and exit."`

	Store       string `help:"Storage backend." enum:"sqlite,postgres,memory" default:"sqlite" env:"STORE"`
	SQLitePath  string `name:"sqlite-path" help:"SQLite database file." type:"path" default:"~/.local/share/weighttrack/weighttrack.db" env:"SQLITE_PATH"`
	DatabaseURL string `name:"database-url" help:"PostgreSQL connection string." env:"DATABASE_URL"`
	LogLevel    string `name:"log-level" help:"Log level." enum:"debug,info,warn,error" default:"info" env:"LOG_LEVEL"`
	LogFile     string `name:"log-file" help:"Also write logs to this file." type:"path" env:"LOG_FILE"`

	Serve    ServeCmd    `cmd:"" help:"Run the HTTP API."`
	Register RegisterCmd `cmd:"" help:"Create an account."`
	Summary  SummaryCmd  `cmd:"" help:"Show latest weight against the goal."`
	Entries  struct {
		Add    EntriesAddCmd    `cmd:"" help:"Record a weight."`
		List   EntriesListCmd   `cmd:"" help:"List recorded weights."`
		Delete EntriesDeleteCmd `cmd:"" help:"Delete weights by id."`
	} `cmd:"" help:"Manage weight entries."`
	Goal struct {
		Set  GoalSetCmd  `cmd:"" help:"Set the weight goal."`
		Show GoalShowCmd `cmd:"" help:"Show the weight goal."`
	} `cmd:"" help:"Manage the weight goal."`
	Phone struct {
		Set  PhoneSetCmd  `cmd:"" help:"Set the notification phone number."`
		Show PhoneShowCmd `cmd:"" help:"Show the notification phone number."`
	} `cmd:"" help:"Manage the notification phone number."`
}

// StoreConfig returns the store selection from the global flags.
func (r *Root) StoreConfig() StoreConfig {
	return StoreConfig{Kind: r.Store, SQLitePath: r.SQLitePath, DatabaseURL: r.DatabaseURL}
}

// Options are the kong options shared by main and tests.
func Options(version string) []kong.Option {
	return []kong.Option{
		kong.Name("weighttrack"),
		kong.Description("Track weight against a goal."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	}
}

func today() string {
	return time.Now().Format("2006-01-02")
}
