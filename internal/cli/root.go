// Package cli implements the foodblog command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/foodblog/internal/entry"
	"github.com/petar-djukic/foodblog/internal/paths"
	"github.com/petar-djukic/foodblog/internal/sqlite"
	"github.com/petar-djukic/foodblog/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Batch-mode output.
const (
	selectedPrefix = "Recipe selected for you: "
	noRecipes      = "no such recipes"
)

// rootFlags holds flag values for one command tree.
type rootFlags struct {
	configDir    string
	logLevel     string
	strictSearch bool
	ingredients  string
	meals        string
}

// app is the state shared by the commands of one tree. PersistentPreRunE
// fills settings and logger before any RunE runs.
type app struct {
	flags    rootFlags
	settings settings
	logger   *slog.Logger
}

// NewRootCmd creates the top-level "foodblog" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "foodblog <database_file>",
		Short: "A recipe catalog backed by SQLite",
		Long: "foodblog keeps recipes, the meals they are served at and their ingredients\n" +
			"in a SQLite file. With --ingredients or --meals it searches for recipes;\n" +
			"otherwise it prompts for new recipes.",
		Args:              cobra.ExactArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runCatalog,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/foodblog)")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.BoolVar(&a.flags.strictSearch, "strict-search", false, "search single ingredients by the given name")

	root.Flags().StringVar(&a.flags.ingredients, "ingredients", "", "comma-separated ingredients a recipe must contain")
	root.Flags().StringVar(&a.flags.meals, "meals", "", "comma-separated meals a recipe may be served at")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newListCmd())
	root.AddCommand(a.newExportCmd())
	root.AddCommand(a.newImportCmd())

	return root
}

// Execute runs the root command and exits with the matching code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysError marks err as a storage or I/O failure.
func sysError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitSysError, err: err}
}

// storeError marks err as a system failure unless it stems from bad input.
func storeError(err error) error {
	if errors.Is(err, types.ErrPathRequired) || errors.Is(err, types.ErrUnsupportedTable) {
		return err
	}
	return sysError(err)
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// setup loads settings and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	s, err := loadSettings(configDir, cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), s.LogLevel)
	if err != nil {
		return err
	}

	a.settings = s
	a.logger = logger
	a.logger.Debug("settings loaded", "config_dir", configDir, "strict_search", s.StrictSearch)
	return nil
}

// newLogger returns a text logger on w at the named level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// storeConfig returns the store configuration for a database file.
func (a *app) storeConfig(path string) types.Config {
	return types.Config{
		Path:         path,
		StrictSearch: a.settings.StrictSearch,
		Logger:       a.logger,
	}
}

// runCatalog bootstraps the database, then searches or prompts.
func (a *app) runCatalog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	batch := cmd.Flags().Changed("ingredients") || cmd.Flags().Changed("meals")

	err := sqlite.WithSession(ctx, a.storeConfig(args[0]), func(s *sqlite.Store) error {
		if err := s.Bootstrap(ctx, a.settings.Seeds); err != nil {
			return err
		}
		if batch {
			return a.search(cmd, s)
		}
		return a.enter(cmd, s)
	})
	return storeError(err)
}

// search prints the recipes matching the --ingredients and --meals flags.
func (a *app) search(cmd *cobra.Command, catalog types.Catalog) error {
	found, err := catalog.FindRecipes(cmd.Context(),
		entry.SplitList(a.flags.ingredients), entry.SplitList(a.flags.meals))
	if err != nil {
		return err
	}
	if found == "" {
		fmt.Fprintln(cmd.OutOrStdout(), noRecipes)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), selectedPrefix+found)
	return nil
}

// enter runs interactive recipe entry. A terminal on stdin gets line editing
// and history; anything else is read line by line.
func (a *app) enter(cmd *cobra.Command, catalog types.Catalog) error {
	prompt, closePrompt, err := a.prompter(cmd)
	if err != nil {
		return err
	}
	defer closePrompt()

	saved, err := entry.NewSession(catalog, prompt, cmd.OutOrStdout(), a.logger).Run(cmd.Context())
	a.logger.Info("entry finished", "recipes_saved", saved)
	return err
}

func (a *app) prompter(cmd *cobra.Command) (entry.Prompter, func(), error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && entry.IsTerminal(int(f.Fd())) {
		stateDir, err := paths.ResolveStateDir(a.settings.StateDir)
		if err != nil {
			return nil, nil, err
		}
		history, err := paths.HistoryFile(stateDir)
		if err != nil {
			return nil, nil, err
		}
		rl, err := entry.NewReadlinePrompter(history)
		if err != nil {
			return nil, nil, err
		}
		return rl, func() { rl.Close() }, nil
	}
	return entry.NewLinePrompter(in, cmd.OutOrStdout()), func() {}, nil
}
