// Package cmd implements the treeview command line interface: load a forest
// definition, apply tree intents from flags, then print a snapshot or hand
// the forest to the interactive browser.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/treeview/internal/expr"
	"github.com/oakwood-commons/treeview/internal/formatter"
	"github.com/oakwood-commons/treeview/internal/ui"
	"github.com/oakwood-commons/treeview/pkg/loader"
	"github.com/oakwood-commons/treeview/pkg/logger"
	"github.com/oakwood-commons/treeview/pkg/settings"
	"github.com/oakwood-commons/treeview/pkg/tree"
	"github.com/oakwood-commons/treeview/pkg/tui"
)

// errShowHelp is returned when no input is provided and help should be shown.
var errShowHelp = errors.New("no input provided")

// rootOptions collects every flag of the root command.
type rootOptions struct {
	interactive bool
	search      string
	toggleKeys  []string
	toggleAll   bool
	checkKeys   []string
	pickExpr    string
	multiple    bool
	cascade     bool
	sort        string
	theme       string
	showHidden  bool
	maxTitle    int
	noColor     bool
	quiet       bool
	showVersion bool
	configPath  string
	debug       bool
	logLevel    int8
}

// NewRootCmd builds the root command. Split out from Execute so tests can
// drive it with their own args and output streams.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   settings.CliBinaryName + " [definition-file]",
		Short: "Browse and select from a tree of labeled nodes",
		Long: settings.CliBinaryName + ` loads a forest definition (YAML or JSON), applies the
requested tree operations, and prints the resulting snapshot as an ASCII
tree. With --interactive the forest opens in a terminal browser instead.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s)\n",
					settings.CliBinaryName,
					settings.VersionInformation.BuildVersion,
					settings.VersionInformation.Commit,
					settings.VersionInformation.BuildTime)
				return nil
			}
			err := run(cmd, args, opts)
			if errors.Is(err, errShowHelp) {
				return cmd.Help()
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "open the forest in the terminal browser")
	flags.StringVar(&opts.search, "search", "", "filter visibility by a case-insensitive title substring")
	flags.StringArrayVar(&opts.toggleKeys, "toggle", nil, "toggle the opened state of the node with this key (repeatable)")
	flags.BoolVar(&opts.toggleAll, "toggle-all", false, "flip the opened state of every node")
	flags.StringArrayVar(&opts.checkKeys, "check", nil, "toggle the checkbox of the node with this key (repeatable)")
	flags.StringVar(&opts.pickExpr, "pick", "", "toggle checkboxes on every node matching this CEL predicate")
	flags.BoolVar(&opts.multiple, "multiple", false, "allow more than one checked node (overrides the definition)")
	flags.BoolVar(&opts.cascade, "cascade", false, "propagate checkbox changes to descendants (overrides the definition)")
	flags.StringVar(&opts.sort, "sort", "", "render-time sibling order: none, ascending, descending")
	flags.StringVar(&opts.theme, "theme", "", "browser theme name (overrides the definition)")
	flags.BoolVar(&opts.showHidden, "show-hidden", false, "render nodes hidden by search instead of skipping them")
	flags.IntVar(&opts.maxTitle, "max-title", 0, "truncate titles wider than this many cells (0 = unlimited)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable color output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress the summary line")
	flags.BoolVar(&opts.showVersion, "version", false, "print version information and exit")
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML app config file (theme, styles, features)")
	flags.BoolVar(&opts.debug, "debug", false, "show debug info in the browser status bar")
	flags.Int8Var(&opts.logLevel, "log-level", 0, "minimum log level (negative enables debug)")

	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

func run(cmd *cobra.Command, args []string, opts *rootOptions) error {
	lgr := logger.Get(opts.logLevel)

	def, err := loadDefinition(cmd, args, opts)
	if err != nil {
		return err
	}

	app, err := loadMergedConfig(resolveConfigPath(opts.configPath))
	if err != nil {
		return err
	}

	forest := def.Forest()
	cfg := def.TreeConfigFrom(baseTreeConfig(app))
	applyOverrides(cmd, &cfg, opts)

	if dups := tree.DuplicateKeys(forest); len(dups) > 0 {
		lgr.Info("definition contains duplicate keys; key-targeted operations affect the first match only",
			"keys", strings.Join(dups, ","))
	}

	forest, err = applyIntents(forest, cfg, opts, lgr)
	if err != nil {
		return err
	}

	if opts.interactive {
		browser := ui.NewBrowser(forest, cfg)
		browser.SetNoColor(opts.noColor)
		browser.SetDebug(opts.debug)
		return tui.Run(browser)
	}

	if opts.debug {
		lgr.V(1).Info("merged config",
			"theme", cfg.Look.Theme,
			"checkbox", cfg.Checkbox.Enable,
			"search", cfg.Search.Enable,
			"sort", string(cfg.Sort))
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, formatter.FormatForest(forest, formatter.TreeOptions{
		Config:      cfg,
		ShowHidden:  opts.showHidden,
		MaxTitleLen: opts.maxTitle,
	}))
	if !opts.quiet {
		fmt.Fprintln(out, formatter.Summarize(forest))
	}
	return nil
}

// loadDefinition reads the forest definition from the file argument or from
// piped stdin.
func loadDefinition(cmd *cobra.Command, args []string, opts *rootOptions) (*loader.Definition, error) {
	lgr := logger.Get(opts.logLevel)

	if len(args) == 1 {
		return loader.LoadFileWithLogger(args[0], *lgr)
	}

	stdin := cmd.InOrStdin()
	if f, ok := stdin.(*os.File); ok && tui.IsTerminalFile(f) {
		return nil, errShowHelp
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errShowHelp
	}
	return loader.LoadWithLogger(string(data), *lgr)
}

// applyOverrides folds explicitly set flags over the definition's config.
func applyOverrides(cmd *cobra.Command, cfg *tree.Config, opts *rootOptions) {
	flags := cmd.Flags()
	if flags.Changed("multiple") {
		cfg.Checkbox.Multiple = opts.multiple
	}
	if flags.Changed("cascade") {
		cfg.Checkbox.Cascade = opts.cascade
	}
	if flags.Changed("check") || flags.Changed("pick") {
		// Checking from the CLI implies the feature.
		cfg.Checkbox.Enable = true
	}
	if flags.Changed("search") {
		cfg.Search.Enable = true
	}
	if opts.sort != "" {
		switch tree.SortOrder(strings.ToLower(opts.sort)) {
		case tree.SortAscending:
			cfg.Sort = tree.SortAscending
		case tree.SortDescending:
			cfg.Sort = tree.SortDescending
		default:
			cfg.Sort = tree.SortNone
		}
	}
	if opts.theme != "" {
		cfg.Look.Theme = opts.theme
	}
}

// applyIntents dispatches the flag-requested operations in a fixed order:
// toggles first, then search, then checkbox changes.
func applyIntents(f tree.Forest, cfg tree.Config, opts *rootOptions, lgr *logr.Logger) (tree.Forest, error) {
	for _, key := range opts.toggleKeys {
		f = tree.Update(tree.ToggleMsg{Key: key}, f)
	}
	if opts.toggleAll {
		f = tree.ToggleAll(f)
	}
	if opts.search != "" {
		f = tree.Update(tree.SearchMsg{Text: opts.search}, f)
	}

	checkKeys := opts.checkKeys
	if opts.pickExpr != "" {
		p, err := expr.Compile(opts.pickExpr)
		if err != nil {
			return nil, err
		}
		picked, err := expr.MatchingKeys(p, f)
		if err != nil {
			return nil, err
		}
		if len(picked) == 0 {
			lgr.Info("pick expression matched no nodes", "expr", opts.pickExpr)
		}
		checkKeys = append(checkKeys, picked...)
	}
	for _, key := range checkKeys {
		f = tree.Update(tree.SetCheckedMsg{
			Multiple: cfg.Checkbox.Multiple,
			Cascade:  cfg.Checkbox.Cascade,
			Key:      key,
			Previous: checkedState(f, key),
		}, f)
	}
	return f, nil
}

// checkedState reads the current checked value of the first node with the
// given key, which is the value a CLI caller last observed.
func checkedState(f tree.Forest, key string) bool {
	checked := false
	tree.Walk(f, func(n tree.Node, _ int) bool {
		if n.Key == key {
			checked = n.Checked
			return false
		}
		return true
	})
	return checked
}
