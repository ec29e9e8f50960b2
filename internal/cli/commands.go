package cli

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/bibsort/internal/version"
	"github.com/arthur-debert/bibsort/pkg/bibtex"
	"github.com/arthur-debert/bibsort/pkg/config"
	"github.com/arthur-debert/bibsort/pkg/doi"
	"github.com/arthur-debert/bibsort/pkg/errors"
	"github.com/arthur-debert/bibsort/pkg/filesystem"
	"github.com/arthur-debert/bibsort/pkg/format"
	"github.com/arthur-debert/bibsort/pkg/logging"
	"github.com/arthur-debert/bibsort/pkg/selection"
	"github.com/arthur-debert/bibsort/pkg/topics"
	"github.com/arthur-debert/bibsort/pkg/types"
	"github.com/arthur-debert/bibsort/pkg/ui"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbosity  int
	configPath string
	format     string
	output     string
	keys       string
	merge      []string
	keyWidth   int
	wrapWidth  int

	fsys types.FS
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{fsys: filesystem.NewOS()}

	rootCmd := &cobra.Command{
		Use:     "bibsort <file>",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    exactlyOneFile,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			logging.LogCommand(cmd.Name(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, opts, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&opts.configPath, "config", "", MsgFlagConfig)
	flags.StringVar(&opts.keys, "keys", "", MsgFlagKeys)
	flags.StringArrayVar(&opts.merge, "merge", nil, MsgFlagMerge)
	flags.IntVar(&opts.keyWidth, "key-width", format.DefaultKeyWidth, MsgFlagKeyWidth)
	flags.IntVar(&opts.wrapWidth, "wrap-width", format.DefaultWrapWidth, MsgFlagWrapWidth)

	rootCmd.Flags().StringVarP(&opts.format, "format", "f", ui.FormatBib.String(), MsgFlagFormat)
	rootCmd.Flags().StringVarP(&opts.output, "output", "o", "", MsgFlagOutput)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return ui.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newFieldsCmd(opts))
	rootCmd.AddCommand(newAbstractsCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Topic-based help replaces cobra's help command
	var renderer topics.Renderer = &topics.PlainRenderer{}
	if ui.IsStyled(os.Stdout) {
		renderer = topics.NewGlamourRenderer()
	}
	if tm, err := topics.New(renderer); err == nil {
		tm.Install(rootCmd)
		rootCmd.AddCommand(tm.Command())
	}

	return rootCmd
}

// UsageMessage returns the text printed on standard output for a usage
// error, or "" when err is not one.
func UsageMessage(err error) string {
	if !errors.IsErrorCode(err, errors.ErrUsage) {
		return ""
	}
	return MsgExpectedPath
}

func exactlyOneFile(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New(errors.ErrUsage, MsgExpectedPath).
			WithDetail("args", len(args))
	}
	return nil
}

// loadConfig layers the configuration files, the environment and the
// width flags that were set explicitly.
func (o *globalOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("key-width") {
		overrides["layout.key_width"] = o.keyWidth
	}
	if cmd.Flags().Changed("wrap-width") {
		overrides["layout.wrap_width"] = o.wrapWidth
	}
	return config.Load(config.LoadOptions{
		Path:      o.configPath,
		Dir:       ".",
		Overrides: overrides,
	})
}

// loadDatabase parses path, appends the --merge files and applies --keys.
func (o *globalOptions) loadDatabase(path string) (*types.Database, error) {
	paths := append([]string{path}, o.merge...)
	dbs := make([]*types.Database, 0, len(paths))
	for _, p := range paths {
		db, err := readDatabase(o.fsys, p)
		if err != nil {
			return nil, err
		}
		dbs = append(dbs, db)
	}
	db := selection.Merge(dbs...)

	if o.keys != "" {
		keys, err := selection.ReadKeys(o.fsys, o.keys)
		if err != nil {
			return nil, err
		}
		db = selection.Filter(db, keys)
	}
	return db, nil
}

func readDatabase(fsys types.FS, path string) (*types.Database, error) {
	r, err := filesystem.Open(fsys, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	db, err := bibtex.Parse(r)
	if err != nil {
		return nil, errors.Wrapf(err, errors.GetErrorCode(err), MsgErrReadDatabase, path).
			WithDetail("path", path)
	}
	log.Debug().Str("path", path).Int("entries", db.Len()).Msg("Read bibliography")
	return db, nil
}

func runFormat(cmd *cobra.Command, opts *globalOptions, path string) error {
	done := logging.LogOperationStart(logging.GetLogger("cli"), "format")
	defer done()

	f, err := ui.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := opts.loadDatabase(path)
	if err != nil {
		return err
	}

	return writeDatabase(cmd, opts.fsys, opts.output, f, cfg, db)
}

// writeDatabase renders db to output, or to standard output when output
// is empty.
func writeDatabase(cmd *cobra.Command, fsys types.FS, output string, f ui.Format, cfg *config.Config, db *types.Database) error {
	var buf bytes.Buffer
	var out io.Writer = cmd.OutOrStdout()
	if output != "" {
		out = &buf
	}

	r, err := ui.NewRenderer(f, out, format.NewRenderer(cfg.FormatOptions()))
	if err != nil {
		return err
	}
	if err := r.Render(db); err != nil {
		return err
	}

	if output != "" {
		if err := filesystem.WriteFile(fsys, output, buf.Bytes()); err != nil {
			return err
		}
		log.Info().Str("path", output).Int("entries", db.Len()).Msg("Wrote bibliography")
	}
	return nil
}

func newFieldsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <file> <field>",
		Short: MsgFieldsShort,
		Long:  MsgFieldsLong,
		Example: `  # Titles of every entry
  bibsort fields refs.bib title

  # Years of the entries cited in a paper
  bibsort fields refs.bib year --keys cited.txt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.loadDatabase(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			styled := false
			if f, ok := out.(*os.File); ok {
				styled = ui.IsStyled(f)
			}

			field := strings.ToLower(args[1])
			n, err := ui.ListField(out, db, field, styled)
			if err != nil {
				return err
			}
			log.Info().Str("field", field).Int("listed", n).Int("entries", db.Len()).Msg("Listed field")
			return nil
		},
	}
}

func newAbstractsCmd(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "abstracts <file>",
		Short: MsgAbstractsShort,
		Long:  MsgAbstractsLong,
		Example: `  # Fill in abstracts and rewrite the file
  bibsort abstracts refs.bib -o refs.bib`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			db, err := opts.loadDatabase(args[0])
			if err != nil {
				return err
			}

			client := doi.NewClient(
				doi.WithBaseURL(cfg.Online.CrossrefURL),
				doi.WithHTTPClient(&http.Client{Timeout: cfg.Online.Timeout()}),
				doi.WithUserAgent(cfg.Online.UserAgent),
			)

			report := cmd.ErrOrStderr()
			summary, err := doi.UpdateAbstracts(cmd.Context(), db, client, func(n int, key, abstract string) {
				_, _ = fmt.Fprintf(report, MsgAbstractsProgress, n, key, abstract)
			})
			if err != nil {
				return err
			}
			for _, f := range summary.Failed {
				_, _ = fmt.Fprintf(report, MsgAbstractsMissing, f.Key, f.DOI, f.Err)
			}
			_, _ = fmt.Fprintf(report, MsgAbstractsSummary, len(summary.Updated), len(summary.Failed))

			return writeDatabase(cmd, opts.fsys, output, ui.FormatBib, cfg, db)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	return cmd
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long: `Config prints the configuration bibsort would use in the current
directory, after merging the built-in defaults, the user and project files,
BIBSORT_* environment variables and flags. The output is valid TOML and can
be saved as .bibsort.toml to start a project configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg *config.Config
				err error
			)
			if defaults {
				cfg, err = config.Default()
			} else {
				cfg, err = opts.loadConfig(cmd)
			}
			if err != nil {
				return err
			}

			content, err := config.GenerateTOML(cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, MsgVersionFormat, version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, MsgBuiltFormat, version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: MsgCompletionShort,
		Long: `To load completions:

Bash:
  $ source <(bibsort completion bash)

Zsh:
  $ bibsort completion zsh > "${fpath[1]}/_bibsort"

Fish:
  $ bibsort completion fish > ~/.config/fish/completions/bibsort.fish

PowerShell:
  PS> bibsort completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
