package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abatilo/powertodo/internal/config"
	todoerrors "github.com/abatilo/powertodo/internal/errors"
	"github.com/abatilo/powertodo/internal/kv"
	"github.com/abatilo/powertodo/internal/output"
	"github.com/abatilo/powertodo/internal/preferences"
	"github.com/abatilo/powertodo/internal/storage"
	"github.com/abatilo/powertodo/internal/task"
)

// app is the composition root shared by every command. It holds the single
// store instance for the process.
type app struct {
	cfg       *config.Config
	cfgPath   string
	slots     kv.Store
	store     *storage.Store
	prefs     *preferences.Manager
	formatter output.Formatter
	logger    *slog.Logger
	now       func() time.Time

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// globalFlags are bound to the root command's persistent flags.
type globalFlags struct {
	configPath string
	dataDir    string
	profile    string
	jsonOutput bool
	verbose    bool
	ephemeral  bool
}

func main() {
	a := &app{in: os.Stdin, out: os.Stdout, errOut: os.Stderr, now: time.Now}
	if err := newRootCmd(a).Execute(); err != nil {
		a.printError(err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:           "powertodo",
		Short:         "A local task tracker with progress statistics",
		Long:          "powertodo - track professional, personal and academic tasks and see how the week is going.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return a.setup(flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (default ~/.config/powertodo/config.yaml)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "Directory holding profiles (default ~/.powertodo)")
	pf.StringVar(&flags.profile, "profile", "", "Profile name")
	pf.BoolVar(&flags.jsonOutput, "json", false, "Output in JSON format")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Log diagnostics to stderr")
	pf.BoolVar(&flags.ephemeral, "ephemeral", false, "Keep everything in memory for this run")

	rootCmd.AddCommand(
		addCmd(a),
		listCmd(a),
		showCmd(a),
		toggleCmd(a),
		rmCmd(a),
		pruneCmd(a),
		statsCmd(a),
		profileCmd(a),
		themeCmd(a),
		nameCmd(a),
		avatarCmd(a),
		resetCmd(a),
		configCmd(a),
	)
	return rootCmd
}

// setup loads configuration and builds the store. Flags override the file.
func (a *app) setup(flags globalFlags) error {
	// Errors during setup are still printed in the requested format.
	a.formatter = output.NewHumanFormatter()
	if flags.jsonOutput {
		a.formatter = output.NewJSONFormatter()
	}

	level := slog.LevelWarn
	if flags.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	a.cfgPath = flags.configPath
	if a.cfgPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		a.cfgPath = path
	}
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if flags.dataDir != "" {
		cfg.DataDir = flags.dataDir
	}
	if flags.profile != "" {
		cfg.Profile = flags.profile
	}
	if flags.jsonOutput {
		cfg.Output = config.OutputJSON
	}
	a.cfg = cfg

	if cfg.Output == config.OutputJSON {
		a.formatter = output.NewJSONFormatter()
	}

	codec, err := storage.NewCodec(cfg.Codec)
	if err != nil {
		return err
	}
	scheme, err := task.ParseScheme(cfg.IDScheme)
	if err != nil {
		return err
	}

	if flags.ephemeral {
		a.slots = kv.NewMemory()
	} else {
		path, pathErr := kv.ProfilePath(cfg.DataDir, cfg.Profile)
		if pathErr != nil {
			return pathErr
		}
		a.slots = kv.NewDir(path)
		a.logger.Debug("using profile", "path", path)
	}

	a.store = storage.Open(a.slots, storage.Options{
		Codec:  codec,
		NewID:  scheme.Generator(),
		Now:    func() time.Time { return a.now().UTC() },
		Logger: a.logger,
	})
	a.prefs = preferences.NewManager(a.slots)
	return nil
}

func (a *app) print(s string) {
	io.WriteString(a.out, s) //nolint:errcheck // stdout write errors are unrecoverable
}

func (a *app) printError(err error) {
	f := a.formatter
	if f == nil {
		f = output.NewHumanFormatter()
	}
	io.WriteString(a.out, f.FormatError(err)) //nolint:errcheck // stdout write errors are unrecoverable
}

// checkPersist downgrades a storage write failure to a warning. Every other
// error is returned unchanged.
func (a *app) checkPersist(err error) error {
	var perr todoerrors.PersistError
	if errors.As(err, &perr) {
		io.WriteString(a.errOut, a.formatter.FormatWarning(perr)) //nolint:errcheck // stderr write errors are unrecoverable
		return nil
	}
	return err
}
