package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/s0up4200/wtw/actions"
	"github.com/s0up4200/wtw/api"
	"github.com/s0up4200/wtw/config"
	"github.com/s0up4200/wtw/filter"
	"github.com/s0up4200/wtw/nav"
	"github.com/s0up4200/wtw/state"
	"github.com/s0up4200/wtw/token"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	store   *state.Store
	acts    *actions.Actions
	filters *filter.Manager

	// reported is set once an error has been shown through the error slot
	reported bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wtw",
	Short: "Browse the What-to-Watch film catalog from the terminal",
	Long: `wtw is a command-line client for the What-to-Watch service. It lists and
filters the catalog, shows film pages with reviews and similar films, and
manages your session, favorites and reviews.`,
	PersistentPreRunE: initializeApp,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !reported {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// skipInit lists commands that run without configuration
var skipInit = map[string]bool{
	"version":    true,
	"update":     true,
	"help":       true,
	"completion": true,
}

// initializeApp loads the configuration and wires the client, store and
// operations together
func initializeApp(cmd *cobra.Command, args []string) error {
	if skipInit[cmd.Name()] {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	tokens, err := token.NewFileStore(afero.NewOsFs(), cfg.Token.Path, cfg.Token.Key, logger)
	if err != nil {
		return fmt.Errorf("failed to open token store: %w", err)
	}

	opts := []api.Option{
		api.WithTimeout(cfg.API.Timeout),
		api.WithTokenHeader(cfg.API.TokenHeader),
	}
	if cfg.API.UserAgent != "" {
		opts = append(opts, api.WithUserAgent(cfg.API.UserAgent))
	}

	client, err := api.NewClient(cfg.API.URL, tokens, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}

	store = state.New()
	store.Subscribe(renderError)

	acts = actions.New(client, store, tokens, nav.NewLogRedirector(logger), logger,
		actions.WithClearErrorDelay(cfg.Errors.ClearDelay))

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	return nil
}

// renderError prints the error slot whenever it is set
func renderError(slice state.Slice) {
	if slice != state.SliceError {
		return
	}
	if msg, ok := store.Error(); ok {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	}
}

// report surfaces err through the error slot and returns it for the exit code
func report(err error) error {
	if err == nil {
		return nil
	}
	acts.ReportError(err)
	reported = true
	return err
}

// commandContext bounds a command by the API timeout, per request, times
// the number of requests it issues
func commandContext(requests int) (context.Context, context.CancelFunc) {
	if cfg.API.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), time.Duration(requests)*cfg.API.Timeout)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// No color codes when stderr is redirected
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
