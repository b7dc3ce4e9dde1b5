package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/pokesearch/internal/config"
	"github.com/five82/pokesearch/internal/logging"
	"github.com/five82/pokesearch/internal/pokeapi"
	"github.com/five82/pokesearch/internal/prefs"
	"github.com/five82/pokesearch/internal/search"
	"github.com/five82/pokesearch/internal/state"
	"github.com/five82/pokesearch/internal/ui"
)

// Options configure the pokesearch application.
type Options struct {
	ConfigPath string // empty uses ~/.config/pokesearch/config.toml
	PrefsPath  string // overrides prefs_path from config when set
	EnvFile    string // dotenv file; empty tries ./.env
	Verbose    bool   // force debug logging
}

// Env holds the wired dependencies shared by the TUI and the headless commands.
type Env struct {
	Config    config.Config
	Logger    *zap.Logger
	Client    *pokeapi.Client
	Resolver  *search.Resolver
	PrefsPath string

	flush func()
}

// Setup loads configuration and builds the logger, API client and resolver.
// Call Close when done.
func Setup(opts Options) (*Env, error) {
	if err := config.LoadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logger, flush, err := logging.New(cfg.LogFile, level)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := pokeapi.NewClient(cfg.APIURL, cfg.RequestTimeout, logger.Named("pokeapi"))
	if err != nil {
		flush()
		return nil, fmt.Errorf("init pokeapi client: %w", err)
	}

	searchLog := logger.Named("search")
	aggregator := search.NewAggregator(client, cfg.FetchConcurrency, searchLog)

	prefsPath := cfg.PrefsPath
	if p := strings.TrimSpace(opts.PrefsPath); p != "" {
		prefsPath = p
	}

	logger.Debug("pokesearch configured",
		zap.String("api_url", cfg.APIURL),
		zap.Int("page_limit", cfg.PageLimit),
		zap.Duration("request_timeout", cfg.RequestTimeout),
		zap.Int("fetch_concurrency", cfg.FetchConcurrency),
		zap.String("prefs_path", prefsPath),
	)

	return &Env{
		Config:    cfg,
		Logger:    logger,
		Client:    client,
		Resolver:  search.NewResolver(client, aggregator, searchLog),
		PrefsPath: prefsPath,
		flush:     flush,
	}, nil
}

// Close flushes buffered log entries.
func (e *Env) Close() {
	if e.flush != nil {
		e.flush()
	}
}

// NewController restores the persisted search term from the prefs file.
func (e *Env) NewController() *state.Controller {
	return state.New(prefs.NewFileStore(e.PrefsPath), e.Config.PageLimit, e.Logger.Named("state"))
}

// Factory returns a ui.Factory that rebuilds the whole model, preferences
// included, each time it is called.
func (e *Env) Factory(ctx context.Context) ui.Factory {
	return func() tea.Model {
		return ui.New(ui.Options{
			Context:    ctx,
			Controller: e.NewController(),
			Resolver:   e.Resolver,
			Logger:     e.Logger.Named("ui"),
			ThemeName:  e.theme(),
			PrefsPath:  e.PrefsPath,
		})
	}
}

func (e *Env) theme() string {
	p, err := prefs.Load(e.PrefsPath)
	if err != nil {
		e.Logger.Warn("load prefs", zap.String("path", e.PrefsPath), zap.Error(err))
	}
	return p.Theme
}

// Run boots the pokesearch TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	env.Logger.Info("starting tui")
	return ui.Run(ctx, env.Factory(ctx), ui.GetTheme(env.theme()), env.Logger.Named("boundary"))
}
