package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"umlage/internal/building"
	"umlage/internal/classify"
	"umlage/internal/config"
	"umlage/internal/draft"
	"umlage/internal/email/noop"
	"umlage/internal/email/ses"
	"umlage/internal/extract"
	"umlage/internal/metrics"
	"umlage/internal/oracle"
	"umlage/internal/oracle/claude"
	"umlage/internal/oracle/gemini"
	"umlage/internal/oracle/openai"
	"umlage/internal/pdftext"
	"umlage/internal/port"
	"umlage/internal/repository/postgres"
	"umlage/internal/service"
	s3storage "umlage/internal/storage/s3"
	"umlage/internal/validator"
)

func init() {
	oracle.RegisterProvider("openai", openai.Factory)
	oracle.RegisterProvider("claude", claude.Factory)
	oracle.RegisterProvider("gemini", gemini.Factory)
}

// App holds the wired components shared by the server and the CLI.
type App struct {
	Config     *config.Config
	Log        zerolog.Logger
	Metrics    *metrics.Metrics
	Matcher    *building.Matcher
	Classifier port.CostClassifier
	Service    service.InvoiceService
	// Health is nil unless the building directory lives in Postgres.
	Health port.HealthChecker

	closers []func() error
}

// New wires every component from cfg. The returned App must be closed.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
	}

	o, err := NewOracle(&cfg.Oracle, a.Metrics, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	src, health, closer, err := NewBuildingSource(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}
	a.Health = health
	a.Matcher, err = building.LoadMatcher(ctx, src)
	if err != nil {
		a.Close()
		return nil, err
	}
	log.Info().Int("buildings", len(a.Matcher.Buildings())).Str("source", cfg.Buildings.Source).Msg("building directory loaded")

	archive, err := NewArchive(&cfg.Archive)
	if err != nil {
		a.Close()
		return nil, err
	}
	notifier, err := NewNotifier(&cfg.Email, log)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Classifier = classify.NewClassifier(o, log)
	stages := service.Stages{
		Text:       pdftext.NewExtractor(),
		Fields:     extract.NewExtractor(o, log),
		Validator:  validator.New(validator.NewScopeValidator(o, log), validator.NewLegalValidator(o, log)),
		Matcher:    a.Matcher,
		Classifier: a.Classifier,
		Drafts:     draft.NewNoopStore(log),
	}
	a.Service = service.NewInvoiceService(stages, archive, notifier, a.Metrics, service.InvoiceServiceConfig{
		Concurrency:   cfg.Pipeline.Concurrency,
		FileTimeout:   cfg.Pipeline.FileTimeout,
		MaxFiles:      cfg.Pipeline.MaxFiles,
		MaxFileSize:   cfg.Pipeline.MaxFileSizeBytes(),
		ArchivePrefix: cfg.Archive.Prefix,
	}, log)

	return a, nil
}

// Close releases held resources such as the database pool.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Log.Warn().Err(err).Msg("closing resource")
		}
	}
	a.closers = nil
}

// NewBuildingSource returns the configured building directory. For the
// Postgres source it also returns the pool as a health checker and its
// close function.
func NewBuildingSource(ctx context.Context, cfg *config.Config) (port.BuildingSource, port.HealthChecker, func() error, error) {
	switch cfg.Buildings.Source {
	case "", "static":
		return building.NewStaticSource(), nil, nil, nil
	case "postgres":
		db, err := postgres.NewDB(ctx, &cfg.DB)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		repo := postgres.NewBuildingRepo(db)
		return repo, repo, db.Close, nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown building source: %s", cfg.Buildings.Source)
	}
}

// NewOracle builds the primary oracle, wraps it in a fallback chain when a
// secondary provider is configured, and instruments it when m is non-nil.
func NewOracle(cfg *config.OracleConfig, m *metrics.Metrics, log zerolog.Logger) (port.Oracle, error) {
	primary, err := oracle.New(cfg.PrimaryConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize primary oracle: %w", err)
	}

	o := primary
	if sec := cfg.SecondaryConfig(); sec != nil {
		secondary, err := oracle.New(sec)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize secondary oracle: %w", err)
		}
		o = oracle.NewFallback(
			[]port.Oracle{primary, secondary},
			[]string{cfg.PrimaryConfig().Provider + "/primary", sec.Provider + "/secondary"},
			log,
		)
	}
	return metrics.InstrumentOracle(o, m), nil
}

// NewArchive returns the object storage for flagged invoices, or nil when
// archiving is disabled.
func NewArchive(cfg *config.ArchiveConfig) (port.ObjectStorage, error) {
	switch cfg.Provider {
	case "", "noop":
		return nil, nil
	case "s3":
		client, err := s3storage.NewS3Client(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown archive provider: %s", cfg.Provider)
	}
}

// NewNotifier returns the review notifier selected by cfg.Provider.
func NewNotifier(cfg *config.EmailConfig, log zerolog.Logger) (port.ReviewNotifier, error) {
	switch cfg.Provider {
	case "", "noop":
		return noop.NewNoopNotifier(log), nil
	case "ses":
		n, err := ses.NewSESNotifier(cfg.Region, cfg.FromAddress, cfg.FromName, cfg.Reviewers)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES notifier: %w", err)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}
}
