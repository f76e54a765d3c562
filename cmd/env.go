package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/config"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/exercise"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/llm"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/logging"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/skilldev"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/store"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/taxonomy"
)

// env bundles the dependencies a command runs against.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
	tax   *taxonomy.Store
	svc   *skilldev.Service

	closeLog func() error
}

// loadConfig reads the configuration and applies the global flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		if cfg.TaxonomyDir == filepath.Join(cfg.DataDir, "taxonomies") {
			cfg.TaxonomyDir = filepath.Join(dir, "taxonomies")
		}
		cfg.DataDir = dir
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the config file, then EDUCOACH_DB, then the data directory.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	return cfg.ResolveDBPath()
}

// openStore opens only the database, for commands that need no taxonomy.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// openEnv loads config, logging, the store and the taxonomy, and wires the
// skill development service.
func openEnv(cmd *cobra.Command) (*env, error) {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Log.Console == nil {
		cfg.Log.Console = cmd.ErrOrStderr()
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}

	tax := taxonomy.NewStore(cfg.TaxonomyDir, logger)
	if err := tax.Load(ctx); err != nil {
		st.Close()
		closeLog()
		return nil, fmt.Errorf("load taxonomy: %w", err)
	}

	var fallback exercise.Describer
	if cfg.RandomSeed != 0 {
		fallback = exercise.NewSeededDescriber(cfg.RandomSeed)
	} else {
		fallback = exercise.NewTemplateDescriber(nil)
	}
	describer := fallback

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger)
	switch {
	case err == nil:
		describer = exercise.NewLLMDescriber(provider, fallback, exercise.DefaultLLMDescriberConfig(), logger)
	case errors.Is(err, llm.ErrDisabled):
	default:
		fmt.Fprintln(cmd.ErrOrStderr(), "LLM provider not configured:", err)
		fmt.Fprintln(cmd.ErrOrStderr(), "Exercise descriptions will use templates.")
	}

	svc := skilldev.NewService(st, tax, skilldev.Options{
		Describer: describer,
		Logger:    logger,
	})

	return &env{
		cfg:      cfg,
		log:      logger,
		store:    st,
		tax:      tax,
		svc:      svc,
		closeLog: closeLog,
	}, nil
}

// Close dumps metrics when configured, closes the store and flushes logs.
func (e *env) Close() error {
	var errs []error
	if e.cfg.MetricsFile != "" {
		if err := store.EnsureDir(e.cfg.MetricsFile); err != nil {
			errs = append(errs, err)
		} else if err := e.svc.Metrics().WriteTextfile(e.cfg.MetricsFile); err != nil {
			errs = append(errs, err)
		}
	}
	if err := e.store.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := e.closeLog(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// student loads the --student profile, pointing at "student set" when it
// does not exist yet.
func (e *env) student(cmd *cobra.Command) (*learner.Student, error) {
	id, _ := cmd.Flags().GetString("student")
	if id == "" {
		return nil, errors.New("--student is required")
	}
	st, err := e.svc.LoadStudent(cmd.Context(), id)
	if errors.Is(err, skilldev.ErrNotFound) {
		return nil, fmt.Errorf("%w (create it with: educoach student set %s --name NAME)", err, id)
	}
	return st, err
}

// readContent returns --content, or the contents of --file ("-" reads stdin).
func readContent(cmd *cobra.Command) (string, error) {
	content, _ := cmd.Flags().GetString("content")
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return content, nil
	}
	if content != "" {
		return "", errors.New("--content and --file are mutually exclusive")
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	return string(data), nil
}

// subjectFlag returns --subject in its canonical form.
func subjectFlag(cmd *cobra.Command) string {
	subject, _ := cmd.Flags().GetString("subject")
	return learner.NormalizeSubject(subject)
}

func addStudentFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("student", "s", "", "Student ID")
}

func addContentFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("content", "c", "", "Student work to analyse")
	cmd.Flags().StringP("file", "f", "", "Read the student work from a file (- for stdin)")
}
