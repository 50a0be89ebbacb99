// Package internal provides the main application initialization and
// pipeline logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/checksum"
	"github.com/starford/dagaz/internal/classify"
	"github.com/starford/dagaz/internal/generator"
	"github.com/starford/dagaz/internal/gitrepo"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/noteindex"
	"github.com/starford/dagaz/internal/notify"
	"github.com/starford/dagaz/internal/parser"
	"github.com/starford/dagaz/internal/runlock"
	"github.com/starford/dagaz/internal/runlog"
	"github.com/starford/dagaz/internal/scheduler"
	"github.com/starford/dagaz/internal/storage"
)

// fallbackTitle substitutes for notes whose content carries no H1 heading;
// the system never emits a blank title.
const fallbackTitle = "daily-note"

func newApplication(opts ...Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if app.logger == nil {
		app.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: app.config.App.LogLevel,
		}))
		slog.SetDefault(app.logger)
	}
	if app.now == nil {
		app.now = time.Now
	}
	if app.gen == nil {
		gc := app.config.Generator
		app.gen = generator.New(gc.Command, gc.Args, gc.Prompt, gc.Timeout())
	}
	return app, nil
}

// RunOnce executes one pipeline run: generate → save → index → ledger →
// git → notify. force bypasses the same-day ledger guard; dryRun stops
// after classification without writing anything.
func RunOnce(ctx context.Context, force, dryRun bool, opts ...Option) error {
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}
	return app.runOnce(ctx, force, dryRun)
}

func (a *application) runOnce(ctx context.Context, force, dryRun bool) error {
	cfg := a.config
	logger := a.logger

	if err := os.MkdirAll(cfg.Repo.Path, 0o755); err != nil {
		return fmt.Errorf("create repo dir: %w", err)
	}

	lock := runlock.New(cfg.Repo.Path)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	store, err := storage.NewFS(cfg.Repo.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	ledger, err := runlog.Open(cfg.Runlog.Path)
	if err != nil {
		return fmt.Errorf("init run ledger: %w", err)
	}
	defer ledger.Close()

	date := a.now()
	dateStr := date.Format("2006-01-02")

	if !force && !dryRun {
		ran, err := ledger.HasDate(dateStr)
		if err != nil {
			return err
		}
		if ran {
			return fmt.Errorf("%w: %s", apperr.ErrAlreadyRan, dateStr)
		}
	}

	// Generation failure is the one condition that aborts the run outright:
	// without content there is no artifact to save.
	content, err := a.gen.Generate(ctx)
	if err != nil {
		return err
	}

	note, category := a.buildNote(content, date)
	logger.Info("note generated",
		slog.String("title", note.Title),
		slog.String("slug", note.Slug),
		slog.String("category", category.Name),
		slog.String("path", note.Path()))

	if dryRun {
		logger.Info("dry run, nothing written")
		return nil
	}

	if err := store.Write(note.Path(), []byte(note.RawContent)); err != nil {
		return fmt.Errorf("save note: %w", err)
	}

	status := a.updateIndex(store, note, category, date)

	if _, err := ledger.Record(models.RunRecord{
		Date:     dateStr,
		Title:    note.Title,
		Slug:     note.Slug,
		Category: category.Name,
		Path:     note.Path(),
		Checksum: checksum.Sum([]byte(note.RawContent)),
		Status:   status,
	}); err != nil {
		logger.Warn("run ledger write failed", slog.String("error", err.Error()))
	}

	if cfg.Git.Enabled {
		if err := a.commitAndPush(ctx, note, dateStr); err != nil {
			return err
		}
	}

	a.sendNotifications(ctx, notify.Message{
		Title:   note.Title,
		Summary: note.Summary,
		Path:    note.Path(),
		Date:    dateStr,
	})

	logger.Info("run complete", slog.String("date", dateStr), slog.String("status", status))
	return nil
}

// buildNote extracts title and summary from the generated content and
// applies the fallback policy for headingless content and empty slugs.
func (a *application) buildNote(content string, date time.Time) (models.Note, models.Category) {
	res := parser.Parse([]byte(content))

	title := res.Title
	if title == "" {
		a.logger.Warn("no heading in generated content, using fallback title")
		title = fallbackTitle
	}

	slug := parser.DeriveSlug(title)
	if slug == "" {
		slug = "note-" + checksum.Short([]byte(title))
		a.logger.Warn("title stripped to empty slug, using fallback",
			slog.String("title", title), slog.String("slug", slug))
	}

	note := models.Note{
		RawContent: content,
		Title:      title,
		Slug:       slug,
		Summary:    res.Summary,
		Date:       date,
	}
	return note, a.classifier().Classify(title)
}

func (a *application) classifier() *classify.Classifier {
	rules := make([]classify.Rule, 0, len(a.config.Categories))
	for _, cc := range a.config.Categories {
		rules = append(rules, classify.Rule{
			Category: models.Category{Name: cc.Name, Heading: cc.Heading},
			Keywords: cc.Keywords,
		})
	}
	catchAll := models.Category{Name: a.config.Fallback.Name, Heading: a.config.Fallback.Heading}
	return classify.New(rules, catchAll)
}

// updateIndex inserts the note's entry into the index document. Index
// trouble degrades the run to "partial" instead of failing it: the note
// itself is already saved.
func (a *application) updateIndex(store storage.Provider, note models.Note, category models.Category, date time.Time) string {
	cfg := a.config
	logger := a.logger

	data, err := store.Read(cfg.Repo.IndexFile)
	if err != nil {
		logger.Warn("index document unreadable, skipping index update",
			slog.String("file", cfg.Repo.IndexFile), slog.String("error", err.Error()))
		return "partial"
	}

	entry := noteindex.FormatEntry(date, note.Title, note.Path())
	updated, err := noteindex.InsertEntry(string(data), category.Heading, cfg.Sentinel, entry)
	if err != nil {
		if errors.Is(err, apperr.ErrSectionNotFound) {
			logger.Warn("category section missing from index, skipping index update",
				slog.String("heading", category.Heading))
			return "partial"
		}
		logger.Warn("index update failed", slog.String("error", err.Error()))
		return "partial"
	}

	if err := store.Write(cfg.Repo.IndexFile, []byte(updated)); err != nil {
		logger.Warn("index write failed", slog.String("error", err.Error()))
		return "partial"
	}
	return "ok"
}

// commitAndPush version-controls the run's artifacts. Push failure is fatal
// to the run: the note would otherwise silently stay local.
func (a *application) commitAndPush(ctx context.Context, note models.Note, dateStr string) error {
	cfg := a.config
	runner := gitrepo.New(cfg.Repo.Path, cfg.Git.Remote, cfg.Git.Branch)
	if !runner.IsRepo(ctx) {
		a.logger.Warn("repo path is not a git work tree, skipping commit",
			slog.String("path", cfg.Repo.Path))
		return nil
	}
	message := fmt.Sprintf("Add daily note %s: %s", dateStr, note.Title)
	if err := runner.CommitAndPush(ctx, message, note.Path(), cfg.Repo.IndexFile); err != nil {
		return err
	}
	a.logger.Info("pushed", slog.String("message", message))
	return nil
}

// sendNotifications fans the run result out to the enabled channels.
// Failures are logged, never propagated.
func (a *application) sendNotifications(ctx context.Context, msg notify.Message) {
	cfg := a.config
	logger := a.logger

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Notify.Webhook.Enabled() {
		g.Go(func() error {
			client := notify.NewWebhook(cfg.Notify.Webhook.URL, cfg.Notify.Webhook.Timeout())
			if err := client.Send(gCtx, msg); err != nil {
				logger.Warn("webhook notification failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	if cfg.Notify.Email.Enabled() {
		g.Go(func() error {
			ec := cfg.Notify.Email
			client := notify.NewEmail(ec.Host, ec.Port, ec.Username, ec.Password, ec.From, ec.To)
			if err := client.Send(msg); err != nil {
				logger.Warn("email notification failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	_ = g.Wait()
}

// Run starts the daemon: the pipeline fires on the configured cron
// expression until SIGINT/SIGTERM.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.logger

	logger.Info("configuration loaded",
		slog.String("repo_path", cfg.Repo.Path),
		slog.String("index_file", cfg.Repo.IndexFile),
		slog.String("schedule", cfg.Schedule.Cron),
		slog.String("log_level", cfg.App.LogLevel.String()))

	svc := scheduler.New(cfg.Schedule.Cron, func(runCtx context.Context) error {
		err := app.runOnce(runCtx, false, false)
		if errors.Is(err, apperr.ErrAlreadyRan) || errors.Is(err, apperr.ErrLocked) {
			logger.Warn("scheduled run skipped", slog.String("reason", err.Error()))
			return nil
		}
		return err
	})

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := svc.Start(gCtx, func(err error) {
			logger.Error("scheduled run failed", slog.String("error", err.Error()))
		}); err != nil {
			return err
		}
		logger.Info("scheduler started", slog.Time("next_run", svc.Next()))
		<-gCtx.Done()
		svc.Stop()
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("received shutdown signal", slog.String("signal", sig.String()))
			return context.Canceled
		case <-gCtx.Done():
			return nil
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("daemon error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("daemon stopped")
	return nil
}

// InitRepo scaffolds the notes repository: the directory plus a seeded
// index document containing every configured category section with the
// sentinel line. InsertEntry never creates sections, so this is the only
// place sections come from.
func InitRepo(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts...)
	if err != nil {
		return err
	}
	cfg := app.config

	if err := os.MkdirAll(cfg.Repo.Path, 0o755); err != nil {
		return fmt.Errorf("create repo dir: %w", err)
	}
	store, err := storage.NewFS(cfg.Repo.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	exists, err := store.Exists(cfg.Repo.IndexFile)
	if err != nil {
		return err
	}
	if exists {
		app.logger.Info("index document already exists, leaving it untouched",
			slog.String("file", cfg.Repo.IndexFile))
		return nil
	}

	var b strings.Builder
	b.WriteString("# 每日學習筆記\n")
	for _, cc := range cfg.Categories {
		fmt.Fprintf(&b, "\n%s\n\n%s\n", cc.Heading, cfg.Sentinel)
	}
	fmt.Fprintf(&b, "\n%s\n\n%s\n", cfg.Fallback.Heading, cfg.Sentinel)

	if err := store.Write(cfg.Repo.IndexFile, []byte(b.String())); err != nil {
		return err
	}
	app.logger.Info("index document created", slog.String("file", cfg.Repo.IndexFile))
	return nil
}

// StatusInfo summarizes the deployment for the status command.
type StatusInfo struct {
	RepoPath   string
	IndexFile  string
	NoteCount  int
	RecentRuns []models.RunRecord
}

// Status collects note counts and recent ledger rows.
func Status(_ context.Context, opts ...Option) (*StatusInfo, error) {
	app, err := newApplication(opts...)
	if err != nil {
		return nil, err
	}
	cfg := app.config

	info := &StatusInfo{
		RepoPath:  cfg.Repo.Path,
		IndexFile: cfg.Repo.IndexFile,
	}

	if store, err := storage.NewFS(cfg.Repo.Path); err == nil {
		if paths, err := store.List(""); err == nil {
			// The index document itself is a .md file; keep the count to notes.
			for _, p := range paths {
				if p != cfg.Repo.IndexFile {
					info.NoteCount++
				}
			}
		}
	}

	if ledger, err := runlog.Open(cfg.Runlog.Path); err == nil {
		defer ledger.Close()
		if rows, err := ledger.Recent(5); err == nil {
			info.RecentRuns = rows
		}
	}

	return info, nil
}
