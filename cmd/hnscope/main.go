package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/hnscope/pkg/config"
	"github.com/umputun/hnscope/pkg/domain"
	"github.com/umputun/hnscope/pkg/feedback"
	"github.com/umputun/hnscope/pkg/hn"
	"github.com/umputun/hnscope/pkg/pager"
	"github.com/umputun/hnscope/pkg/repository"
	"github.com/umputun/hnscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used if not set"`

	List struct {
		Feed  string `short:"f" long:"feed" default:"top" description:"feed to list: top, new, best, ask, show or job"`
		Pages int    `short:"p" long:"pages" default:"1" description:"number of pages to load"`
	} `command:"list" description:"list stories of a feed"`

	Thread struct {
		ID    int64 `long:"id" required:"true" description:"parent item id"`
		Pages int   `short:"p" long:"pages" default:"1" description:"number of pages to load"`
	} `command:"thread" description:"list direct replies to an item"`

	Feedback struct {
		Save struct {
			Rating  int    `short:"r" long:"rating" description:"rating from 1 to 5"`
			Comment string `short:"m" long:"comment" description:"optional comment"`
		} `command:"save" description:"validate and store feedback"`
		Show  struct{} `command:"show" description:"show stored feedback"`
		Clear struct{} `command:"clear" description:"remove stored feedback"`
	} `command:"feedback" description:"manage the local feedback record"`

	Serve struct{} `command:"serve" description:"run JSON API server"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	command := activeCommand(parser.Active)
	if len(command) == 0 || (command[0] == "feedback" && len(command) == 1) {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, command, os.Stdout)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// activeCommand returns the path of the selected command, e.g. ["feedback", "save"]
func activeCommand(cmd *flags.Command) []string {
	var res []string
	for ; cmd != nil; cmd = cmd.Active {
		res = append(res, cmd.Name)
	}
	return res
}

func run(ctx context.Context, opts Opts, command []string, out io.Writer) error {
	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch strings.Join(command, " ") {
	case "list":
		key, err := domain.ParseFeedKey(opts.List.Feed)
		if err != nil {
			return fmt.Errorf("invalid feed: %w", err)
		}
		return listPages(ctx, cfg, key, opts.List.Pages, out)
	case "thread":
		if opts.Thread.ID <= 0 {
			return fmt.Errorf("invalid item id %d", opts.Thread.ID)
		}
		return listPages(ctx, cfg, domain.ThreadKey(opts.Thread.ID), opts.Thread.Pages, out)
	case "feedback save", "feedback show", "feedback clear":
		return runFeedback(ctx, cfg, opts, command[1], out)
	case "serve":
		return serve(ctx, cfg, opts.Debug)
	default:
		return fmt.Errorf("unknown command %q", strings.Join(command, " "))
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		log.Printf("[DEBUG] no config file, using defaults")
		return config.Default(), nil
	}
	return config.Load(path)
}

func newClient(cfg *config.Config) *hn.Client {
	return hn.NewClient(hn.Params{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		Burst:     cfg.API.Burst,
		UserAgent: cfg.API.UserAgent,
	})
}

func newAssembler(cfg *config.Config, fetcher pager.ItemFetcher) *pager.Assembler {
	return pager.NewAssembler(pager.AssemblerParams{
		Fetcher:       fetcher,
		MaxConcurrent: cfg.Pager.MaxConcurrent,
		RetryFunc:     pager.NewBackoffRetry(cfg.Retry.Attempts, cfg.Retry.InitialDelay, cfg.Retry.MaxDelay),
	})
}

// listPages drives the list controller over the given number of pages and prints the result
func listPages(ctx context.Context, cfg *config.Config, key domain.FeedKey, pages int, out io.Writer) error {
	client := newClient(cfg)
	ctrl := pager.NewController(pager.ControllerParams{
		Source:    client,
		Assembler: newAssembler(cfg, client),
		PageSize:  cfg.Pager.PageSize,
	})
	defer ctrl.Close()

	ctrl.SetFeed(ctx, key)
	ctrl.Wait()
	for i := 1; i < pages; i++ {
		if ctrl.State().Err != nil || !ctrl.LoadMore(ctx) {
			break
		}
		ctrl.Wait()
	}

	st := ctrl.State()
	if st.Err != nil {
		if len(st.Items) == 0 {
			return fmt.Errorf("failed to load %s: %w", key, st.Err)
		}
		log.Printf("[WARN] stopped loading %s after %d pages: %v", key, len(st.Pages), st.Err)
	}
	log.Printf("[DEBUG] %s: %d items in %d pages, exhausted %v", key, len(st.Items), len(st.Pages), st.Exhausted)

	if len(st.Items) == 0 {
		fmt.Fprintf(out, "nothing in %s\n", key)
		return nil
	}
	printItems(out, st.Items)
	if st.Exhausted {
		fmt.Fprintln(out, "-- end of list --")
	}
	return nil
}

func printItems(out io.Writer, items []domain.Item) {
	title := color.New(color.Bold).SprintFunc()
	meta := color.New(color.FgHiBlack).SprintFunc()
	for i, it := range items {
		if it.Type == domain.ItemComment {
			fmt.Fprintf(out, "%3d. %s\n", i+1, meta(fmt.Sprintf("%s, %s", it.By, age(it.PostedAt()))))
			for _, line := range strings.Split(hn.PlainText(it.Text), "\n") {
				fmt.Fprintf(out, "     %s\n", line)
			}
			continue
		}
		site := ""
		if s := hn.Site(it.URL); s != "" {
			site = " (" + s + ")"
		}
		fmt.Fprintf(out, "%3d. %s%s\n", i+1, title(it.Title), site)
		fmt.Fprintf(out, "     %s\n", meta(fmt.Sprintf("%d points by %s, %d comments, id %d", it.Score, it.By, it.Descendants, it.ID)))
	}
}

// age formats the time since t in the largest whole unit
func age(t time.Time) string {
	if t.IsZero() {
		return "unknown time"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func newFeedbackForm(ctx context.Context, cfg *config.Config) (*feedback.Form, *repository.Repositories, error) {
	repos, err := repository.NewRepositories(ctx, repository.Config{DSN: cfg.Feedback.DSN})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open feedback store: %w", err)
	}
	form := feedback.NewForm(feedback.Params{
		Store:            repos.Feedback,
		Key:              cfg.Feedback.Key,
		MaxCommentLength: cfg.Feedback.MaxCommentLength,
	})
	return form, repos, nil
}

func runFeedback(ctx context.Context, cfg *config.Config, opts Opts, action string, out io.Writer) error {
	form, repos, err := newFeedbackForm(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	switch action {
	case "save":
		rec, err := form.Save(ctx, opts.Feedback.Save.Rating, opts.Feedback.Save.Comment)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				return fmt.Errorf("feedback rejected: %w", err)
			}
			return fmt.Errorf("failed to save feedback: %w", err)
		}
		fmt.Fprintf(out, "feedback saved: rating %d\n", rec.Rating)
	case "show":
		rec, err := form.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load feedback: %w", err)
		}
		if rec == nil {
			fmt.Fprintln(out, "no feedback saved")
			return nil
		}
		fmt.Fprintf(out, "rating:  %d/%d\ncomment: %s\nsaved:   %s\n", rec.Rating, domain.MaxRating, rec.Comment,
			time.Unix(rec.Timestamp, 0).UTC().Format(time.RFC3339))
	case "clear":
		if err := form.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear feedback: %w", err)
		}
		fmt.Fprintln(out, "feedback cleared")
	}
	return nil
}

func serve(ctx context.Context, cfg *config.Config, debug bool) error {
	form, repos, err := newFeedbackForm(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	client := newClient(cfg)
	srv := server.New(cfg, server.Deps{
		Catalog:   client,
		Assembler: newAssembler(cfg, client),
		Feedback:  form,
	}, revision, debug)

	log.Printf("[INFO] starting hnscope version %s", revision)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	log.Print("[INFO] shutdown complete")
	return nil
}

func setupLog(dbg bool, secs ...string) {
	// stdout is reserved for command output
	logOpts := []lgr.Option{lgr.Out(os.Stderr), lgr.Err(io.Discard)}
	if dbg {
		logOpts = append(logOpts, lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError)
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
