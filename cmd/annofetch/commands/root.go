package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ncobase/annofetch/config"
	"github.com/ncobase/annofetch/ecode"
	"github.com/ncobase/annofetch/fetcher"
	"github.com/ncobase/annofetch/hypothesis"
	"github.com/ncobase/annofetch/log"
	"github.com/ncobase/annofetch/paging"
	"github.com/ncobase/annofetch/tracing"
	"github.com/ncobase/annofetch/version"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command-line flags to config keys
var flagKeys = map[string]string{
	"endpoint":       "api.endpoint",
	"timeout":        "api.timeout",
	"limit":          "fetch.limit",
	"max-pages":      "fetch.max_pages",
	"stop-on-repeat": "fetch.stop_on_repeat",
	"output":         "output",
	"log-level":      "logger.level",
	"log-format":     "logger.format",
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var configFile string
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "annofetch <URL>",
		Short: "Fetch all public Hypothesis annotations of a web page",
		Long: `Fetch all public annotations attached to a web page from the Hypothesis
search API and print them as a single JSON array on standard output.

Pages of up to 200 annotations are requested newest first until the API
returns an empty page. A progress line is written to standard error after
every page.`,
		Example:       "  annofetch https://example.com/article > annotations.json",
		Args:          urlArg,
		Version:       version.GetVersionInfo().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, configFile, strings.TrimSpace(args[0]))
		},
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return ecode.Usage("%v", err)
	})

	flags := rootCmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "config file path")
	flags.String("endpoint", config.DefaultEndpoint, "search API endpoint")
	flags.Int("limit", paging.DefaultLimit, "annotations per page (1-200)")
	flags.Duration("timeout", 0, "per-request timeout, 0 waits forever")
	flags.Int("max-pages", 0, "fail after this many non-empty pages, 0 for no limit")
	flags.Bool("stop-on-repeat", false, "fail when a page does not advance the cursor")
	flags.StringP("output", "o", "", "write the JSON array to this file instead of stdout")
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text or json)")
	bindFlags(v, flags)

	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for name, key := range flagKeys {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
}

// urlArg accepts exactly one non-blank URL
func urlArg(_ *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return ecode.Usage("%s", ecode.FieldIsRequired("URL"))
	case len(args) > 1:
		return ecode.Usage("expected exactly one URL, got %d arguments", len(args))
	case strings.TrimSpace(args[0]) == "":
		return ecode.Usage("%s", ecode.FieldIsEmpty("URL"))
	}
	return nil
}

func run(cmd *cobra.Command, v *viper.Viper, configFile, target string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(v, configFile)
	if err != nil {
		return err
	}

	info := version.GetVersionInfo()
	log.SetVersion(info.Version)
	cleanup, err := log.Init(cfg.Logger, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer cleanup()

	svc := tracing.Service{
		Name:     cfg.AppName,
		Version:  info.Version,
		Revision: info.Revision,
	}
	shutdown, err := tracing.NewTracer(ctx, cfg.Tracer, svc)
	if err != nil {
		return fmt.Errorf("failed to initialize tracer: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			log.Warnf(ctx, "failed to flush traces: %v", err)
		}
	}()

	report, err := tracing.NewSentry(cfg.Sentry, svc)
	if err != nil {
		return fmt.Errorf("failed to initialize sentry: %w", err)
	}

	ctx, span := tracing.Tracer().Start(ctx, "annofetch.run")
	defer span.End()
	ctx, _ = log.EnsureTraceID(ctx)

	client := hypothesis.NewClientFromConfig(cfg.API)
	f := fetcher.New(client,
		fetcher.WithLimit(cfg.Fetch.Limit),
		fetcher.WithMaxPages(cfg.Fetch.MaxPages),
		fetcher.WithStopOnRepeat(cfg.Fetch.StopOnRepeat),
		fetcher.WithProgress(cmd.ErrOrStderr()),
		fetcher.WithLogger(log.StandardLogger()),
	)

	log.Infof(ctx, "fetching annotations of %s from %s", target, client.Endpoint())
	annotations, err := f.FetchAll(ctx, target)
	if err != nil {
		report(ctx, err)
		return err
	}

	if err := writeOutput(cmd.OutOrStdout(), cfg.Output, annotations); err != nil {
		report(ctx, err)
		return err
	}

	log.Infof(ctx, "fetched %d annotations", annotations.Len())
	return nil
}

// writeOutput writes the array to stdout, or to path once fully encoded
func writeOutput(stdout io.Writer, path string, annotations fetcher.Collection) error {
	if path == "" {
		return annotations.Encode(stdout)
	}

	var buf bytes.Buffer
	if err := annotations.Encode(&buf); err != nil {
		return fmt.Errorf("failed to encode annotations: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
