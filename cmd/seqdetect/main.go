// Command seqdetect counts occurrences of binary patterns in a bit stream
// typed or piped into an interactive prompt.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/stateforward/go-seqdetect"
	"github.com/stateforward/go-seqdetect/embedded"
	"github.com/stateforward/go-seqdetect/pkg/plantuml"
	"github.com/stateforward/go-seqdetect/pkg/telemetry"
)

const (
	exitSuccess = 0
	exitError   = 1
)

type flags struct {
	config   string
	patterns []string
	policy   string
	trace    bool
	matches  bool
	verbose  bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(exitError)
	}
	os.Exit(exitSuccess)
}

func newRootCommand() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "seqdetect",
		Short:        "Count binary patterns in a live bit stream",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f)
		},
	}
	root.PersistentFlags().StringVarP(&f.config, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringArrayVarP(&f.patterns, "pattern", "p", nil, "pattern to detect, repeatable")
	root.PersistentFlags().StringVar(&f.policy, "policy", "", "matching policy: overlapping or non-overlapping")
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "log at debug level")
	root.Flags().BoolVar(&f.trace, "trace", false, "print OpenTelemetry spans to stderr")
	root.Flags().BoolVar(&f.matches, "matches", false, "keep a log of match positions")

	root.AddCommand(&cobra.Command{
		Use:   "diagram",
		Short: "Print the pattern automata as a PlantUML state diagram",
		RunE: func(cmd *cobra.Command, args []string) error {
			return diagram(cmd, f)
		},
	})
	return root
}

// configure merges file, environment and flags, flags winning.
func configure(cmd *cobra.Command, f *flags) (*Config, *slog.Logger, error) {
	cfg, err := Load(f.config)
	if err != nil {
		return nil, nil, err
	}
	if len(f.patterns) > 0 {
		cfg.Patterns = f.patterns
	}
	if f.policy != "" {
		cfg.Policy = f.policy
	}
	if cmd.Flags().Changed("trace") {
		cfg.Trace = f.trace
	}
	if cmd.Flags().Changed("matches") {
		cfg.Matches = f.matches
	}
	if f.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	logger.Debug("configuration loaded", "file", f.config, "patterns", cfg.Patterns, "policy", cfg.Policy, "trace", cfg.Trace)
	return cfg, logger, nil
}

// tracerProvider returns the no-op provider unless tracing is enabled, in
// which case spans are written to w.
func tracerProvider(enabled bool, w io.Writer) (trace.TracerProvider, func(context.Context) error, error) {
	if !enabled {
		return telemetry.NewProvider(), func(context.Context) error { return nil }, nil
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, nil, fmt.Errorf("create exporter: %w", err)
	}
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	return provider, provider.Shutdown, nil
}

func run(cmd *cobra.Command, f *flags) error {
	cfg, logger, err := configure(cmd, f)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	provider, shutdown, err := tracerProvider(cfg.Trace, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	r := newREPL(cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	fmt.Fprintln(r.out, r.styles.title.Render("=== Multi Sequence Detector ==="))
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		if patterns, err = r.readPatterns(); err != nil {
			if errors.Is(err, errNoPatterns) {
				fmt.Fprintln(r.out, "No patterns provided; exiting.")
				return nil
			}
			return err
		}
	}
	var policy seqdetect.Policy
	if cfg.Policy == "" {
		if policy, err = r.readPolicy(); err != nil {
			return err
		}
	} else if policy, err = seqdetect.ParsePolicy(cfg.Policy); err != nil {
		return err
	}

	options := []seqdetect.Option{
		seqdetect.WithTrace(telemetry.New(ctx, provider.Tracer("github.com/stateforward/go-seqdetect"))),
	}
	if cfg.Matches {
		options = append(options, seqdetect.WithMatches(cfg.MatchLimit))
	}
	session, err := seqdetect.New(patterns, policy, options...)
	if err != nil {
		return err
	}
	logger.Debug("session created", "id", session.ID(), "patterns", patterns, "policy", policy.String())
	r.session = session
	r.banner()
	return r.loop()
}

func diagram(cmd *cobra.Command, f *flags) error {
	cfg, _, err := configure(cmd, f)
	if err != nil {
		return err
	}
	if len(cfg.Patterns) == 0 {
		return fmt.Errorf("%w: pass at least one --pattern", seqdetect.ErrInvalidPattern)
	}
	policy, err := seqdetect.ParsePolicy(cfg.Policy)
	if err != nil {
		return err
	}
	automata := make([]embedded.Automaton, 0, len(cfg.Patterns))
	for _, pattern := range cfg.Patterns {
		automaton, err := seqdetect.Build(pattern, policy)
		if err != nil {
			return err
		}
		automata = append(automata, automaton)
	}
	return plantuml.Generate(cmd.OutOrStdout(), automata...)
}
