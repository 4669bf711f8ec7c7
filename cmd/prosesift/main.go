package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/chriscorrea/prosesift/internal/app"
	"github.com/chriscorrea/prosesift/internal/config"
	"github.com/chriscorrea/prosesift/internal/counter"
	"github.com/chriscorrea/prosesift/internal/record"
)

// buildConfig layers command flags over the file and environment configuration
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	settings, err := config.Load(configPath)
	if err != nil {
		return app.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("trainpath") {
		settings.TrainPath, _ = flags.GetString("trainpath")
	}
	if flags.Changed("codefile") {
		settings.CodeFile, _ = flags.GetString("codefile")
	}
	if flags.Changed("nlangfile") {
		settings.NLangFile, _ = flags.GetString("nlangfile")
	}
	if flags.Changed("unclearfile") {
		settings.UnclearFile, _ = flags.GetString("unclearfile")
	}
	if flags.Changed("min-length") {
		settings.MinLength, _ = flags.GetInt("min-length")
	}
	if flags.Changed("sentinel") {
		settings.Sentinel, _ = flags.GetString("sentinel")
	}
	if flags.Changed("selector") {
		settings.Selector, _ = flags.GetString("selector")
	}
	if flags.Changed("readability") {
		settings.Readability, _ = flags.GetBool("readability")
	}
	if flags.Changed("boilerplate") {
		settings.Boilerplate, _ = flags.GetBool("boilerplate")
	}
	if flags.Changed("debug") {
		settings.Debug, _ = flags.GetBool("debug")
	}

	// determine counting method and max units
	tokenLimit, _ := flags.GetInt("token-limit")
	wordLimit, _ := flags.GetInt("word-limit")
	charLimit, _ := flags.GetInt("character-limit")

	var method counter.Method
	var maxUnits int
	switch {
	case tokenLimit > 0:
		method, maxUnits = counter.Tokens, tokenLimit
	case wordLimit > 0:
		method, maxUnits = counter.Words, wordLimit
	case charLimit > 0:
		method, maxUnits = counter.Characters, charLimit
	}

	// no sources: crawl the configured default page
	sources := args
	if len(sources) == 0 {
		sources = []string{settings.URL}
	}

	quiet, _ := flags.GetBool("quiet")

	return app.Config{
		Sources:        sources,
		Settings:       settings,
		MaxUnits:       maxUnits,
		CountingMethod: method,
		Quiet:          quiet,
		Stderr:         cmd.ErrOrStderr(),
	}, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(w io.Writer, debug bool) {
	level := slog.LevelError
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

var rootCmd = &cobra.Command{
	Use:   "prosesift [sources...]",
	Short: "Extract natural-language sentences from web pages",
	Long: `Prosesift crawls web pages and emits the sentences of natural-language prose they
contain, as JSON lines. Text fragments that look like program code, or that cannot be
decided, are dropped using a character-statistics classifier trained from three corpora
(code, natural language, unclear).

Sources may be URLs, local HTML files, or "-" for standard input.

Examples:
  prosesift https://en.wikipedia.org/wiki/Radio
  prosesift --trainpath training -o radio.jsonl https://en.wikipedia.org/wiki/Radio
  curl -s https://example.com | prosesift -`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		setupLogger(cmd.ErrOrStderr(), cfg.Settings.Debug)
		slog.Debug("Starting crawl", "sources", cfg.Sources, "trainpath", cfg.Settings.TrainPath)

		out := cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}
		cfg.Pretty = record.IsTerminal(out)

		// create context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := app.Run(ctx, cfg, out); err != nil {
			return fmt.Errorf("prosesift failed: %w", err)
		}
		return nil
	},
}

func init() {
	defaults := config.Default()

	rootCmd.Flags().String("config", "", "YAML configuration file")

	// training corpora
	rootCmd.Flags().String("trainpath", defaults.TrainPath, "Directory containing the training corpora")
	rootCmd.Flags().String("codefile", defaults.CodeFile, "Corpus of program code examples")
	rootCmd.Flags().String("nlangfile", defaults.NLangFile, "Corpus of natural-language examples")
	rootCmd.Flags().String("unclearfile", defaults.UnclearFile, "Corpus of unclear examples")

	// filtering
	rootCmd.Flags().Int("min-length", defaults.MinLength, "Fragments shorter than this many characters are kept unclassified")
	rootCmd.Flags().String("sentinel", defaults.Sentinel, "Placeholder for removed fragments")
	rootCmd.Flags().StringP("selector", "s", defaults.Selector, "CSS selector whose text nodes are classified")
	rootCmd.Flags().Bool("readability", false, "Narrow each page to its main content before extracting text")
	rootCmd.Flags().Bool("boilerplate", false, "Drop boilerplate sentences such as copyright and navigation text")

	// limit flags
	rootCmd.Flags().IntP("token-limit", "t", 0, "Limit sentence output per page to number of tokens")
	rootCmd.Flags().IntP("word-limit", "w", 0, "Limit sentence output per page to number of words")
	rootCmd.Flags().IntP("character-limit", "c", 0, "Limit sentence output per page to number of characters")
	rootCmd.MarkFlagsMutuallyExclusive("token-limit", "word-limit", "character-limit")

	// other flags
	rootCmd.Flags().StringP("output", "o", "", "Write records to a file instead of standard output")
	rootCmd.Flags().BoolP("quiet", "q", false, "Suppress warning messages")
	rootCmd.Flags().BoolP("debug", "D", false, "Enable debug logging, including one line per classified fragment")
	_ = rootCmd.Flags().MarkHidden("debug")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
