// Command codelab serves the code-execution and tutoring API, and doubles
// as a small CLI for running code against the configured Judge0 deployment.
//
// Configuration comes from codelab.toml (override with --config or
// CODELAB_CONFIG) and environment variables; a .env file in the working
// directory is loaded first if present.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v3"

	"github.com/arvyn/codelab/internal/app"
	"github.com/arvyn/codelab/internal/config"
	"github.com/arvyn/codelab/judge"
	"github.com/arvyn/codelab/observer"
	"github.com/arvyn/codelab/provider/resolve"
	"github.com/arvyn/codelab/tutor"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	cmd := &cli.Command{
		Name:  "codelab",
		Usage: "run untrusted code on Judge0 and serve the tutoring API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the TOML config file",
				Sources: cli.EnvVars("CODELAB_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			serveCommand(logger),
			execCommand(logger),
			languagesCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func serveCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "start the HTTP API server",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load(cmd.String("config"))

			client := newJudgeClient(cfg, logger)

			provider, err := resolve.Provider(resolve.Config{
				Mock:      cfg.LLM.Mock,
				APIKey:    cfg.LLM.APIKey,
				Model:     cfg.LLM.Model,
				BaseURL:   cfg.LLM.BaseURL,
				MaxTokens: cfg.LLM.MaxTokens,
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			var executor judge.Executor = client
			if cfg.Observer.Enabled {
				inst, shutdown, err := observer.Init(ctx)
				if err != nil {
					return fmt.Errorf("observer init: %w", err)
				}
				defer func() {
					shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
					defer cancel()
					if err := shutdown(shutCtx); err != nil {
						logger.Warn("observer shutdown", "error", err)
					}
				}()
				executor = observer.WrapExecutor(client, inst)
				provider = observer.WrapProvider(provider, inst)
			}

			server := app.New(app.Deps{
				Executor:  executor,
				Languages: client.Languages(),
				Tutor:     tutor.New(provider),
				Logger:    logger,
			})

			srv := &http.Server{
				Addr:         cfg.Server.Addr,
				Handler:      server.Handler(),
				ReadTimeout:  time.Minute,
				WriteTimeout: 2 * time.Minute,
				IdleTimeout:  30 * time.Second,
			}

			runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", cfg.Server.Addr, "judge0", cfg.Judge0.BaseURL, "llm", provider.Name())
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-runCtx.Done():
			}

			logger.Info("shutting down")
			shutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return srv.Shutdown(shutCtx)
		},
	}
}

func execCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "exec",
		Usage:     "run a source file once and print the outcome",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "language name or alias (e.g. python, cpp)", Required: true},
			&cli.StringFlag{Name: "stdin", Usage: "standard input for the program"},
			&cli.StringFlag{Name: "args", Usage: "command line arguments"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("usage: codelab exec --language <name> <file>", 2)
			}
			source, err := os.ReadFile(cmd.Args().First())
			if err != nil {
				return err
			}

			cfg := config.Load(cmd.String("config"))
			client := newJudgeClient(cfg, logger)

			result, err := client.Execute(ctx, judge.ExecRequest{
				Language:             cmd.String("language"),
				SourceCode:           string(source),
				Stdin:                cmd.String("stdin"),
				CommandLineArguments: cmd.String("args"),
			})
			if err != nil {
				return err
			}
			printResult(result)
			if result.ExitCode != nil && *result.ExitCode != 0 {
				return cli.Exit("", *result.ExitCode)
			}
			return nil
		},
	}
}

func languagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "languages",
		Usage: "list supported languages and their aliases",
		Action: func(_ context.Context, _ *cli.Command) error {
			bold := color.New(color.Bold)
			for _, l := range judge.DefaultRegistry().All() {
				bold.Printf("%-12s", l.Key)
				fmt.Printf(" %-28s", l.Name)
				if len(l.Aliases) > 0 {
					color.New(color.Faint).Printf(" (%s)", strings.Join(l.Aliases, ", "))
				}
				fmt.Println()
			}
			return nil
		},
	}
}

// newJudgeClient maps the config file onto client options. The insecure
// option is only applied when explicitly enabled so the client's default
// stays verify-everything.
func newJudgeClient(cfg config.Config, logger *slog.Logger) *judge.Client {
	opts := []judge.Option{
		judge.WithRequestTimeout(cfg.Judge0.RequestTimeoutDuration()),
		judge.WithPollInterval(cfg.Judge0.PollIntervalDuration()),
		judge.WithMaxWait(cfg.Judge0.MaxWaitDuration()),
		judge.WithLogger(logger),
	}
	if cfg.Judge0.RapidAPIKey != "" {
		opts = append(opts, judge.WithRapidAPIKey(cfg.Judge0.RapidAPIKey, cfg.Judge0.RapidAPIHost))
	}
	if cfg.Judge0.AuthToken != "" {
		opts = append(opts, judge.WithAuthToken(cfg.Judge0.AuthToken))
	}
	if cfg.Judge0.CABundlePath != "" {
		opts = append(opts, judge.WithCABundle(cfg.Judge0.CABundlePath))
	}
	if cfg.Judge0.DisableSSLVerify {
		opts = append(opts, judge.WithInsecureSkipVerify())
	}
	return judge.New(cfg.Judge0.BaseURL, opts...)
}

func printResult(result *judge.ExecutionResult) {
	statusColor := color.New(color.FgGreen)
	if result.Status.ID != 3 {
		statusColor = color.New(color.FgRed)
	}
	statusColor.Printf("%s", result.Status.Description)
	if result.TimeSeconds != nil {
		fmt.Printf("  (%.3fs", *result.TimeSeconds)
		if result.MemoryKiB != nil {
			fmt.Printf(", %.0f KiB", *result.MemoryKiB)
		}
		fmt.Print(")")
	}
	fmt.Println()

	if result.CompileOutput != "" {
		color.New(color.FgYellow).Println("--- compile output ---")
		fmt.Println(strings.TrimRight(result.CompileOutput, "\n"))
	}
	if result.Stdout != "" {
		fmt.Print(result.Stdout)
		if !strings.HasSuffix(result.Stdout, "\n") {
			fmt.Println()
		}
	}
	if result.Stderr != "" {
		color.New(color.FgRed).Println("--- stderr ---")
		fmt.Println(strings.TrimRight(result.Stderr, "\n"))
	}
	if result.Message != "" {
		fmt.Println(result.Message)
	}
}
