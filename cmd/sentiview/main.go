package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/spacesedan/sentiview/config"
	"github.com/spacesedan/sentiview/internal/clients"
	"github.com/spacesedan/sentiview/internal/logging"
	"github.com/spacesedan/sentiview/internal/monitoring"
	"github.com/spacesedan/sentiview/internal/processing"
	"github.com/spacesedan/sentiview/internal/sentiment"
	"github.com/spacesedan/sentiview/internal/session"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg := config.FromEnv()

	store, err := newTokenStore(cfg)
	if err != nil {
		slog.Error("[Main] Failed to open token store",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	auth := clients.NewAuthClient(cfg.APIBaseURL)
	sess := session.NewManager(auth, store)
	api := clients.NewSentimentClient(cfg.APIBaseURL, sess, cfg.MaxUploadBytes)
	norm := sentiment.NewNormalizer(cfg.ConfidenceFloor)

	app := &cli.Command{
		Name:  "sentiview",
		Usage: "Classify review sentiment with the remote analysis service",
		Commands: []*cli.Command{
			loginCommand(sess),
			signupCommand(sess),
			logoutCommand(sess),
			whoamiCommand(sess),
			analyzeCommand(api, norm),
			batchCommand(api, norm),
			healthCommand(api, cfg),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newTokenStore(cfg config.Config) (session.TokenStore, error) {
	switch cfg.TokenStore {
	case "valkey":
		return session.NewValkeyStore()
	case "file", "":
		return session.NewFileStore(cfg.TokenFile)
	default:
		return nil, fmt.Errorf("unknown token store %q", cfg.TokenStore)
	}
}

func loginCommand(sess *session.Manager) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate and persist the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "account email", Required: true},
			&cli.StringFlag{Name: "password", Usage: "account password", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := sess.Login(ctx, cmd.String("email"), cmd.String("password"))
			if err != nil {
				return err
			}
			sess.SetToken(s.Token)
			fmt.Printf("Logged in as %s <%s>\n", s.User.Name, s.User.Email)
			return nil
		},
	}
}

func signupCommand(sess *session.Manager) *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "Register a new account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "display name", Required: true},
			&cli.StringFlag{Name: "email", Usage: "account email", Required: true},
			&cli.StringFlag{Name: "password", Usage: "account password", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := sess.Signup(ctx, cmd.String("name"), cmd.String("email"), cmd.String("password")); err != nil {
				return err
			}
			fmt.Println("Account created. Run 'sentiview login' to sign in.")
			return nil
		},
	}
}

func logoutCommand(sess *session.Manager) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Clear the stored session token",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sess.RemoveToken()
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func whoamiCommand(sess *session.Manager) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the account behind the current session",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			user, err := sess.Profile(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s>\n", user.Name, user.Email)
			if user.MemberSince != "" {
				fmt.Printf("Member since %s\n", user.MemberSince)
			}
			return nil
		},
	}
}

func analyzeCommand(api *clients.SentimentClient, norm sentiment.Normalizer) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Classify a single text",
		ArgsUsage: "<text>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			text := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
			if text == "" {
				return errors.New("nothing to analyze, pass the text as an argument")
			}

			raw, err := api.Analyze(ctx, text)
			if err != nil {
				return err
			}

			result := processing.FromAnalyzeResponse(raw, norm)
			fmt.Printf("%s (%.0f%% confidence)\n", displayCategory(result.Category), result.Confidence*100)
			return nil
		},
	}
}

func batchCommand(api *clients.SentimentClient, norm sentiment.Normalizer) *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "Upload a CSV of reviews for classification",
		ArgsUsage: "<file.csv>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return errors.New("no file given, pass a CSV path as an argument")
			}

			raw, err := api.AnalyzeBatch(ctx, path)
			if err != nil {
				return err
			}

			run := processing.BuildBatchRun(path, raw, norm)
			for _, r := range run.Results {
				fmt.Printf("%-8s  %3.0f%%  %s\n", displayCategory(r.Category), r.Confidence*100, truncate(r.Text, 60))
			}
			fmt.Printf("Processed %d reviews from %s\n", run.Total, run.Filename)
			return nil
		},
	}
}

func healthCommand(api *clients.SentimentClient, cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check whether the sentiment service is reachable",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "watch", Usage: "keep polling and log availability changes"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			err := api.CheckHealth(ctx)
			if err != nil {
				fmt.Println("Service is unavailable.")
			} else {
				fmt.Println("Service is available.")
			}

			if !cmd.Bool("watch") {
				if err != nil {
					return errors.New("sentiment service is unavailable")
				}
				return nil
			}

			watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			healthy := &atomic.Bool{}
			healthy.Store(err == nil)
			monitoring.MonitorServiceHealth(watchCtx, cfg.HealthInterval, api, healthy)
			return nil
		},
	}
}

func displayCategory(c sentiment.Category) string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
