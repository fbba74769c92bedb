package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/weather-lookup/internal/api/http"
	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/scheduler"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

var envFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "weather-lookup",
		Short: "City weather lookup",
		Long:  "Look up current conditions and a 5-day forecast for a city from OpenWeatherMap",

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(lookupCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newService wires the provider stack: OpenWeatherMap behind a circuit
// breaker and a shared rate limiter.
func newService(cfg *config.AppConfig) *weather.Service {
	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	owm := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey,
		providers.WithBaseURL(cfg.OpenWeatherBaseURL),
		providers.WithBackoff(providers.BackoffConfig{
			MaxRetries:      cfg.ProviderMaxRetries,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		}),
	)

	limited := providers.NewRateLimitedProvider(owm, cfg.ProviderRateLimit, cfg.ProviderBurst)
	return weather.NewService(limited)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			service := newService(cfg)

			// In-memory session store with configured retention.
			sessions := store.NewMemoryStore(cfg.SessionMaxCount, cfg.SessionMaxAge)

			sched := scheduler.New(cfg.SessionPruneInterval, sessions)
			if err := sched.Start(); err != nil {
				return fmt.Errorf("failed to start scheduler: %w", err)
			}
			defer sched.Stop()

			app := httpapi.NewApp()

			httpapi.RegisterRoutes(app, service, sessions, httpapi.Options{
				IconBaseURL:   cfg.IconBaseURL,
				LookupTimeout: cfg.LookupTimeout,
			})

			go func() {
				if err := app.Listen(":" + cfg.Port); err != nil {
					log.Printf("fiber server stopped: %v", err)
				}
			}()
			log.Printf("INFO: weather-lookup listening on :%s", cfg.Port)

			// Wait for termination signal
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				log.Printf("error during shutdown: %v", err)
			}
			return nil
		},
	}
}

func lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <city>",
		Short: "Look up the weather for a city once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := strings.Join(args, " ")
			if strings.TrimSpace(location) == "" {
				return fmt.Errorf("location must not be blank")
			}

			cfg, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LookupTimeout)
			defer cancel()

			report, err := newService(cfg).FetchForecast(ctx, location)
			if err != nil {
				return err
			}

			return printView(cmd.OutOrStdout(), weather.BuildView(report, cfg.IconBaseURL))
		},
	}
}
