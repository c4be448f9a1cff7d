package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ademilsodream/tcponto-app-sub002/config"
	"github.com/ademilsodream/tcponto-app-sub002/database"
	"github.com/ademilsodream/tcponto-app-sub002/geocode"
	"github.com/ademilsodream/tcponto-app-sub002/middleware"
)

var (
	seedEmployees int
	seedDays      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tcponto",
		Short: "Time-and-attendance and payroll administration backend",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE:  runServe,
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with demo employees and punch history",
		RunE:  runSeed,
	}
	seedCmd.Flags().IntVar(&seedEmployees, "employees", 10, "number of fake employees to create")
	seedCmd.Flags().IntVar(&seedDays, "days", 30, "days of punch history per employee")

	rootCmd.AddCommand(serveCmd, seedCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func setup() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("no .env file loaded: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	middleware.SetJWTSecret(cfg.JWTSecret)

	if err := database.Init(cfg.DatabaseURL, logger); err != nil {
		return nil, logger, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, logger, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	geocoder := geocode.NewCachedGeocoder(
		geocode.NewHTTPGeocoder(cfg.GeocodeEndpoint),
		geocode.NewCache(cfg.GeocodeCacheSize, cfg.GeocodeCacheTTL),
	)

	router := newRouter(cfg, logger, loc, geocoder)

	logger.Info().Str("addr", cfg.Addr()).Str("timezone", cfg.Timezone).Msg("starting server")
	return http.ListenAndServe(cfg.Addr(), router)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	_, logger, err := setup()
	if err != nil {
		return err
	}
	return database.SeedDemoData(seedEmployees, seedDays, logger)
}
