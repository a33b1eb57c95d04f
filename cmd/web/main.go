package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/user"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dairy-tools/milk-atlas/pkg/export"
	s3sink "github.com/dairy-tools/milk-atlas/pkg/export/s3"
	"github.com/dairy-tools/milk-atlas/pkg/server"
	"github.com/dairy-tools/milk-atlas/pkg/services/config"
	"github.com/dairy-tools/milk-atlas/pkg/services/reports"
	"github.com/dairy-tools/milk-atlas/pkg/services/scope"
	"github.com/dairy-tools/milk-atlas/pkg/store/duckdb"
	"github.com/dairy-tools/milk-atlas/pkg/store/duckdb/directory"
	"github.com/dairy-tools/milk-atlas/pkg/store/httpclient"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Milk Atlas",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultPath := fmt.Sprintf("%s/.milkatlas.yaml", usr.HomeDir)

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", defaultPath,
		"Path to the config file (default is $HOME/.milkatlas.yaml)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	profilesPath := cfg.Upstream.ProfilesPath
	registry, err := config.NewRegistry(profilesPath)
	if err != nil {
		return fmt.Errorf("failed to create profile registry: %w", err)
	}

	profile, err := registry.GetProfile(ctx, cfg.Upstream.Profile)
	if err != nil {
		return fmt.Errorf("failed to resolve upstream profile: %w", err)
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	logger.Info().Msgf("Found the following profiles:")
	profiles, _ := registry.GetProfiles(ctx)
	for _, name := range profiles {
		logger.Info().Msgf("Name: `%s`", name)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.Directory.Path,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	directoryStore, err := directory.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create directory store: %w", err)
	}

	client, err := httpclient.NewReportingClient(profile.Host, profile.Token)
	if err != nil {
		return fmt.Errorf("failed to create reporting client: %w", err)
	}

	sink, err := buildSink(ctx, cfg, &logger)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if host, port := os.Getenv("SERVER_HOST"), os.Getenv("SERVER_PORT"); host != "" && port != "" {
		addr = net.JoinHostPort(host, port)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Resolver: scope.NewResolver(directoryStore),
			Gateway:  reports.NewGateway(client),
			Sink:     sink,
		},
	})

	return api.Start()
}

// buildSink picks the export destination: S3 when a bucket is configured,
// otherwise the local export directory.
func buildSink(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (export.Sink, error) {
	if cfg.Export.S3Bucket == "" {
		return export.NewLocalSink(cfg.Export.Dir, nil), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info().Str("bucket", cfg.Export.S3Bucket).Msg("exporting to S3")
	return s3sink.NewSink(awss3.NewFromConfig(awsCfg), cfg.Export.S3Bucket, cfg.Export.S3Prefix), nil
}
