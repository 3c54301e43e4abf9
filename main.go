package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariebrainware/clinic-booking/booking"
	"github.com/ariebrainware/clinic-booking/config"
	"github.com/ariebrainware/clinic-booking/directory"
	"github.com/ariebrainware/clinic-booking/events"
	"github.com/ariebrainware/clinic-booking/model"
	"github.com/ariebrainware/clinic-booking/util"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// @title           Clinic Booking API
// @version         1.0
// @description     Appointment booking for a clinic: weekly schedules, slot availability and reservations.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and the identity provider token.
func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-booking",
		Short: "Clinic appointment booking API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(geoipCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, _ := cmd.Flags().GetString("admin-subject")
			email, _ := cmd.Flags().GetString("admin-email")

			db, err := openDatabase()
			if err != nil {
				return err
			}
			fmt.Println("Schema is up to date.")

			if subject == "" {
				return nil
			}
			if err := model.SeedAdmin(db, subject, email); err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
			fmt.Printf("Admin %s is ready.\n", subject)
			return nil
		},
	}
	cmd.Flags().String("admin-subject", os.Getenv("ADMIN_SUBJECT"), "Identity provider subject to register as admin")
	cmd.Flags().String("admin-email", os.Getenv("ADMIN_EMAIL"), "Email of the admin user")
	return cmd
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development token with JWTSECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, _ := cmd.Flags().GetString("subject")
			email, _ := cmd.Flags().GetString("email")
			name, _ := cmd.Flags().GetString("name")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			cfg := config.LoadConfig()
			util.SetJWTSecret(cfg.JWTSecret)
			tok, err := util.SignToken(subject, util.Claims{Email: email, Name: name}, ttl, tokenOptions(cfg))
			if err != nil {
				return err
			}
			fmt.Println(tok)
			return nil
		},
	}
	cmd.Flags().String("subject", "", "Token subject")
	cmd.Flags().String("email", "", "Email claim")
	cmd.Flags().String("name", "", "Name claim")
	cmd.Flags().Duration("ttl", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func geoipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geoip",
		Short: "Manage the GeoIP database used to locate security events",
	}

	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Download a GeoLite2 City database",
		RunE: func(cmd *cobra.Command, args []string) error {
			url, _ := cmd.Flags().GetString("url")
			dest, _ := cmd.Flags().GetString("dest")
			if dest == "" {
				dest = config.LoadConfig().GeoIPDBPath
			}
			if dest == "" {
				return errors.New("--dest or GEOIP_DB_PATH is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			path, err := util.DownloadGeoIP(ctx, url, dest)
			if err != nil {
				return fmt.Errorf("download geoip: %w", err)
			}
			if err := util.ValidateGeoIP(path); err != nil {
				return fmt.Errorf("validate geoip: %w", err)
			}
			fmt.Printf("GeoIP database written to %s\n", path)
			return nil
		},
	}
	downloadCmd.Flags().String("url", os.Getenv("GEOIP_DOWNLOAD_URL"), "Download URL (.mmdb or .mmdb.gz)")
	downloadCmd.Flags().String("dest", "", "Destination path, defaults to GEOIP_DB_PATH")
	_ = downloadCmd.MarkFlagRequired("url")
	cmd.AddCommand(downloadCmd)
	return cmd
}

func openDatabase() (*gorm.DB, error) {
	db, err := config.ConnectMySQL()
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func tokenOptions(cfg *config.Config) util.TokenOptions {
	return util.TokenOptions{Issuer: cfg.JWTIssuer, Audience: cfg.JWTAudience}
}

func runServer() error {
	cfg := config.LoadConfig()
	logger := *config.Logger()
	util.SetSecurityLogger(logger)

	if cfg.JWTSecret == "" {
		return errors.New("JWTSECRET is required")
	}
	loc, err := cfg.LoadLocation()
	if err != nil {
		return err
	}
	util.SetJWTSecret(cfg.JWTSecret)

	db, err := openDatabase()
	if err != nil {
		return err
	}
	util.SetSecurityLoggerDB(db)

	if err := util.InitGeoIP(cfg.GeoIPDBPath); err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer util.CloseGeoIP()

	opts := []booking.Option{
		booking.WithLocation(loc),
		booking.WithLogger(logger.With().Str("component", "booking").Logger()),
	}

	rdb, err := config.ConnectRedis()
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, availability cache and rate limiting disabled")
	}
	if rdb != nil {
		opts = append(opts, booking.WithCache(util.NewAvailabilityCache(rdb, 0)))
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		publisher = amqpPublisher
		logger.Info().Str("exchange", cfg.AMQPExchange).Msg("publishing booking events")
	}
	defer publisher.Close()
	opts = append(opts, booking.WithPublisher(publisher))

	svc := booking.NewService(db, opts...)
	dir := directory.New(db, directory.DefaultTTL, logger.With().Str("component", "directory").Logger())

	gin.SetMode(cfg.GinMode)
	router := newRouter(cfg, db, svc, dir, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("timezone", loc.String()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
