package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinic/clinic/internal/config"
	"github.com/clinic/clinic/internal/domain/appointment"
	"github.com/clinic/clinic/internal/domain/billing"
	"github.com/clinic/clinic/internal/domain/dialysis"
	"github.com/clinic/clinic/internal/domain/history"
	"github.com/clinic/clinic/internal/domain/patient"
	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/db"
	"github.com/clinic/clinic/internal/platform/docstore"
	"github.com/clinic/clinic/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Clinic record-keeping API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(repairCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations (postgres driver only)",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

// repairCmd groups the offline maintenance passes: filling in missing
// deletion flags on legacy records, repairing colliding patient ids,
// and physically purging a patient with all of its dependents.
func repairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Run data repair passes against the configured store",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "normalize",
		Short: "Fill in missing deletion flags on legacy records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := context.Background()

			if cfg.StoreDriver == config.DriverPostgres {
				pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
				if err != nil {
					return err
				}
				defer pool.Close()

				total := 0
				for _, table := range []string{
					"patients", "appointments", "history", "billing",
					"dialysis_flow_charts", "haemodialysis_records",
				} {
					tag, err := pool.Exec(ctx,
						fmt.Sprintf("UPDATE %s SET is_deleted = 10 WHERE is_deleted IS NULL", table))
					if err != nil {
						return fmt.Errorf("normalize %s: %w", table, err)
					}
					total += int(tag.RowsAffected())
				}
				fmt.Printf("Normalized %d record(s).\n", total)
				return nil
			}

			store := docstore.NewFileStore(cfg.DocumentPath)
			n := 0
			err = store.Mutate(func(doc *docstore.Document) error {
				n = docstore.NormalizeDeletionFlags(doc)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Printf("Normalized %d record(s).\n", n)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "dedupe-ids",
		Short: "Reassign duplicate patient ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := context.Background()

			repo, cleanup, err := openPatientRepo(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := patient.NewService(repo).Deduplicate(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Reassigned %d duplicate id(s).\n", n)
			return nil
		},
	})

	purge := &cobra.Command{
		Use:   "purge",
		Short: "Physically remove a patient and all dependent records",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("patient")
			if id == "" {
				return fmt.Errorf("--patient is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := context.Background()

			repo, cleanup, err := openPatientRepo(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := patient.NewService(repo).Purge(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d record(s) for patient %s.\n", n, id)
			return nil
		},
	}
	purge.Flags().String("patient", "", "Patient id to purge")
	cmd.AddCommand(purge)

	return cmd
}

func openPatientRepo(ctx context.Context, cfg *config.Config) (patient.Repository, func(), error) {
	if cfg.StoreDriver == config.DriverPostgres {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, nil, err
		}
		return patient.NewPGRepo(pool), pool.Close, nil
	}
	store := docstore.NewFileStore(cfg.DocumentPath)
	return patient.NewDocRepo(store), func() {}, nil
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	// Storage backend
	var (
		patientRepo   patient.Repository
		apptRepo      appointment.Repository
		billingRepo   billing.Repository
		historyRepo   history.Repository
		flowChartRepo dialysis.FlowChartRepository
		sessionRepo   dialysis.SessionRepository
		pool          *pgxpool.Pool
	)
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")

		patientRepo = patient.NewPGRepo(pool)
		apptRepo = appointment.NewPGRepo(pool)
		billingRepo = billing.NewPGRepo(pool)
		historyRepo = history.NewPGRepo(pool)
		flowChartRepo = dialysis.NewFlowChartPGRepo(pool)
		sessionRepo = dialysis.NewSessionPGRepo(pool)
	default:
		store := docstore.NewFileStore(cfg.DocumentPath)
		if _, err := store.Load(); err != nil {
			logger.Fatal().Err(err).Str("path", cfg.DocumentPath).Msg("failed to open document store")
		}
		logger.Info().Str("path", cfg.DocumentPath).Msg("document store ready")

		patientRepo = patient.NewDocRepo(store)
		apptRepo = appointment.NewDocRepo(store)
		billingRepo = billing.NewDocRepo(store)
		historyRepo = history.NewDocRepo(store)
		flowChartRepo = dialysis.NewFlowChartDocRepo(store)
		sessionRepo = dialysis.NewSessionDocRepo(store)
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.AuthMode == "jwt" {
		e.Use(auth.JWTMiddleware(cfg.AuthSecret))
	} else {
		e.Use(auth.DevAuthMiddleware())
	}

	// Health check
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	api := e.Group("/api/v1")

	patient.NewHandler(patient.NewService(patientRepo)).RegisterRoutes(api)
	appointment.NewHandler(appointment.NewService(apptRepo)).RegisterRoutes(api)
	billing.NewHandler(billing.NewService(billingRepo)).RegisterRoutes(api)
	history.NewHandler(history.NewService(historyRepo)).RegisterRoutes(api)
	dialysis.NewHandler(dialysis.NewService(flowChartRepo, sessionRepo)).RegisterRoutes(api)

	// Start server with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("driver", cfg.StoreDriver).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	return nil
}
