package main

import (
	"context"
	"flyerboard/board"
	"flyerboard/client/blob"
	"flyerboard/common"
	"flyerboard/config"
	"flyerboard/event"
	"flyerboard/export"
	"flyerboard/infra/tracing"
	"flyerboard/persistence"
	"flyerboard/projects"
	"flyerboard/servehttp"
	"flyerboard/session"
	"flyerboard/store"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "flyerboard",
	Short: "Flyer production board",
	Long:  `A shared board for tracking flyer production requests between the company and its agency.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the board over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every project to a CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportProjects(cmd.Context(), exportOut)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (yaml, json or toml)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", export.FileName, "output file, - for stdout")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type services struct {
	cfg     *config.Config
	ds      *persistence.DataSourceManager
	bucket  blob.Bucket
	service *projects.Service
	closers []io.Closer
}

func (r *services) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		_ = r.closers[i].Close()
	}
	if r.ds != nil {
		r.ds.Stop()
	}
}

// bootstrap loads config, logging, tracing, database and bucket, and migrates
// the schema.
func bootstrap(ctx context.Context) (*services, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	if err := common.InitLogging(common.LogConfig{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File}); err != nil {
		return nil, fmt.Errorf("init logging failed: %w", err)
	}
	r := &services{cfg: cfg}

	tracerCloser, err := tracing.InitGlobalTracer(common.ServiceName, cfg.Tracing.Enabled)
	if err != nil {
		return nil, fmt.Errorf("init tracer failed: %w", err)
	}
	r.closers = append(r.closers, tracerCloser)

	dbConfig, err := persistence.ParseDatabaseConfig(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("parse database config failed: %w", err)
	}
	// create database (no conflict)
	if dbConfig.DriverType == persistence.DriverMysql {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			r.Close()
			return nil, fmt.Errorf("failed to prepare database: %w", err)
		}
	}
	r.ds = &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := r.ds.Start(); err != nil {
		r.Close()
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	projectStore := store.NewProjectStore(r.ds, event.NewFeed())
	if err := projectStore.Migrate(ctx); err != nil {
		r.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	if cfg.OSSEnabled() {
		bucket, err := blob.BuildBucket(cfg.OSS.Endpoint, cfg.OSS.AccessKey, cfg.OSS.SecretKey, cfg.OSS.Bucket, cfg.OSS.PublicBaseURL)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("build bucket failed: %w", err)
		}
		r.bucket = bucket
	} else {
		logrus.Warn("oss.endpoint is not set, file uploads are disabled")
		r.bucket = blob.Unconfigured{}
	}

	r.service = projects.NewService(projectStore, r.bucket, cfg.Projects.EventNames)
	return r, nil
}

func serve(ctx context.Context) error {
	r, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer r.Close()
	cfg := r.cfg

	if cfg.Sweeper.Enabled {
		sweeper := projects.NewSweeper(r.service, r.bucket)
		if err := sweeper.Start(cfg.Sweeper.Spec); err != nil {
			return fmt.Errorf("start sweeper failed: %w", err)
		}
		defer sweeper.Stop()
	}

	b := board.New(r.service)
	if err := b.Mount(ctx); err != nil {
		// the board keeps serving its checklist until restarted
		logrus.WithError(err).Error("initial project fetch failed")
	}
	defer b.Unmount()

	if cfg.Auth.Password == config.DefaultPassword {
		logrus.Warn("auth.password is the default, set FLYER_AUTH_PASSWORD")
	}
	gate := session.NewGate(cfg.Auth.Password, cfg.Auth.LoginRate, cfg.Auth.LoginBurst)

	gin.SetMode(cfg.Server.Mode)
	engine := servehttp.BuildEngine(gate, r.service, b, servehttp.ProjectHandlerOptions{
		ReportMutationErrors: cfg.Projects.ReportMutationErrors,
		CreateWait:           cfg.Projects.CreateWait,
	})
	return servehttp.StartHTTPServer(ctx, cfg.Server.Addr, engine)
}

func exportProjects(ctx context.Context, out string) error {
	r, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	list, err := r.service.ListProjects(ctx)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := export.WriteCSV(w, list); err != nil {
		return err
	}
	logrus.WithField("count", len(list)).WithField("out", out).Info("projects exported")
	return nil
}
