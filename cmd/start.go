package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"object-gateway/core/loader"
	"object-gateway/core/logger"
	"object-gateway/core/metrics"
	"object-gateway/core/middleware/auth"
	"object-gateway/core/middleware/rayid"
	"object-gateway/feature/files"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const metricsPath = "/metrics"

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the object gateway server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		logg := a.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             a.cfg.Server.BodyLimit(),
			Immutable:             true,
		})

		// RayID first so every later log line carries it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Use(auth.New(auth.Config{
			ApiKey: a.cfg.Server.ApiKey,
			Skip:   []string{metricsPath},
		}))

		app.Get(metricsPath, adaptor.HTTPHandler(metrics.Handler()))

		mgr := loader.NewManager(logg)
		mgr.Register(files.NewFeature(a.router, a.tenants, logg))

		if err := mgr.LoadAll(app); err != nil {
			return fmt.Errorf("load features: %w", err)
		}

		go func() {
			logg.Info("Starting server",
				zap.String("addr", a.cfg.Server.Addr()),
				zap.Any("backends", a.router.Kinds()),
			)
			if err := app.Listen(a.cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
