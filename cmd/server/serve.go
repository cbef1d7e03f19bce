package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	agentCtrlImp "gardenguru/pkg/agent/controllerImp"
	healthCtrlImp "gardenguru/pkg/health/controllerImp"
	"gardenguru/pkg/middleware"
	plantCtrlImp "gardenguru/pkg/plant/controllerImp"
	taskCtrlImp "gardenguru/pkg/task/controllerImp"
	"gardenguru/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(echoMiddleware.Recover())
		e.Use(middleware.RequestLogger())
		e.Use(echoMiddleware.CORS())

		router.New(
			e,
			plantCtrlImp.New(a.plants),
			taskCtrlImp.New(a.tasks),
			agentCtrlImp.New(a.agent),
			healthCtrlImp.NewHealthCtrl(a.db, healthCtrlImp.Integrations{
				LLM:            a.llm != nil,
				Identification: a.plantAPI.CanIdentify(),
				CareData:       cfg.PerenualAPIKey != "",
			}),
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		go func() {
			log.Info().Str("port", cfg.Port).Msg("listening")
			if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("server stopped")
				stop()
			}
		}()
		<-ctx.Done()

		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdown)
	},
}
