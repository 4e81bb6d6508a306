package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	dashboardrender "github.com/hyrosy/tripdesk/internal/adapters/render/dashboard"
	sessiontoml "github.com/hyrosy/tripdesk/internal/adapters/session/toml"
	"github.com/hyrosy/tripdesk/internal/adapters/wp"
	"github.com/hyrosy/tripdesk/internal/application"
	"github.com/hyrosy/tripdesk/internal/domain"
	"github.com/hyrosy/tripdesk/internal/ports"
)

const requestTimeout = 30 * time.Second

type app struct {
	service     *application.DashboardService
	renderer    func(result domain.AggregationResult, opts dashboardrender.RenderOptions) (string, error)
	defaultSite string
	now         func() time.Time
}

func wireApp() (*app, error) {
	_ = godotenv.Load()

	logger := newLogger()

	store, err := sessiontoml.NewStore(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	client := wp.NewClient(&http.Client{Timeout: requestTimeout})

	return &app{
		service:     application.NewDashboardService(store, client, ports.SystemClock{}, logger),
		renderer:    dashboardrender.Render,
		defaultSite: os.Getenv("TRIPDESK_SITE"),
		now:         time.Now,
	}, nil
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if raw := os.Getenv("TRIPDESK_LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
