package main

import (
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"gravemap/internal/config"
	"gravemap/internal/directions"
	"gravemap/internal/geom"
	"gravemap/internal/logging"
	"gravemap/internal/mapview"
	"gravemap/internal/poi"
	"gravemap/internal/routing"
	"gravemap/internal/tui"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	closer, err := logging.Setup(cfg.Log.File, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	path := cfg.Points.Path
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	points, dataset := poi.Default(), ""
	if path != "" {
		if points, err = poi.Load(path); err != nil {
			log.Fatal(err)
		}
		dataset = path
	}

	router, err := newRouter(cfg)
	if err != nil {
		log.Fatal(err)
	}
	logger := slog.Default()
	surface := mapview.NewSurface(router,
		mapview.WithTimeout(cfg.Routing.Timeout),
		mapview.WithLogger(logger))
	routes := routing.NewController(surface, routing.WithLogger(logger))

	m := tui.New(tui.Options{
		Origin:  geom.LatLng{Lat: cfg.Origin.Lat, Lng: cfg.Origin.Lng},
		Points:  points,
		Dataset: dataset,
		Zoom:    cfg.Map.Zoom,
		Surface: surface,
		Routes:  routes,
	})
	slog.Info("starting", "action", "start", "graves", len(points), "backend", cfg.Routing.Backend)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}

func newRouter(cfg *config.Config) (directions.Router, error) {
	mode, err := directions.ParseMode(cfg.Routing.Mode)
	if err != nil {
		return nil, err
	}
	var r directions.Router = directions.Straight{Mode: mode}
	if cfg.Routing.Backend == "google" {
		if r, err = directions.NewGoogle(cfg.Google.APIKey, mode); err != nil {
			return nil, err
		}
	}
	if cfg.Routing.CacheSize > 0 {
		r = directions.NewCache(r, cfg.Routing.CacheSize)
	}
	return r, nil
}
