package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/hoopbot/internal/config"
	"github.com/zeusync/hoopbot/internal/core/events/bus"
	"github.com/zeusync/hoopbot/internal/core/fuzzy"
	"github.com/zeusync/hoopbot/internal/core/observability/log"
	"github.com/zeusync/hoopbot/internal/core/shot"
	"github.com/zeusync/hoopbot/internal/feed"
	"github.com/zeusync/hoopbot/internal/game"
	"github.com/zeusync/hoopbot/internal/simulation"
)

// App holds every long-lived component of the process.
type App struct {
	Config   config.Config
	Logger   log.Log
	Rules    *fuzzy.System
	Events   bus.EventBus
	Director *game.Director
	Hub      *feed.Hub
	Runner   *simulation.Runner
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	shot.NewKnowledgeBase,
	ProvideEventBus,
	ProvideDirector,
	ProvideHub,
	simulation.NewRunner,
	wire.Struct(new(App), "*"),
)

// ProvideLogger builds the configured logger; the cleanup flushes it.
func ProvideLogger(cfg config.Config) (*log.Logger, func(), error) {
	logger, err := cfg.Logger()
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// ProvideEventBus returns a bus whose deliveries are logged and counted.
func ProvideEventBus(logger log.Log) bus.EventBus {
	events := bus.New()
	events.AddObserver(bus.NewLogObserver(logger.With(log.String("component", "bus"))))
	return events
}

func ProvideDirector(cfg config.Config, rules *fuzzy.System, events bus.EventBus, logger log.Log) *game.Director {
	return game.NewDirector(rules, events, logger.With(log.String("component", "director")), game.Options{
		TickInterval: cfg.TickInterval(),
		Pause:        cfg.Play.Pause,
		Shots:        cfg.Play.Shots,
		Seed:         cfg.EffectiveSeed(),
		Distance:     cfg.Shots.Distance,
		Angle:        cfg.Shots.Angle,
		Force:        cfg.Shots.Force,
	})
}

func ProvideHub(cfg config.Config, logger log.Log) *feed.Hub {
	opts := feed.DefaultOptions()
	opts.AllowedOrigins = cfg.Feed.AllowedOrigins
	return feed.NewHub(logger.With(log.String("component", "feed")), opts)
}
