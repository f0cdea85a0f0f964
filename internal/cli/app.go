package cli

import (
	"github.com/example/flashdeck/internal/config"
	"github.com/example/flashdeck/internal/database"
	"github.com/example/flashdeck/internal/game"
	"github.com/example/flashdeck/internal/history"
	"github.com/example/flashdeck/internal/predictor"
	"github.com/example/flashdeck/internal/scheduler"
)

// App wires the application components together. One predictor instance
// lives for the whole process; the scheduler reads history through the log.
type App struct {
	cfg config.Config

	sets  *database.SetRepository
	cards *database.CardRepository
	log   *history.Log
	pred  *predictor.Predictor
	sched *scheduler.Scheduler
}

// NewApp builds the application from config. The database connection must
// already be established.
func NewApp(cfg config.Config) *App {
	app := &App{
		cfg:   cfg,
		sets:  database.NewSetRepository(),
		cards: database.NewCardRepository(),
		log:   history.NewLog(cfg.HistoryPath),
	}
	app.pred = predictor.New(cfg.ModelDir)
	app.sched = scheduler.New(app.log, app.pred)
	return app
}

// game creates a review session over the app's wiring.
func (a *App) game() *game.Game {
	return game.New(a.cards, a.sched, a.log, a.cfg.CardsPerGame)
}
