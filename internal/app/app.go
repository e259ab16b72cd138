package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/trixhub/trix-league/internal/config"
	"github.com/trixhub/trix-league/internal/domain/match"
	"github.com/trixhub/trix-league/internal/domain/player"
	"github.com/trixhub/trix-league/internal/domain/team"
	"github.com/trixhub/trix-league/internal/infrastructure/repository/memory"
	"github.com/trixhub/trix-league/internal/infrastructure/repository/postgres"
	"github.com/trixhub/trix-league/internal/interfaces/httpapi"
	"github.com/trixhub/trix-league/internal/platform/logging"
	"github.com/trixhub/trix-league/internal/usecase"
)

// NewHTTPServer builds the wired API server. With an empty DB_URL everything
// runs on in-memory repositories; otherwise repositories are Postgres-backed
// through a traced sqlx handle. The returned cleanup closes the DB handle.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		playerRepo player.Repository
		teamRepo   team.Repository
		matchRepo  match.Repository
		db         *sqlx.DB
	)

	if cfg.DBURL == "" {
		players := memory.NewPlayerRepository()
		teams := memory.NewTeamRepository(players)
		players.AttachTeams(teams)
		matches := memory.NewMatchRepository(teams)

		playerRepo, teamRepo, matchRepo = players, teams, matches
		logger.Info("storage configured", "backend", "memory")
	} else {
		dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
		opened, err := otelsqlx.Open("postgres", dbURL,
			otelsql.WithDBName(dbNameFromURL(dbURL)),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		db = opened

		players := postgres.NewPlayerRepository(db)
		teams := postgres.NewTeamRepository(db)
		matches := postgres.NewMatchRepository(db, teams)

		playerRepo, teamRepo, matchRepo = players, teams, matches
		logger.Info("storage configured", "backend", "postgres", "db_name", dbNameFromURL(dbURL))
	}

	playerSvc := usecase.NewPlayerService(playerRepo, logger)
	teamSvc := usecase.NewTeamService(teamRepo, playerRepo, logger)
	matchSvc := usecase.NewMatchService(matchRepo, logger)
	resultsSvc := usecase.NewResultsService(matchRepo, playerRepo, logger)
	statsSvc := usecase.NewStatsService(matchRepo, teamRepo, playerRepo, cfg.StatsWorkerCount, logger)

	var pinger httpapi.Pinger
	if db != nil {
		pinger = db
	}

	handler := httpapi.NewHandler(playerSvc, teamSvc, matchSvc, resultsSvc, statsSvc, pinger, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func() error {
		if db != nil {
			return db.Close()
		}
		return nil
	}

	return server, cleanup, nil
}
