package queue

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/railsathi/railsathi/internal/config"
	"github.com/railsathi/railsathi/internal/database"
	"github.com/railsathi/railsathi/internal/email"
	"github.com/railsathi/railsathi/internal/queue/handlers"
	"github.com/railsathi/railsathi/internal/usecase"
)

// Server wraps asynq.Server for processing tasks
type Server struct {
	asynqServer *asynq.Server
	mux         *asynq.ServeMux
	sqlDB       *sql.DB
}

// Worker represents a worker application with all its dependencies
type Worker struct {
	server *Server
	logger *slog.Logger
}

// NewWorker creates a fully configured notification worker.
func NewWorker(logger *slog.Logger) (*Worker, error) {
	var (
		dbname = os.Getenv(config.ENV_KEY_DB_DATABASE)
		dbpass = os.Getenv(config.ENV_KEY_DB_PASSWORD)
		dbuser = os.Getenv(config.ENV_KEY_DB_USER)
		dbport = os.Getenv(config.ENV_KEY_DB_PORT)
		dbhost = os.Getenv(config.ENV_KEY_DB_HOST)
	)

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbuser, dbpass, dbhost, dbport, dbname)
	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{
		Logger: database.NewSlogGormLogger(logger),
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("open gorm database connection: %w", err)
	}

	repo, err := database.NewWithDB(gormDB)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("create repository: %w", err)
	}

	mp := email.NewEmailProvider(
		os.Getenv(config.ENV_KEY_SMTP_HOST),
		os.Getenv(config.ENV_KEY_SMTP_USERNAME),
		os.Getenv(config.ENV_KEY_SMTP_PASSWORD),
		os.Getenv(config.ENV_KEY_SMTP_PORT),
	)

	// Workers only read complaints and send mail; no storage, no
	// transcoder, no queue client.
	uc := usecase.New(repo, nil, nil, nil, nil, mp, logger)

	asynqServer := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     os.Getenv(config.ENV_KEY_REDIS_ADDR),
			Password: os.Getenv(config.ENV_KEY_REDIS_PASSWORD),
		},
		asynq.Config{
			Concurrency: 10,
		},
	)

	mux := asynq.NewServeMux()

	h := handlers.NewHandlers(uc, logger)
	mux.HandleFunc(TypeComplaintCreated, h.HandleComplaintCreated)

	logger.Info("worker registered handlers", slog.String("task", TypeComplaintCreated))

	return &Worker{
		server: &Server{
			asynqServer: asynqServer,
			mux:         mux,
			sqlDB:       sqlDB,
		},
		logger: logger,
	}, nil
}

// Start starts the worker server
func (w *Worker) Start() error {
	w.logger.Info("worker started")
	return w.server.asynqServer.Start(w.server.mux)
}

// Stop stops the worker server gracefully
func (w *Worker) Stop() {
	w.logger.Info("stopping worker")
	w.server.asynqServer.Shutdown()

	if w.server.sqlDB != nil {
		if err := w.server.sqlDB.Close(); err != nil {
			w.logger.Error("close database", slog.String("err", err.Error()))
		}
	}
}
