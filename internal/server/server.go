package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"

	"github.com/railsathi/railsathi/internal/config"
	"github.com/railsathi/railsathi/internal/database"
	"github.com/railsathi/railsathi/internal/filestorage"
	"github.com/railsathi/railsathi/internal/media"
	"github.com/railsathi/railsathi/internal/queue"
	"github.com/railsathi/railsathi/internal/usecase"
)

// Service is the usecase surface the HTTP layer depends on.
type Service interface {
	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// Close terminates the database connection.
	// It returns an error if the connection cannot be closed.
	Close() error

	CreateComplaint(context.Context, usecase.CreateComplaintOption) (usecase.Complaint, []usecase.MediaUploadResult, error)
	GetComplaintByID(context.Context, uint) (usecase.Complaint, error)
	ListComplaintsByDate(context.Context, usecase.ListComplaintsByDateOption) ([]usecase.Complaint, error)
	UpdateComplaint(context.Context, uint, usecase.UpdateComplaintOption) (usecase.Complaint, error)
	DeleteComplaint(context.Context, usecase.DeleteComplaintOption) (usecase.DeleteComplaintResult, error)

	UploadComplaintMedia(context.Context, usecase.UploadComplaintMediaOption) ([]usecase.MediaUploadResult, error)
	DeleteComplaintMedia(ctx context.Context, complainID uint, ids []uint) (int64, error)

	GetTrainByNumber(context.Context, string) (usecase.Train, error)
}

type Server struct {
	port int

	server    Service
	validator *validator.Validate
	logger    *slog.Logger
}

func NewServer(logger *slog.Logger) (*http.Server, error) {
	repo, err := database.New(logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	fs := filestorage.NewMinIOStorage(
		os.Getenv(config.ENV_KEY_MINIO_BUCKET),
		os.Getenv(config.ENV_KEY_MINIO_IMAGE_PATH),
		os.Getenv(config.ENV_KEY_MINIO_VIDEO_PATH),
		os.Getenv(config.ENV_KEY_MINIO_ENDPOINT),
		os.Getenv(config.ENV_KEY_MINIO_ACCESS_KEY),
		os.Getenv(config.ENV_KEY_MINIO_SECRET_KEY),
	)

	ls, err := filestorage.NewLocalStorage(os.Getenv(config.ENV_KEY_UPLOADS_DIR))
	if err != nil {
		return nil, fmt.Errorf("setup local storage: %w", err)
	}

	tc, err := media.NewTranscoder(
		os.Getenv(config.ENV_KEY_FFMPEG_PATH),
		os.Getenv(config.ENV_KEY_SCRATCH_DIR),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("setup transcoder: %w", err)
	}

	qc := queue.NewClient(
		os.Getenv(config.ENV_KEY_REDIS_ADDR),
		os.Getenv(config.ENV_KEY_REDIS_PASSWORD),
	)

	var opts []usecase.Option
	if n, err := strconv.Atoi(os.Getenv(config.ENV_KEY_MEDIA_WORKER_LIMIT)); err == nil {
		opts = append(opts, usecase.WithWorkerLimit(n))
	}
	if d, err := time.ParseDuration(os.Getenv(config.ENV_KEY_MEDIA_WORKER_TIMEOUT)); err == nil {
		opts = append(opts, usecase.WithWorkerTimeout(d))
	}

	sv := usecase.New(repo, fs, ls, tc, qc, nil, logger, opts...)

	port, _ := strconv.Atoi(os.Getenv(config.ENV_KEY_PORT))
	s := &Server{
		port:      port,
		server:    sv,
		validator: validator.New(),
		logger:    logger,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}, nil
}
