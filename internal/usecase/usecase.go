package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/railsathi/railsathi/internal/media"
)

var (
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrTrainNotFound     = errors.New("train not found")
	ErrAccessDenied      = errors.New("access denied")
)

// Repository is the persistence surface consumed by the usecase layer.
type Repository interface {
	Health() map[string]string
	Close() error

	CreateComplaint(context.Context, Complaint) (Complaint, error)
	GetComplaintByID(context.Context, uint) (Complaint, error)
	ListComplaintsByDate(context.Context, time.Time, string) ([]Complaint, error)
	UpdateComplaint(context.Context, uint, UpdateComplaintOption) (Complaint, error)
	DeleteComplaint(context.Context, uint) (mediaDeleted int64, complaintsDeleted int64, err error)

	CreateComplaintMedia(context.Context, ComplaintMedia) (ComplaintMedia, error)
	DeleteComplaintMedia(ctx context.Context, complainID uint, ids []uint) (int64, error)

	GetTrainByID(context.Context, uint) (Train, error)
	GetTrainByNumber(context.Context, string) (Train, error)
}

// FileStorageProvider pushes a transformed media object to durable
// storage and returns its public URL.
type FileStorageProvider interface {
	Upload(ctx context.Context, kind media.Kind, name string, r io.Reader, size int64, contentType string) (string, error)
}

// LocalStorageProvider is the scratch-only persistence target of the
// direct-upload path.
type LocalStorageProvider interface {
	SaveOriginal(ctx context.Context, kind media.Kind, complainID uint, name string, content []byte) (string, error)
}

// VideoTranscoder re-encodes video bytes to the canonical codec and
// container. A media.ErrTranscode failure triggers the explicit
// fallback-to-original policy.
type VideoTranscoder interface {
	Transcode(ctx context.Context, name string, input []byte) ([]byte, error)
}

// QueueClient enqueues background tasks. Nil-safe at the usecase level
// so the worker can run without one.
type QueueClient interface {
	EnqueueComplaintCreated(context.Context, ComplaintCreatedPayload) error
}

// MailProvider sends notification emails. Only the worker wires one.
type MailProvider interface {
	SendEmail(context.Context, Email) error
}

const (
	defaultWorkerLimit   = 4
	defaultWorkerTimeout = 2 * time.Minute
)

type Usecase struct {
	repo                 Repository
	fileStorageProvider  FileStorageProvider
	localStorageProvider LocalStorageProvider
	transcoder           VideoTranscoder
	queueClient          QueueClient
	mailProvider         MailProvider
	logger               *slog.Logger

	workerLimit   int
	workerTimeout time.Duration
}

type Option func(*Usecase)

// WithWorkerLimit bounds the media upload pool size.
func WithWorkerLimit(n int) Option {
	return func(u *Usecase) {
		if n > 0 {
			u.workerLimit = n
		}
	}
}

// WithWorkerTimeout bounds the end-to-end time budget of a single media
// pipeline worker.
func WithWorkerTimeout(d time.Duration) Option {
	return func(u *Usecase) {
		if d > 0 {
			u.workerTimeout = d
		}
	}
}

func New(
	repo Repository,
	fs FileStorageProvider,
	ls LocalStorageProvider,
	tc VideoTranscoder,
	qc QueueClient,
	mp MailProvider,
	logger *slog.Logger,
	opts ...Option,
) Usecase {
	if logger == nil {
		logger = slog.Default()
	}
	u := Usecase{
		repo:                 repo,
		fileStorageProvider:  fs,
		localStorageProvider: ls,
		transcoder:           tc,
		queueClient:          qc,
		mailProvider:         mp,
		logger:               logger,
		workerLimit:          defaultWorkerLimit,
		workerTimeout:        defaultWorkerTimeout,
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

func (u Usecase) Health() map[string]string {
	return u.repo.Health()
}

func (u Usecase) Close() error {
	return u.repo.Close()
}
