package config

// Header constants.
const (
	HEADER_KEY_X_REQUEST_ID = "X-Request-Id"
)

// Environment variable keys. Values are read with os.Getenv at the
// assembly points (server, worker); godotenv/autoload fills them from
// a local .env file during development.
const (
	ENV_KEY_APP_ENV   = "APP_ENV"
	ENV_KEY_PORT      = "PORT"
	ENV_KEY_LOG_LEVEL = "LOG_LEVEL"

	ENV_KEY_DB_HOST                 = "DB_HOST"
	ENV_KEY_DB_PORT                 = "DB_PORT"
	ENV_KEY_DB_USER                 = "DB_USER"
	ENV_KEY_DB_PASSWORD             = "DB_PASSWORD"
	ENV_KEY_DB_DATABASE             = "DB_DATABASE"
	ENV_KEY_DB_MAX_OPEN_CONNECTIONS = "DB_MAX_OPEN_CONNECTIONS"

	ENV_KEY_MINIO_ENDPOINT   = "MINIO_ENDPOINT"
	ENV_KEY_MINIO_ACCESS_KEY = "MINIO_ACCESS_KEY"
	ENV_KEY_MINIO_SECRET_KEY = "MINIO_SECRET_KEY"
	ENV_KEY_MINIO_BUCKET     = "MINIO_BUCKET"
	ENV_KEY_MINIO_IMAGE_PATH = "MINIO_IMAGE_PATH"
	ENV_KEY_MINIO_VIDEO_PATH = "MINIO_VIDEO_PATH"

	ENV_KEY_REDIS_ADDR     = "REDIS_ADDR"
	ENV_KEY_REDIS_PASSWORD = "REDIS_PASSWORD"

	ENV_KEY_SMTP_HOST               = "SMTP_HOST"
	ENV_KEY_SMTP_PORT               = "SMTP_PORT"
	ENV_KEY_SMTP_USERNAME           = "SMTP_USERNAME"
	ENV_KEY_SMTP_PASSWORD           = "SMTP_PASSWORD"
	ENV_KEY_SMTP_FROM               = "SMTP_FROM"
	ENV_KEY_COMPLAINT_NOTIFY_EMAILS = "COMPLAINT_NOTIFY_EMAILS"

	ENV_KEY_UPLOADS_DIR = "UPLOADS_DIR"
	ENV_KEY_SCRATCH_DIR = "SCRATCH_DIR"
	ENV_KEY_FFMPEG_PATH = "FFMPEG_PATH"

	ENV_KEY_MEDIA_WORKER_LIMIT   = "MEDIA_WORKER_LIMIT"
	ENV_KEY_MEDIA_WORKER_TIMEOUT = "MEDIA_WORKER_TIMEOUT"

	ENV_KEY_OTEL_EXPORTER_OTLP_ENDPOINT = "OTEL_EXPORTER_OTLP_ENDPOINT"
)
