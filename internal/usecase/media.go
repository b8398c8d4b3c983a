package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/railsathi/railsathi/internal/media"
)

// ComplaintMedia links a durably stored object to its complaint. A row
// exists if and only if the upload succeeded; row absence is the only
// failure signal visible downstream.
type ComplaintMedia struct {
	ID         uint
	ComplainID uint
	MediaType  media.Kind
	MediaURL   string
	Meta       []byte
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CreatedBy  string
	UpdatedBy  string
}

// MediaFile is one attached file, fully read into memory by the
// transport layer before the pipeline starts.
type MediaFile struct {
	Name        string
	ContentType string
	Content     []byte
}

type MediaUploadStatus string

const (
	StatusUploaded MediaUploadStatus = "uploaded"
	StatusSkipped  MediaUploadStatus = "skipped"
	StatusFailed   MediaUploadStatus = "failed"
)

// MediaUploadResult reports one file's outcome. Failures carry a reason
// instead of being swallowed into log lines.
type MediaUploadResult struct {
	FileName string
	Kind     media.Kind
	Status   MediaUploadStatus
	URL      string
	Reason   string
}

type UploadMode int

const (
	// ModeDurable runs the full pipeline: classify, transform, upload
	// to object storage, insert a media row.
	ModeDurable UploadMode = iota
	// ModeScratch writes original bytes to local disk only: no
	// classification beyond path choice, no transcoding, no object
	// storage, no row.
	ModeScratch
)

type UploadComplaintMediaOption struct {
	ComplainID uint
	CreatedBy  string
	Mode       UploadMode
	Files      []MediaFile
}

// UploadComplaintMedia runs the media pipeline for each attached file
// with a non-empty name. Durable mode fans the files out over a bounded
// worker pool and joins on a real barrier; every worker owns its file
// end to end and failures stay contained to that file. The request-level
// error is reserved for misconfiguration, never per-file failures.
func (u Usecase) UploadComplaintMedia(ctx context.Context, opt UploadComplaintMediaOption) ([]MediaUploadResult, error) {
	files := make([]MediaFile, 0, len(opt.Files))
	for _, f := range opt.Files {
		if f.Name != "" {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return nil, nil
	}

	if opt.Mode == ModeScratch {
		return u.storeScratch(ctx, opt.ComplainID, files)
	}

	if u.fileStorageProvider == nil {
		return nil, errors.New("file storage provider not configured")
	}

	results := make([]MediaUploadResult, len(files))

	g := new(errgroup.Group)
	g.SetLimit(u.workerLimit)
	for i, f := range files {
		g.Go(func() error {
			// Workers run to completion once started; only the
			// per-worker deadline bounds them.
			wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.workerTimeout)
			defer cancel()
			results[i] = u.processMediaFile(wctx, opt.ComplainID, opt.CreatedBy, f)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

// processMediaFile walks one file through
// classify -> transform -> upload -> record.
func (u Usecase) processMediaFile(ctx context.Context, complainID uint, createdBy string, f MediaFile) MediaUploadResult {
	res := MediaUploadResult{FileName: f.Name}

	kind := media.Classify(f.ContentType)
	res.Kind = kind
	if kind == media.KindUnsupported {
		res.Status = StatusSkipped
		res.Reason = fmt.Sprintf("unsupported content type %q", f.ContentType)
		return res
	}

	objectName := media.ObjectName(complainID, filepath.Ext(f.Name))
	var (
		payload     []byte
		contentType string
	)

	switch kind {
	case media.KindImage:
		out, err := media.NormalizeImage(f.Content)
		if err != nil {
			u.logger.ErrorContext(ctx, "normalize image",
				slog.String("file", f.Name),
				slog.Uint64("complain_id", uint64(complainID)),
				slog.String("err", err.Error()),
			)
			res.Status = StatusFailed
			res.Reason = err.Error()
			return res
		}
		payload = out
		contentType = "image/jpeg"

	case media.KindVideo:
		out, err := u.transcoder.Transcode(ctx, objectName, f.Content)
		switch {
		case errors.Is(err, media.ErrTranscode):
			// Explicit policy: a failed transcode falls back to
			// uploading the original bytes.
			u.logger.WarnContext(ctx, "transcode failed, uploading original",
				slog.String("file", f.Name),
				slog.Uint64("complain_id", uint64(complainID)),
			)
			payload = f.Content
		case err != nil:
			res.Status = StatusFailed
			res.Reason = err.Error()
			return res
		default:
			payload = out
		}
		contentType = "video/mp4"
	}

	url, err := u.fileStorageProvider.Upload(ctx, kind, objectName, bytes.NewReader(payload), int64(len(payload)), contentType)
	if err != nil {
		u.logger.ErrorContext(ctx, "upload media object",
			slog.String("file", f.Name),
			slog.Uint64("complain_id", uint64(complainID)),
			slog.String("err", err.Error()),
		)
		res.Status = StatusFailed
		res.Reason = err.Error()
		return res
	}

	meta, _ := json.Marshal(map[string]any{
		"original_name": f.Name,
		"content_type":  f.ContentType,
		"size":          len(f.Content),
	})

	if _, err := u.repo.CreateComplaintMedia(ctx, ComplaintMedia{
		ComplainID: complainID,
		MediaType:  kind,
		MediaURL:   url,
		Meta:       meta,
		CreatedBy:  createdBy,
	}); err != nil {
		// Object is already stored; the orphan is logged, the row is
		// not retried.
		u.logger.ErrorContext(ctx, "record media row",
			slog.String("file", f.Name),
			slog.String("url", url),
			slog.Uint64("complain_id", uint64(complainID)),
			slog.String("err", err.Error()),
		)
		res.Status = StatusFailed
		res.Reason = err.Error()
		return res
	}

	res.Status = StatusUploaded
	res.URL = url
	return res
}

func (u Usecase) storeScratch(ctx context.Context, complainID uint, files []MediaFile) ([]MediaUploadResult, error) {
	if u.localStorageProvider == nil {
		return nil, errors.New("local storage provider not configured")
	}

	results := make([]MediaUploadResult, len(files))
	for i, f := range files {
		kind := media.Classify(f.ContentType)
		path, err := u.localStorageProvider.SaveOriginal(ctx, kind, complainID, f.Name, f.Content)
		if err != nil {
			results[i] = MediaUploadResult{FileName: f.Name, Kind: kind, Status: StatusFailed, Reason: err.Error()}
			continue
		}
		results[i] = MediaUploadResult{FileName: f.Name, Kind: kind, Status: StatusUploaded, URL: path}
	}
	return results, nil
}
