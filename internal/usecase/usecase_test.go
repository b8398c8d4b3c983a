package usecase

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/railsathi/railsathi/internal/media"
)

// fakeRepo is an in-memory Repository for pipeline and complaint tests.
type fakeRepo struct {
	mu         sync.Mutex
	complaints map[uint]Complaint
	mediaRows  map[uint]ComplaintMedia
	trains     map[uint]Train
	nextID     uint

	createMediaErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		complaints: make(map[uint]Complaint),
		mediaRows:  make(map[uint]ComplaintMedia),
		trains:     make(map[uint]Train),
	}
}

func (r *fakeRepo) Health() map[string]string { return map[string]string{"status": "up"} }
func (r *fakeRepo) Close() error              { return nil }

func (r *fakeRepo) CreateComplaint(_ context.Context, c Complaint) (Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	r.complaints[c.ID] = c
	return c, nil
}

func (r *fakeRepo) GetComplaintByID(_ context.Context, id uint) (Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.complaints[id]
	if !ok {
		return Complaint{}, ErrComplaintNotFound
	}
	c.Media = nil
	for _, m := range r.mediaRows {
		if m.ComplainID == id {
			c.Media = append(c.Media, m)
		}
	}
	return c, nil
}

func (r *fakeRepo) ListComplaintsByDate(_ context.Context, date time.Time, mobile string) ([]Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Complaint
	for _, c := range r.complaints {
		if c.MobileNumber == mobile && c.ComplainDate.Format("2006-01-02") == date.Format("2006-01-02") {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateComplaint(ctx context.Context, id uint, opt UpdateComplaintOption) (Complaint, error) {
	r.mu.Lock()
	c, ok := r.complaints[id]
	if !ok {
		r.mu.Unlock()
		return Complaint{}, ErrComplaintNotFound
	}
	if opt.Name != nil {
		c.Name = *opt.Name
	}
	if opt.ComplainStatus != nil {
		c.ComplainStatus = *opt.ComplainStatus
	}
	if opt.TrainID != nil {
		c.TrainID = opt.TrainID
	}
	if opt.TrainNumber != nil {
		c.TrainNumber = *opt.TrainNumber
	}
	if opt.TrainName != nil {
		c.TrainName = *opt.TrainName
	}
	r.complaints[id] = c
	r.mu.Unlock()
	return r.GetComplaintByID(ctx, id)
}

func (r *fakeRepo) DeleteComplaint(_ context.Context, id uint) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.complaints[id]; !ok {
		return 0, 0, ErrComplaintNotFound
	}
	var mediaCount int64
	for mid, m := range r.mediaRows {
		if m.ComplainID == id {
			delete(r.mediaRows, mid)
			mediaCount++
		}
	}
	delete(r.complaints, id)
	return mediaCount, 1, nil
}

func (r *fakeRepo) CreateComplaintMedia(_ context.Context, m ComplaintMedia) (ComplaintMedia, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createMediaErr != nil {
		return ComplaintMedia{}, r.createMediaErr
	}
	r.nextID++
	m.ID = r.nextID
	r.mediaRows[m.ID] = m
	return m, nil
}

func (r *fakeRepo) DeleteComplaintMedia(_ context.Context, complainID uint, ids []uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, id := range ids {
		if m, ok := r.mediaRows[id]; ok && m.ComplainID == complainID {
			delete(r.mediaRows, id)
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) GetTrainByID(_ context.Context, id uint) (Train, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trains[id]
	if !ok {
		return Train{}, ErrTrainNotFound
	}
	return t, nil
}

func (r *fakeRepo) GetTrainByNumber(_ context.Context, no string) (Train, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.trains {
		if t.TrainNo == no {
			return t, nil
		}
	}
	return Train{}, ErrTrainNotFound
}

func (r *fakeRepo) mediaCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.mediaRows)
}

// fakeStorage records uploads; names in failFor produce errors.
type fakeStorage struct {
	mu      sync.Mutex
	uploads map[string][]byte
	failAll bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, kind media.Kind, name string, r io.Reader, _ int64, _ string) (string, error) {
	if f.failAll {
		return "", fmt.Errorf("storage unavailable")
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads[name] = content
	return fmt.Sprintf("https://storage.example/%s/%s", kind, name), nil
}

func (f *fakeStorage) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

type fakeTranscoder struct {
	err   error
	calls int
	mu    sync.Mutex
}

func (f *fakeTranscoder) Transcode(_ context.Context, _ string, input []byte) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]byte("transcoded:"), input...), nil
}

type fakeLocalStorage struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func newFakeLocalStorage() *fakeLocalStorage {
	return &fakeLocalStorage{saved: make(map[string][]byte)}
}

func (f *fakeLocalStorage) SaveOriginal(_ context.Context, _ media.Kind, complainID uint, name string, content []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := fmt.Sprintf("uploads/%d_%s", complainID, name)
	f.saved[path] = content
	return path, nil
}

type fakeQueue struct {
	mu       sync.Mutex
	payloads []ComplaintCreatedPayload
}

func (f *fakeQueue) EnqueueComplaintCreated(_ context.Context, p ComplaintCreatedPayload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, p)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// pngBytes encodes a small opaque image for pipeline tests.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := range 4 {
		for x := range 4 {
			img.Set(x, y, color.RGBA{R: 10, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
