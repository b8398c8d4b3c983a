package database

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railsathi/railsathi/internal/media"
	"github.com/railsathi/railsathi/internal/usecase"
)

func TestCreateComplaintMedia(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, err := svc.CreateComplaint(ctx, usecase.Complaint{Name: "Asha", MobileNumber: "9876543210"})
	require.NoError(t, err)

	meta, err := json.Marshal(map[string]any{
		"original_name": "photo.png",
		"content_type":  "image/png",
		"size":          2048,
	})
	require.NoError(t, err)

	created, err := svc.CreateComplaintMedia(ctx, usecase.ComplaintMedia{
		ComplainID: c.ID,
		MediaType:  media.KindImage,
		MediaURL:   "https://storage.example/images/complain_1.jpg",
		Meta:       meta,
		CreatedBy:  "Asha",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, media.KindImage, created.MediaType)

	got, err := svc.GetComplaintByID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, got.Media, 1)
	assert.Equal(t, created.ID, got.Media[0].ID)

	var gotMeta map[string]any
	require.NoError(t, json.Unmarshal(got.Media[0].Meta, &gotMeta))
	assert.Equal(t, "photo.png", gotMeta["original_name"])
}

func TestDeleteComplaintMedia_ScopedToComplaint(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateComplaint(ctx, usecase.Complaint{Name: "Asha", MobileNumber: "9876543210"})
	require.NoError(t, err)
	second, err := svc.CreateComplaint(ctx, usecase.Complaint{Name: "Ravi", MobileNumber: "9000000000"})
	require.NoError(t, err)

	mine, err := svc.CreateComplaintMedia(ctx, usecase.ComplaintMedia{
		ComplainID: first.ID, MediaType: media.KindImage, MediaURL: "https://storage.example/a.jpg",
	})
	require.NoError(t, err)
	theirs, err := svc.CreateComplaintMedia(ctx, usecase.ComplaintMedia{
		ComplainID: second.ID, MediaType: media.KindImage, MediaURL: "https://storage.example/b.jpg",
	})
	require.NoError(t, err)

	// Asking for both ids under the first complaint deletes only its own.
	deleted, err := svc.DeleteComplaintMedia(ctx, first.ID, []uint{mine.ID, theirs.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	got, err := svc.GetComplaintByID(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, got.Media, 1)
	assert.Equal(t, theirs.ID, got.Media[0].ID)
}

func TestDeleteComplaintMedia_EmptyIDs(t *testing.T) {
	svc := newTestService(t)

	deleted, err := svc.DeleteComplaintMedia(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
