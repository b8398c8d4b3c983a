package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railsathi/railsathi/internal/config"
)

type fakeMailProvider struct {
	mu   sync.Mutex
	sent []Email
}

func (f *fakeMailProvider) SendEmail(_ context.Context, e Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, e)
	return nil
}

func TestSendComplaintCreatedEmail(t *testing.T) {
	t.Setenv(config.ENV_KEY_COMPLAINT_NOTIFY_EMAILS, "ops@railsathi.example, support@railsathi.example")
	t.Setenv(config.ENV_KEY_SMTP_FROM, "noreply@railsathi.example")

	mp := &fakeMailProvider{}
	u := New(newFakeRepo(), nil, nil, nil, nil, mp, testLogger())

	err := u.SendComplaintCreatedEmail(context.Background(), ComplaintCreatedPayload{
		ComplainID:  42,
		Name:        "Asha",
		Mobile:      "9876543210",
		Description: "coach not cleaned",
	})
	require.NoError(t, err)

	require.Len(t, mp.sent, 1)
	e := mp.sent[0]
	assert.Equal(t, []string{"ops@railsathi.example", "support@railsathi.example"}, e.To)
	assert.Equal(t, "noreply@railsathi.example", e.From)
	assert.Equal(t, "New complaint #42 registered", e.Subject)
	assert.Contains(t, e.Body, "Asha")
	assert.Contains(t, e.Body, "Complaint ID: 42")
}

func TestSendComplaintCreatedEmail_NoRecipients(t *testing.T) {
	t.Setenv(config.ENV_KEY_COMPLAINT_NOTIFY_EMAILS, " , ")

	mp := &fakeMailProvider{}
	u := New(newFakeRepo(), nil, nil, nil, nil, mp, testLogger())

	err := u.SendComplaintCreatedEmail(context.Background(), ComplaintCreatedPayload{ComplainID: 1})
	require.NoError(t, err)
	assert.Empty(t, mp.sent)
}

func TestSendComplaintCreatedEmail_NoProvider(t *testing.T) {
	u := New(newFakeRepo(), nil, nil, nil, nil, nil, testLogger())

	err := u.SendComplaintCreatedEmail(context.Background(), ComplaintCreatedPayload{ComplainID: 1})
	assert.Error(t, err)
}
