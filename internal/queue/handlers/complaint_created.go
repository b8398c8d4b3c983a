package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/railsathi/railsathi/internal/usecase"
)

// HandleComplaintCreated sends the notification email for a newly
// registered complaint.
func (h *Handlers) HandleComplaintCreated(ctx context.Context, task *asynq.Task) error {
	var p usecase.ComplaintCreatedPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal complaint created payload: %w", err)
	}

	h.logger.InfoContext(ctx, "processing complaint notification",
		slog.Uint64("complain_id", uint64(p.ComplainID)),
	)

	if err := h.usecase.SendComplaintCreatedEmail(ctx, p); err != nil {
		h.logger.ErrorContext(ctx, "send complaint notification",
			slog.Uint64("complain_id", uint64(p.ComplainID)),
			slog.String("err", err.Error()),
		)
		return err
	}
	return nil
}
