package usecase

import (
	"context"
	"log/slog"
	"time"
)

type Complaint struct {
	ID                  uint
	PNRNumber           string
	IsPNRValidated      string
	Name                string
	MobileNumber        string
	ComplainType        string
	ComplainDescription string
	ComplainDate        time.Time
	ComplainStatus      string
	TrainID             *uint
	TrainNumber         string
	TrainName           string
	Coach               string
	BerthNo             *int
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CreatedBy           string
	UpdatedBy           string

	Train *Train
	Media []ComplaintMedia
}

type CreateComplaintOption struct {
	Complaint Complaint
	Files     []MediaFile
}

// CreateComplaint inserts the complaint row after train enrichment,
// enqueues the notification task, then fans the attached files through
// the durable media pipeline and re-reads the final state. The returned
// result list reports each file's outcome; file failures never fail
// the request.
func (u Usecase) CreateComplaint(ctx context.Context, opt CreateComplaintOption) (Complaint, []MediaUploadResult, error) {
	c := opt.Complaint
	u.enrichTrain(ctx, &c)

	if c.IsPNRValidated == "" {
		c.IsPNRValidated = "not-attempted"
	}
	if c.ComplainStatus == "" {
		c.ComplainStatus = "pending"
	}
	if c.ComplainDate.IsZero() {
		c.ComplainDate = time.Now()
	}

	created, err := u.repo.CreateComplaint(ctx, c)
	if err != nil {
		return Complaint{}, nil, err
	}

	if u.queueClient != nil {
		if err := u.queueClient.EnqueueComplaintCreated(ctx, ComplaintCreatedPayload{
			ComplainID:  created.ID,
			Name:        created.Name,
			Mobile:      created.MobileNumber,
			Description: created.ComplainDescription,
		}); err != nil {
			u.logger.ErrorContext(ctx, "enqueue complaint notification",
				slog.Uint64("complain_id", uint64(created.ID)),
				slog.String("err", err.Error()),
			)
		}
	}

	results, err := u.UploadComplaintMedia(ctx, UploadComplaintMediaOption{
		ComplainID: created.ID,
		CreatedBy:  created.CreatedBy,
		Mode:       ModeDurable,
		Files:      opt.Files,
	})
	if err != nil {
		return Complaint{}, nil, err
	}

	final, err := u.repo.GetComplaintByID(ctx, created.ID)
	if err != nil {
		return Complaint{}, nil, err
	}
	return final, results, nil
}

func (u Usecase) GetComplaintByID(ctx context.Context, id uint) (Complaint, error) {
	return u.repo.GetComplaintByID(ctx, id)
}

type ListComplaintsByDateOption struct {
	Date         time.Time
	MobileNumber string
}

func (u Usecase) ListComplaintsByDate(ctx context.Context, opt ListComplaintsByDateOption) ([]Complaint, error) {
	return u.repo.ListComplaintsByDate(ctx, opt.Date, opt.MobileNumber)
}

// UpdateComplaintOption carries partial-update fields; nil pointers are
// left untouched.
type UpdateComplaintOption struct {
	PNRNumber           *string
	IsPNRValidated      *string
	Name                *string
	MobileNumber        *string
	ComplainType        *string
	ComplainDescription *string
	ComplainDate        *time.Time
	ComplainStatus      *string
	TrainID             *uint
	TrainNumber         *string
	TrainName           *string
	Coach               *string
	BerthNo             *int
	UpdatedBy           *string
}

func (u Usecase) UpdateComplaint(ctx context.Context, id uint, opt UpdateComplaintOption) (Complaint, error) {
	u.enrichTrainUpdate(ctx, &opt)
	return u.repo.UpdateComplaint(ctx, id, opt)
}

type DeleteComplaintOption struct {
	ComplainID   uint
	Name         string
	MobileNumber string
}

type DeleteComplaintResult struct {
	MediaDeleted      int64
	ComplaintsDeleted int64
}

// DeleteComplaint removes the complaint and all of its media rows after
// verifying that name and mobile number match the stored record.
func (u Usecase) DeleteComplaint(ctx context.Context, opt DeleteComplaintOption) (DeleteComplaintResult, error) {
	if err := u.validateComplaintAccess(ctx, opt.ComplainID, opt.Name, opt.MobileNumber); err != nil {
		return DeleteComplaintResult{}, err
	}

	mediaCount, complaintCount, err := u.repo.DeleteComplaint(ctx, opt.ComplainID)
	if err != nil {
		return DeleteComplaintResult{}, err
	}
	return DeleteComplaintResult{
		MediaDeleted:      mediaCount,
		ComplaintsDeleted: complaintCount,
	}, nil
}

// DeleteComplaintMedia removes the given media ids scoped to the
// complaint; ids belonging to other complaints are ignored.
func (u Usecase) DeleteComplaintMedia(ctx context.Context, complainID uint, ids []uint) (int64, error) {
	return u.repo.DeleteComplaintMedia(ctx, complainID, ids)
}

func (u Usecase) validateComplaintAccess(ctx context.Context, id uint, name, mobile string) error {
	c, err := u.repo.GetComplaintByID(ctx, id)
	if err != nil {
		return err
	}
	if c.Name != name || c.MobileNumber != mobile {
		return ErrAccessDenied
	}
	return nil
}
