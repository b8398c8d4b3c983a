package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/railsathi/railsathi/internal/usecase"
)

type Complaint struct {
	ID                  uint           `gorm:"column:complain_id;primaryKey;autoIncrement"`
	PNRNumber           string         `gorm:"column:pnr_number;type:varchar(20)"`
	IsPNRValidated      string         `gorm:"column:is_pnr_validated;type:varchar(20);default:not-attempted"`
	Name                string         `gorm:"column:name;type:varchar(255)"`
	MobileNumber        string         `gorm:"column:mobile_number;type:varchar(20);index"`
	ComplainType        string         `gorm:"column:complain_type;type:varchar(100)"`
	ComplainDescription string         `gorm:"column:complain_description;type:text"`
	ComplainDate        datatypes.Date `gorm:"column:complain_date;index"`
	ComplainStatus      string         `gorm:"column:complain_status;type:varchar(20);default:pending"`
	TrainID             *uint          `gorm:"column:train_id;index"`
	TrainNumber         string         `gorm:"column:train_number;type:varchar(10)"`
	TrainName           string         `gorm:"column:train_name;type:varchar(255)"`
	Coach               string         `gorm:"column:coach;type:varchar(10)"`
	BerthNo             *int           `gorm:"column:berth_no"`
	CreatedAt           time.Time      `gorm:"column:created_at"`
	UpdatedAt           time.Time      `gorm:"column:updated_at"`
	CreatedBy           string         `gorm:"column:created_by;type:varchar(255)"`
	UpdatedBy           string         `gorm:"column:updated_by;type:varchar(255)"`

	Train *TrainDetail     `gorm:"foreignKey:TrainID"`
	Media []ComplaintMedia `gorm:"foreignKey:ComplainID"`
}

func (Complaint) TableName() string {
	return "complaints"
}

func (s *service) CreateComplaint(ctx context.Context, c usecase.Complaint) (usecase.Complaint, error) {
	m := Complaint{
		PNRNumber:           c.PNRNumber,
		IsPNRValidated:      c.IsPNRValidated,
		Name:                c.Name,
		MobileNumber:        c.MobileNumber,
		ComplainType:        c.ComplainType,
		ComplainDescription: c.ComplainDescription,
		ComplainDate:        datatypes.Date(c.ComplainDate),
		ComplainStatus:      c.ComplainStatus,
		TrainID:             c.TrainID,
		TrainNumber:         c.TrainNumber,
		TrainName:           c.TrainName,
		Coach:               c.Coach,
		BerthNo:             c.BerthNo,
		CreatedBy:           c.CreatedBy,
	}

	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return usecase.Complaint{}, err
	}
	return m.ConvertToUsecase(), nil
}

func (s *service) GetComplaintByID(ctx context.Context, id uint) (usecase.Complaint, error) {
	var m Complaint

	err := s.db.WithContext(ctx).
		Preload("Media").
		Joins("Train").
		Where("complaints.complain_id = ?", id).
		First(&m).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usecase.Complaint{}, usecase.ErrComplaintNotFound
	}
	if err != nil {
		return usecase.Complaint{}, err
	}

	return m.ConvertToUsecase(), nil
}

func (s *service) ListComplaintsByDate(ctx context.Context, date time.Time, mobile string) ([]usecase.Complaint, error) {
	var (
		ms  []Complaint
		ucs []usecase.Complaint
	)

	err := s.db.WithContext(ctx).
		Preload("Media").
		Joins("Train").
		Where("complain_date = ? AND mobile_number = ?", datatypes.Date(date), mobile).
		Find(&ms).
		Error
	if err != nil {
		return nil, err
	}

	for _, m := range ms {
		ucs = append(ucs, m.ConvertToUsecase())
	}
	return ucs, nil
}

func (s *service) UpdateComplaint(ctx context.Context, id uint, opt usecase.UpdateComplaintOption) (usecase.Complaint, error) {
	fields := map[string]any{}
	if opt.PNRNumber != nil {
		fields["pnr_number"] = *opt.PNRNumber
	}
	if opt.IsPNRValidated != nil {
		fields["is_pnr_validated"] = *opt.IsPNRValidated
	}
	if opt.Name != nil {
		fields["name"] = *opt.Name
	}
	if opt.MobileNumber != nil {
		fields["mobile_number"] = *opt.MobileNumber
	}
	if opt.ComplainType != nil {
		fields["complain_type"] = *opt.ComplainType
	}
	if opt.ComplainDescription != nil {
		fields["complain_description"] = *opt.ComplainDescription
	}
	if opt.ComplainDate != nil {
		fields["complain_date"] = datatypes.Date(*opt.ComplainDate)
	}
	if opt.ComplainStatus != nil {
		fields["complain_status"] = *opt.ComplainStatus
	}
	if opt.TrainID != nil {
		fields["train_id"] = *opt.TrainID
	}
	if opt.TrainNumber != nil {
		fields["train_number"] = *opt.TrainNumber
	}
	if opt.TrainName != nil {
		fields["train_name"] = *opt.TrainName
	}
	if opt.Coach != nil {
		fields["coach"] = *opt.Coach
	}
	if opt.BerthNo != nil {
		fields["berth_no"] = *opt.BerthNo
	}
	if opt.UpdatedBy != nil {
		fields["updated_by"] = *opt.UpdatedBy
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now()
		res := s.db.WithContext(ctx).
			Model(&Complaint{}).
			Where("complain_id = ?", id).
			Updates(fields)
		if res.Error != nil {
			return usecase.Complaint{}, res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.Complaint{}, usecase.ErrComplaintNotFound
		}
	}

	return s.GetComplaintByID(ctx, id)
}

// DeleteComplaint removes the complaint and its media rows in one
// transaction, reporting how many rows each table lost.
func (s *service) DeleteComplaint(ctx context.Context, id uint) (int64, int64, error) {
	var mediaCount, complaintCount int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("complain_id = ?", id).Delete(&ComplaintMedia{})
		if res.Error != nil {
			return res.Error
		}
		mediaCount = res.RowsAffected

		res = tx.Where("complain_id = ?", id).Delete(&Complaint{})
		if res.Error != nil {
			return res.Error
		}
		complaintCount = res.RowsAffected
		if complaintCount == 0 {
			return usecase.ErrComplaintNotFound
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return mediaCount, complaintCount, nil
}

// Convert core model to Usecase
func (m Complaint) ConvertToUsecase() usecase.Complaint {
	c := usecase.Complaint{
		ID:                  m.ID,
		PNRNumber:           m.PNRNumber,
		IsPNRValidated:      m.IsPNRValidated,
		Name:                m.Name,
		MobileNumber:        m.MobileNumber,
		ComplainType:        m.ComplainType,
		ComplainDescription: m.ComplainDescription,
		ComplainDate:        time.Time(m.ComplainDate),
		ComplainStatus:      m.ComplainStatus,
		TrainID:             m.TrainID,
		TrainNumber:         m.TrainNumber,
		TrainName:           m.TrainName,
		Coach:               m.Coach,
		BerthNo:             m.BerthNo,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
		CreatedBy:           m.CreatedBy,
		UpdatedBy:           m.UpdatedBy,
	}
	if m.Train != nil {
		t := m.Train.ConvertToUsecase()
		c.Train = &t
	}
	for _, md := range m.Media {
		c.Media = append(c.Media, md.ConvertToUsecase())
	}
	return c
}
