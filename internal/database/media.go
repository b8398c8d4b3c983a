package database

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/railsathi/railsathi/internal/media"
	"github.com/railsathi/railsathi/internal/usecase"
)

type ComplaintMedia struct {
	ID         uint           `gorm:"column:id;primaryKey;autoIncrement"`
	ComplainID uint           `gorm:"column:complain_id;not null;index"`
	MediaType  string         `gorm:"column:media_type;type:varchar(10);not null"`
	MediaURL   string         `gorm:"column:media_url;type:varchar(512);not null"`
	Meta       datatypes.JSON `gorm:"column:meta"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
	CreatedBy  string         `gorm:"column:created_by;type:varchar(255)"`
	UpdatedBy  string         `gorm:"column:updated_by;type:varchar(255)"`
}

func (ComplaintMedia) TableName() string {
	return "complaint_media"
}

func (s *service) CreateComplaintMedia(ctx context.Context, cm usecase.ComplaintMedia) (usecase.ComplaintMedia, error) {
	m := ComplaintMedia{
		ComplainID: cm.ComplainID,
		MediaType:  string(cm.MediaType),
		MediaURL:   cm.MediaURL,
		Meta:       datatypes.JSON(cm.Meta),
		CreatedBy:  cm.CreatedBy,
	}

	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return usecase.ComplaintMedia{}, err
	}
	return m.ConvertToUsecase(), nil
}

// DeleteComplaintMedia deletes the given ids scoped to the complaint so
// ids belonging to another complaint are never touched.
func (s *service) DeleteComplaintMedia(ctx context.Context, complainID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	res := s.db.WithContext(ctx).
		Where("complain_id = ? AND id IN ?", complainID, ids).
		Delete(&ComplaintMedia{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Convert core model to Usecase
func (m ComplaintMedia) ConvertToUsecase() usecase.ComplaintMedia {
	return usecase.ComplaintMedia{
		ID:         m.ID,
		ComplainID: m.ComplainID,
		MediaType:  media.Kind(m.MediaType),
		MediaURL:   m.MediaURL,
		Meta:       []byte(m.Meta),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		CreatedBy:  m.CreatedBy,
		UpdatedBy:  m.UpdatedBy,
	}
}
