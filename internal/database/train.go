package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/railsathi/railsathi/internal/usecase"
)

type TrainDetail struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	TrainNo   string `gorm:"column:train_no;type:varchar(10);uniqueIndex"`
	TrainName string `gorm:"column:train_name;type:varchar(255)"`
	Depot     string `gorm:"column:depot;type:varchar(100)"`
}

func (TrainDetail) TableName() string {
	return "train_details"
}

func (s *service) GetTrainByID(ctx context.Context, id uint) (usecase.Train, error) {
	var t TrainDetail

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usecase.Train{}, usecase.ErrTrainNotFound
	}
	if err != nil {
		return usecase.Train{}, err
	}
	return t.ConvertToUsecase(), nil
}

func (s *service) GetTrainByNumber(ctx context.Context, no string) (usecase.Train, error) {
	var t TrainDetail

	err := s.db.WithContext(ctx).Where("train_no = ?", no).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usecase.Train{}, usecase.ErrTrainNotFound
	}
	if err != nil {
		return usecase.Train{}, err
	}
	return t.ConvertToUsecase(), nil
}

// Convert core model to Usecase
func (t TrainDetail) ConvertToUsecase() usecase.Train {
	return usecase.Train{
		ID:        t.ID,
		TrainNo:   t.TrainNo,
		TrainName: t.TrainName,
		Depot:     t.Depot,
	}
}
