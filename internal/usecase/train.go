package usecase

import "context"

type Train struct {
	ID        uint
	TrainNo   string
	TrainName string
	Depot     string
}

func (u Usecase) GetTrainByNumber(ctx context.Context, no string) (Train, error) {
	return u.repo.GetTrainByNumber(ctx, no)
}

// enrichTrain fills the denormalized train fields from whichever key
// the caller supplied. A lookup miss leaves the complaint unchanged,
// matching the lenient create behavior.
func (u Usecase) enrichTrain(ctx context.Context, c *Complaint) {
	switch {
	case c.TrainID != nil:
		t, err := u.repo.GetTrainByID(ctx, *c.TrainID)
		if err != nil {
			return
		}
		c.TrainNumber = t.TrainNo
		c.TrainName = t.TrainName
	case c.TrainNumber != "":
		t, err := u.repo.GetTrainByNumber(ctx, c.TrainNumber)
		if err != nil {
			return
		}
		c.TrainID = &t.ID
		c.TrainName = t.TrainName
	}
}

func (u Usecase) enrichTrainUpdate(ctx context.Context, opt *UpdateComplaintOption) {
	switch {
	case opt.TrainID != nil:
		t, err := u.repo.GetTrainByID(ctx, *opt.TrainID)
		if err != nil {
			return
		}
		opt.TrainNumber = &t.TrainNo
		opt.TrainName = &t.TrainName
	case opt.TrainNumber != nil && *opt.TrainNumber != "":
		t, err := u.repo.GetTrainByNumber(ctx, *opt.TrainNumber)
		if err != nil {
			return
		}
		opt.TrainID = &t.ID
		opt.TrainName = &t.TrainName
	}
}
