package server

import (
	"errors"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/railsathi/railsathi/internal/usecase"
)

type Complaint struct {
	ComplainID          uint              `json:"complain_id"`
	PNRNumber           string            `json:"pnr_number,omitempty"`
	IsPNRValidated      string            `json:"is_pnr_validated,omitempty"`
	Name                string            `json:"name,omitempty"`
	MobileNumber        string            `json:"mobile_number,omitempty"`
	ComplainType        string            `json:"complain_type,omitempty"`
	ComplainDescription string            `json:"complain_description,omitempty"`
	ComplainDate        string            `json:"complain_date,omitempty"`
	ComplainStatus      string            `json:"complain_status"`
	TrainID             *uint             `json:"train_id,omitempty"`
	TrainNumber         string            `json:"train_number,omitempty"`
	TrainName           string            `json:"train_name,omitempty"`
	Coach               string            `json:"coach,omitempty"`
	BerthNo             *int              `json:"berth_no,omitempty"`
	CreatedAt           string            `json:"created_at,omitempty"`
	UpdatedAt           string            `json:"updated_at,omitempty"`
	CreatedBy           string            `json:"created_by,omitempty"`
	UpdatedBy           string            `json:"updated_by,omitempty"`
	Train               *Train            `json:"train,omitempty"`
	MediaFiles          []ComplaintMedia  `json:"media_files"`
	UploadResults       []MediaFileResult `json:"upload_results,omitempty"`
}

type ComplaintMedia struct {
	ID        uint   `json:"id"`
	MediaType string `json:"media_type"`
	MediaURL  string `json:"media_url"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
	CreatedBy string `json:"created_by,omitempty"`
	UpdatedBy string `json:"updated_by,omitempty"`
}

// MediaFileResult is the per-file outcome of a media upload request.
type MediaFileResult struct {
	FileName string `json:"file_name"`
	Kind     string `json:"kind,omitempty"`
	Status   string `json:"status"`
	URL      string `json:"url,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func convertComplaint(c usecase.Complaint) Complaint {
	out := Complaint{
		ComplainID:          c.ID,
		PNRNumber:           c.PNRNumber,
		IsPNRValidated:      c.IsPNRValidated,
		Name:                c.Name,
		MobileNumber:        c.MobileNumber,
		ComplainType:        c.ComplainType,
		ComplainDescription: c.ComplainDescription,
		ComplainDate:        c.ComplainDate.Format("2006-01-02"),
		ComplainStatus:      c.ComplainStatus,
		TrainID:             c.TrainID,
		TrainNumber:         c.TrainNumber,
		TrainName:           c.TrainName,
		Coach:               c.Coach,
		BerthNo:             c.BerthNo,
		CreatedAt:           c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           c.UpdatedAt.Format(time.RFC3339),
		CreatedBy:           c.CreatedBy,
		UpdatedBy:           c.UpdatedBy,
		MediaFiles:          make([]ComplaintMedia, 0, len(c.Media)),
	}
	if c.Train != nil {
		out.Train = &Train{
			ID:        c.Train.ID,
			TrainNo:   c.Train.TrainNo,
			TrainName: c.Train.TrainName,
			Depot:     c.Train.Depot,
		}
	}
	for _, m := range c.Media {
		out.MediaFiles = append(out.MediaFiles, ComplaintMedia{
			ID:        m.ID,
			MediaType: string(m.MediaType),
			MediaURL:  m.MediaURL,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
			UpdatedAt: m.UpdatedAt.Format(time.RFC3339),
			CreatedBy: m.CreatedBy,
			UpdatedBy: m.UpdatedBy,
		})
	}
	return out
}

func convertResults(results []usecase.MediaUploadResult) []MediaFileResult {
	out := make([]MediaFileResult, 0, len(results))
	for _, r := range results {
		out = append(out, MediaFileResult{
			FileName: r.FileName,
			Kind:     string(r.Kind),
			Status:   string(r.Status),
			URL:      r.URL,
			Reason:   r.Reason,
		})
	}
	return out
}

// readMediaFiles reads every part of the named multipart field fully
// into memory; the pipeline workers own the bytes from there.
func readMediaFiles(ctx echo.Context, field string) ([]usecase.MediaFile, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		return nil, nil
	}

	var files []usecase.MediaFile
	for _, fh := range form.File[field] {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, usecase.MediaFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     content,
		})
	}
	return files, nil
}

type CreateComplaintRequest struct {
	PNRNumber           string `form:"pnr_number"`
	IsPNRValidated      string `form:"is_pnr_validated"`
	Name                string `form:"name"`
	MobileNumber        string `form:"mobile_number"`
	ComplainType        string `form:"complain_type"`
	ComplainDescription string `form:"complain_description"`
	ComplainDate        string `form:"complain_date" validate:"omitempty,datetime=2006-01-02"`
	ComplainStatus      string `form:"complain_status"`
	TrainID             *uint  `form:"train_id"`
	TrainNumber         string `form:"train_number"`
	TrainName           string `form:"train_name"`
	Coach               string `form:"coach"`
	BerthNo             *int   `form:"berth_no"`
}

func (s *Server) CreateComplaint(ctx echo.Context) error {
	var req CreateComplaintRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	files, err := readMediaFiles(ctx, "media_files")
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}

	var complainDate time.Time
	if req.ComplainDate != "" {
		complainDate, _ = time.Parse("2006-01-02", req.ComplainDate)
	}

	c, results, err := s.server.CreateComplaint(ctx.Request().Context(), usecase.CreateComplaintOption{
		Complaint: usecase.Complaint{
			PNRNumber:           req.PNRNumber,
			IsPNRValidated:      req.IsPNRValidated,
			Name:                req.Name,
			MobileNumber:        req.MobileNumber,
			ComplainType:        req.ComplainType,
			ComplainDescription: req.ComplainDescription,
			ComplainDate:        complainDate,
			ComplainStatus:      req.ComplainStatus,
			TrainID:             req.TrainID,
			TrainNumber:         req.TrainNumber,
			TrainName:           req.TrainName,
			Coach:               req.Coach,
			BerthNo:             req.BerthNo,
			CreatedBy:           req.Name,
		},
		Files: files,
	})
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	out := convertComplaint(c)
	out.UploadResults = convertResults(results)

	return ctx.JSON(201, Res{
		Data:    out,
		Message: "Complaint created successfully",
	})
}

type GetComplaintByIDRequest struct {
	ID uint `param:"id" validate:"required"`
}

func (s *Server) GetComplaintByID(ctx echo.Context) error {
	var req GetComplaintByIDRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	c, err := s.server.GetComplaintByID(ctx.Request().Context(), req.ID)
	if errors.Is(err, usecase.ErrComplaintNotFound) {
		return ctx.JSON(404, map[string]string{"error": "complaint not found"})
	}
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{
		Data:    convertComplaint(c),
		Message: "Complaint retrieved successfully",
	})
}

type ListComplaintsByDateRequest struct {
	Date         string `query:"date" validate:"required,datetime=2006-01-02"`
	MobileNumber string `query:"mobile_number" validate:"required"`
}

func (s *Server) ListComplaintsByDate(ctx echo.Context) error {
	var req ListComplaintsByDateRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	list, err := s.server.ListComplaintsByDate(ctx.Request().Context(), usecase.ListComplaintsByDateOption{
		Date:         date,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	complaints := make([]Complaint, 0, len(list))
	for _, c := range list {
		complaints = append(complaints, convertComplaint(c))
	}

	return ctx.JSON(200, Res{Data: complaints})
}

type UpdateComplaintRequest struct {
	ID                  uint    `param:"id" validate:"required"`
	PNRNumber           *string `form:"pnr_number"`
	IsPNRValidated      *string `form:"is_pnr_validated"`
	Name                *string `form:"name"`
	MobileNumber        *string `form:"mobile_number"`
	ComplainType        *string `form:"complain_type"`
	ComplainDescription *string `form:"complain_description"`
	ComplainDate        *string `form:"complain_date" validate:"omitempty,datetime=2006-01-02"`
	ComplainStatus      *string `form:"complain_status"`
	TrainID             *uint   `form:"train_id"`
	TrainNumber         *string `form:"train_number"`
	TrainName           *string `form:"train_name"`
	Coach               *string `form:"coach"`
	BerthNo             *int    `form:"berth_no"`
}

func (s *Server) UpdateComplaint(ctx echo.Context) error {
	var req UpdateComplaintRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	opt := usecase.UpdateComplaintOption{
		PNRNumber:           req.PNRNumber,
		IsPNRValidated:      req.IsPNRValidated,
		Name:                req.Name,
		MobileNumber:        req.MobileNumber,
		ComplainType:        req.ComplainType,
		ComplainDescription: req.ComplainDescription,
		ComplainStatus:      req.ComplainStatus,
		TrainID:             req.TrainID,
		TrainNumber:         req.TrainNumber,
		TrainName:           req.TrainName,
		Coach:               req.Coach,
		BerthNo:             req.BerthNo,
		UpdatedBy:           req.Name,
	}
	if req.ComplainDate != nil {
		if d, err := time.Parse("2006-01-02", *req.ComplainDate); err == nil {
			opt.ComplainDate = &d
		}
	}

	c, err := s.server.UpdateComplaint(ctx.Request().Context(), req.ID, opt)
	if errors.Is(err, usecase.ErrComplaintNotFound) {
		return ctx.JSON(404, map[string]string{"error": "complaint not found"})
	}
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{
		Data:    convertComplaint(c),
		Message: "Complaint updated successfully",
	})
}

type DeleteComplaintRequest struct {
	ID           uint   `param:"id" validate:"required"`
	Name         string `form:"name" validate:"required"`
	MobileNumber string `form:"mobile_number" validate:"required"`
}

func (s *Server) DeleteComplaint(ctx echo.Context) error {
	var req DeleteComplaintRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	res, err := s.server.DeleteComplaint(ctx.Request().Context(), usecase.DeleteComplaintOption{
		ComplainID:   req.ID,
		Name:         req.Name,
		MobileNumber: req.MobileNumber,
	})
	if errors.Is(err, usecase.ErrComplaintNotFound) {
		return ctx.JSON(404, map[string]string{"error": "complaint not found"})
	}
	if errors.Is(err, usecase.ErrAccessDenied) {
		return ctx.JSON(403, map[string]string{"error": "name or mobile number does not match"})
	}
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{
		Data: map[string]int64{
			"media_deleted":      res.MediaDeleted,
			"complaints_deleted": res.ComplaintsDeleted,
		},
		Message: "Complaint deleted successfully",
	})
}
