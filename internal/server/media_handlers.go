package server

import (
	"github.com/labstack/echo/v4"

	"github.com/railsathi/railsathi/internal/usecase"
)

type UploadComplaintMediaRequest struct {
	ID        uint   `param:"id" validate:"required"`
	CreatedBy string `form:"created_by" validate:"required"`
}

// UploadComplaintMedia is the direct-upload entry point. It keeps the
// original bytes on local disk only: no transcoding, no object storage,
// no media rows.
func (s *Server) UploadComplaintMedia(ctx echo.Context) error {
	var req UploadComplaintMediaRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	files, err := readMediaFiles(ctx, "files")
	if err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}

	results, err := s.server.UploadComplaintMedia(ctx.Request().Context(), usecase.UploadComplaintMediaOption{
		ComplainID: req.ID,
		CreatedBy:  req.CreatedBy,
		Mode:       usecase.ModeScratch,
		Files:      files,
	})
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{
		Data:    convertResults(results),
		Message: "Media uploaded successfully",
	})
}

type DeleteComplaintMediaRequest struct {
	ID       uint   `param:"id" validate:"required"`
	MediaIDs []uint `form:"media_ids" validate:"required,min=1"`
}

func (s *Server) DeleteComplaintMedia(ctx echo.Context) error {
	var req DeleteComplaintMediaRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	deleted, err := s.server.DeleteComplaintMedia(ctx.Request().Context(), req.ID, req.MediaIDs)
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{
		Data:    map[string]int64{"deleted": deleted},
		Message: "Media deleted successfully",
	})
}
