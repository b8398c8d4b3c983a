package server

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/railsathi/railsathi/internal/usecase"
)

type Train struct {
	ID        uint   `json:"id"`
	TrainNo   string `json:"train_no"`
	TrainName string `json:"train_name"`
	Depot     string `json:"depot,omitempty"`
}

type GetTrainByNumberRequest struct {
	TrainNo string `param:"no" validate:"required"`
}

func (s *Server) GetTrainByNumber(ctx echo.Context) error {
	var req GetTrainByNumberRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(400, map[string]string{"error": err.Error()})
	}
	if err := s.validator.Struct(req); err != nil {
		return ctx.JSON(422, map[string]string{"error": err.Error()})
	}

	t, err := s.server.GetTrainByNumber(ctx.Request().Context(), req.TrainNo)
	if errors.Is(err, usecase.ErrTrainNotFound) {
		return ctx.JSON(404, map[string]string{"error": "train not found"})
	}
	if err != nil {
		return ctx.JSON(500, map[string]string{"error": err.Error()})
	}

	return ctx.JSON(200, Res{Data: Train{
		ID:        t.ID,
		TrainNo:   t.TrainNo,
		TrainName: t.TrainName,
		Depot:     t.Depot,
	}})
}
