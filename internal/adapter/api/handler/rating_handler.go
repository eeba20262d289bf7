package handler

import (
	"github.com/labstack/echo/v4"

	"homerent/internal/usecase"
	"homerent/pkg/errors"
	"homerent/pkg/response"
)

type RatingHandler struct {
	ratingUseCase *usecase.RatingUseCase
}

func NewRatingHandler(ratingUseCase *usecase.RatingUseCase) *RatingHandler {
	return &RatingHandler{
		ratingUseCase: ratingUseCase,
	}
}

func (h *RatingHandler) RateUser(c echo.Context) error {
	uid := c.Get("uid").(string)
	targetID := c.Param("id")

	var req struct {
		Rating int `json:"rating"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	result, err := h.ratingUseCase.RateUser(c.Request().Context(), uid, targetID, req.Rating)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}
