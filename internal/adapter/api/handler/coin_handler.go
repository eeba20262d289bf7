package handler

import (
	"github.com/labstack/echo/v4"

	"homerent/internal/usecase"
	"homerent/pkg/errors"
	"homerent/pkg/response"
)

type CoinHandler struct {
	coinUseCase *usecase.CoinUseCase
}

func NewCoinHandler(coinUseCase *usecase.CoinUseCase) *CoinHandler {
	return &CoinHandler{
		coinUseCase: coinUseCase,
	}
}

func (h *CoinHandler) BuyCoins(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		Coins int64 `json:"coins" validate:"required,gt=0"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.coinUseCase.BuyCoins(c.Request().Context(), uid, req.Coins)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

// VerifyPayment is the gateway return endpoint. The transaction reference
// arrives as ?id=<tx_ref>.
func (h *CoinHandler) VerifyPayment(c echo.Context) error {
	txRef := c.QueryParam("id")
	if txRef == "" {
		return response.Error(c, errors.BadRequest("Query parameter 'id' is required", nil))
	}

	order, err := h.coinUseCase.VerifyPayment(c.Request().Context(), txRef)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *CoinHandler) GetBalance(c echo.Context) error {
	uid := c.Get("uid").(string)

	balance, err := h.coinUseCase.Balance(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int64{"coins": balance})
}
