package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"homerent/internal/domain/entity"
	"homerent/internal/domain/repository"
	"homerent/internal/domain/service"
	"homerent/pkg/errors"
)

// txRefPrefix namespaces gateway transaction references so a callback can be
// traced back to its coin order.
const txRefPrefix = "homerent-"

type CoinUseCase struct {
	orderRepo     repository.CoinOrderRepository
	userRepo      repository.UserRepository
	gateway       service.PaymentGateway
	coinUnitPrice int64
	callbackURL   string
}

func NewCoinUseCase(
	orderRepo repository.CoinOrderRepository,
	userRepo repository.UserRepository,
	gateway service.PaymentGateway,
	coinUnitPrice int64,
	callbackURL string,
) *CoinUseCase {
	return &CoinUseCase{
		orderRepo:     orderRepo,
		userRepo:      userRepo,
		gateway:       gateway,
		coinUnitPrice: coinUnitPrice,
		callbackURL:   callbackURL,
	}
}

type BuyCoinsResult struct {
	Order       *entity.CoinOrder `json:"order"`
	CheckoutURL string            `json:"checkout_url"`
}

// BuyCoins creates a pending order and opens a payment session with the
// gateway. Coins are only credited after VerifyPayment confirms.
func (uc *CoinUseCase) BuyCoins(ctx context.Context, userID string, coins int64) (*BuyCoinsResult, error) {
	if coins <= 0 {
		return nil, errors.BadRequest("Coin amount must be positive", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	orderID := uuid.New().String()
	order := &entity.CoinOrder{
		ID:        orderID,
		UserID:    userID,
		Coins:     coins,
		Amount:    coins * uc.coinUnitPrice,
		TxRef:     txRefPrefix + orderID,
		Status:    entity.CoinOrderPending,
		CreatedAt: time.Now(),
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, errors.Internal("Failed to create coin order", err)
	}

	session, err := uc.gateway.Initialize(ctx, service.PaymentRequest{
		TxRef:     order.TxRef,
		Amount:    order.Amount,
		Currency:  "ETB",
		Email:     user.Email,
		Phone:     user.Phone,
		FirstName: user.Username,
		ReturnURL: fmt.Sprintf("%s?id=%s", uc.callbackURL, order.TxRef),
	})
	if err != nil {
		log.Printf("BuyCoins Error: gateway rejected order %s: %v", order.ID, err)
		return nil, errors.Internal("Payment gateway is unavailable", err)
	}

	log.Printf("BuyCoins: order %s opened for user %s (%d coins, %d ETB)", order.ID, userID, coins, order.Amount)
	return &BuyCoinsResult{Order: order, CheckoutURL: session.CheckoutURL}, nil
}

// VerifyPayment confirms a gateway callback and credits the order's coins.
// Replayed callbacks for an already-completed order return it unchanged.
func (uc *CoinUseCase) VerifyPayment(ctx context.Context, txRef string) (*entity.CoinOrder, error) {
	if !strings.HasPrefix(txRef, txRefPrefix) {
		return nil, errors.BadRequest("Malformed transaction reference", nil)
	}
	orderID := strings.TrimPrefix(txRef, txRefPrefix)
	if orderID == "" {
		return nil, errors.BadRequest("Malformed transaction reference", nil)
	}

	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == entity.CoinOrderCompleted {
		return order, nil
	}

	paid, err := uc.gateway.Verify(ctx, txRef)
	if err != nil {
		log.Printf("VerifyPayment Error: gateway verify failed for %s: %v", txRef, err)
		return nil, errors.Internal("Payment verification failed", err)
	}
	if !paid {
		return nil, errors.UnprocessableEntity("Payment was not completed", nil)
	}

	completed, err := uc.orderRepo.CompleteAndCredit(ctx, orderID)
	if err != nil {
		return nil, err
	}

	log.Printf("VerifyPayment: order %s credited %d coins to user %s", completed.ID, completed.Coins, completed.UserID)
	return completed, nil
}

func (uc *CoinUseCase) Balance(ctx context.Context, userID string) (int64, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, errors.NotFound("User", err)
	}
	return user.Coins, nil
}
