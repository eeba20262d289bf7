package service

import "context"

// PaymentGateway is the outbound payment integration consumed by the coin
// use case. Implementations talk to the provider's HTTP API.
type PaymentGateway interface {
	Initialize(ctx context.Context, req PaymentRequest) (*PaymentSession, error)
	Verify(ctx context.Context, txRef string) (bool, error)
}

type PaymentRequest struct {
	TxRef     string
	Amount    int64
	Currency  string
	Email     string
	Phone     string
	FirstName string
	ReturnURL string
}

type PaymentSession struct {
	CheckoutURL string
}
