package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"homerent/pkg/logger"
)

// ChapaPaymentService - Chapa implementation using the transaction HTTP API
type ChapaPaymentService struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewChapaPaymentService(secretKey string) *ChapaPaymentService {
	return &ChapaPaymentService{
		secretKey: secretKey,
		baseURL:   "https://api.chapa.co/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chapaInitializeRequest struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	TxRef       string `json:"tx_ref"`
	CallbackURL string `json:"callback_url,omitempty"`
	ReturnURL   string `json:"return_url,omitempty"`
}

type chapaInitializeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		CheckoutURL string `json:"checkout_url"`
	} `json:"data"`
}

type chapaVerifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status string `json:"status"`
		TxRef  string `json:"tx_ref"`
	} `json:"data"`
}

func (s *ChapaPaymentService) Initialize(ctx context.Context, req PaymentRequest) (*PaymentSession, error) {
	logger.Info("Initializing Chapa payment for tx_ref %s, amount %d %s", req.TxRef, req.Amount, req.Currency)

	body := chapaInitializeRequest{
		Amount:      fmt.Sprintf("%d", req.Amount),
		Currency:    req.Currency,
		Email:       req.Email,
		PhoneNumber: req.Phone,
		FirstName:   req.FirstName,
		TxRef:       req.TxRef,
		ReturnURL:   req.ReturnURL,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chapa request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/transaction/initialize", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("chapa initialize call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result chapaInitializeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse chapa response: %w", err)
	}

	if result.Status != "success" {
		logger.Warn("Chapa initialize rejected tx_ref %s: %s", req.TxRef, result.Message)
		return nil, fmt.Errorf("chapa initialize failed: %s", result.Message)
	}

	return &PaymentSession{CheckoutURL: result.Data.CheckoutURL}, nil
}

func (s *ChapaPaymentService) Verify(ctx context.Context, txRef string) (bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/transaction/verify/"+txRef, nil)
	if err != nil {
		return false, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("chapa verify call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}

	var result chapaVerifyResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return false, fmt.Errorf("failed to parse chapa verify response: %w", err)
	}

	return result.Status == "success" && result.Data.Status == "success", nil
}
