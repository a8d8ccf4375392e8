package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"packmarket/internal/config"
)

// PaymentClient speaks the provider's checkout-preference API. A
// preference represents a checkout session; the buyer is sent to its
// redirect URL to pay.
type PaymentClient interface {
	CreatePreference(ctx context.Context, req *PreferenceRequest) (*Preference, error)
}

type PreferenceRequest struct {
	Title             string
	Amount            int64 // minor currency units
	Currency          string
	BuyerEmail        string
	ExternalReference string
	SuccessURL        string
	FailureURL        string
	NotificationURL   string
}

type Preference struct {
	ID          string
	RedirectURL string
}

type paymentClientImpl struct {
	httpClient  *http.Client
	baseApiURL  string
	accessToken string
}

type preferencePayload struct {
	Items             []preferenceItem `json:"items"`
	Payer             preferencePayer  `json:"payer"`
	ExternalReference string           `json:"external_reference"`
	BackURLs          preferenceURLs   `json:"back_urls"`
	NotificationURL   string           `json:"notification_url"`
}

type preferenceItem struct {
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Currency  string `json:"currency"`
}

type preferencePayer struct {
	Email string `json:"email"`
}

type preferenceURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
}

type preferenceResult struct {
	ID          string `json:"id"`
	RedirectURL string `json:"redirect_url"`
}

func NewPaymentClient(paymentCfg *config.Payment) PaymentClient {
	return &paymentClientImpl{
		httpClient: &http.Client{
			Timeout: time.Duration(paymentCfg.TimeoutSeconds) * time.Second,
		},
		baseApiURL:  paymentCfg.BaseApiURL,
		accessToken: paymentCfg.AccessToken,
	}
}

func (c *paymentClientImpl) CreatePreference(ctx context.Context, req *PreferenceRequest) (*Preference, error) {
	payload := &preferencePayload{
		Items: []preferenceItem{
			{
				Title:     req.Title,
				Quantity:  1,
				UnitPrice: req.Amount,
				Currency:  req.Currency,
			},
		},
		Payer:             preferencePayer{Email: req.BuyerEmail},
		ExternalReference: req.ExternalReference,
		BackURLs: preferenceURLs{
			Success: req.SuccessURL,
			Failure: req.FailureURL,
		},
		NotificationURL: req.NotificationURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal preference payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseApiURL+"/checkout/preferences",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.accessToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("payment api error %d: %s", resp.StatusCode, string(b))
	}

	var result preferenceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode preference response: %w", err)
	}
	if result.ID == "" || result.RedirectURL == "" {
		return nil, fmt.Errorf("payment api returned incomplete preference")
	}

	return &Preference{
		ID:          result.ID,
		RedirectURL: result.RedirectURL,
	}, nil
}
