package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	domain "github.com/AshwiniC929/OrderService/internal/domain/payment"
)

// PaymentClient calls the remote payment service to settle an order.
type PaymentClient struct {
	http    *http.Client
	baseURL string
}

func NewPaymentClient(baseURL string) *PaymentClient {
	return &PaymentClient{
		http:    &http.Client{Timeout: clientTimeout},
		baseURL: baseURL,
	}
}

type paymentRequestBody struct {
	OrderID         string `json:"order_id"`
	Amount          int64  `json:"amount"`
	ReferenceNumber string `json:"reference_number"`
	PaymentMode     string `json:"payment_mode"`
}

type paymentResponseBody struct {
	PaymentID string `json:"payment_id"`
	Reason    string `json:"reason"`
}

// Pay posts the settlement request. Transport failures come back as errors;
// a non-2xx response is a decline, reported as a failed Result.
func (c *PaymentClient) Pay(ctx context.Context, preq domain.Request) (domain.Result, error) {
	body, err := json.Marshal(paymentRequestBody{
		OrderID:         preq.OrderID,
		Amount:          preq.Amount,
		ReferenceNumber: preq.ReferenceNumber,
		PaymentMode:     string(preq.Mode),
	})
	if err != nil {
		return domain.Result{Status: domain.StatusFailed}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment", bytes.NewReader(body))
	if err != nil {
		return domain.Result{Status: domain.StatusFailed}, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return domain.Result{Status: domain.StatusFailed}, err
	}
	defer res.Body.Close()

	var parsed paymentResponseBody
	_ = json.NewDecoder(res.Body).Decode(&parsed)

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		reason := parsed.Reason
		if reason == "" {
			reason = res.Status
		}
		return domain.Result{PaymentID: parsed.PaymentID, Status: domain.StatusFailed, Reason: reason}, nil
	}

	return domain.Result{PaymentID: parsed.PaymentID, Status: domain.StatusSuccess}, nil
}
