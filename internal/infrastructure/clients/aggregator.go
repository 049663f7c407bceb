package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apporder "github.com/AshwiniC929/OrderService/internal/application/order"
	dompay "github.com/AshwiniC929/OrderService/internal/domain/payment"
)

// AggregatorClient serves the aggregation read path's product and payment
// lookups from remote services.
type AggregatorClient struct {
	http    *http.Client
	baseURL string
}

func NewAggregatorClient(baseURL string) *AggregatorClient {
	return &AggregatorClient{
		http:    &http.Client{Timeout: clientTimeout},
		baseURL: baseURL,
	}
}

type productBody struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
}

func (c *AggregatorClient) GetProduct(ctx context.Context, productID string) (apporder.Product, error) {
	var parsed productBody
	path := fmt.Sprintf("/product/%s", url.PathEscape(productID))
	if err := c.getJSON(ctx, path, &parsed); err != nil {
		return apporder.Product{}, err
	}
	return apporder.Product{ProductID: parsed.ProductID, ProductName: parsed.ProductName}, nil
}

type paymentBody struct {
	PaymentID   string    `json:"payment_id"`
	Status      string    `json:"status"`
	PaymentDate time.Time `json:"payment_date"`
	PaymentMode string    `json:"payment_mode"`
}

func (c *AggregatorClient) GetPayment(ctx context.Context, orderID string) (apporder.Payment, error) {
	var parsed paymentBody
	path := fmt.Sprintf("/payment/order/%s", url.PathEscape(orderID))
	if err := c.getJSON(ctx, path, &parsed); err != nil {
		return apporder.Payment{}, err
	}
	return apporder.Payment{
		PaymentID:   parsed.PaymentID,
		Status:      dompay.Status(parsed.Status),
		PaymentDate: parsed.PaymentDate,
		Mode:        dompay.Mode(parsed.PaymentMode),
	}, nil
}

func (c *AggregatorClient) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("aggregator: GET %s: %s", path, res.Status)
	}
	return json.NewDecoder(res.Body).Decode(dst)
}
