package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	domain "github.com/AshwiniC929/OrderService/internal/domain/inventory"
)

const clientTimeout = 5 * time.Second

// InventoryClient calls the remote inventory service to reduce stock.
type InventoryClient struct {
	http    *http.Client
	baseURL string
}

func NewInventoryClient(baseURL string) *InventoryClient {
	return &InventoryClient{
		http:    &http.Client{Timeout: clientTimeout},
		baseURL: baseURL,
	}
}

func (c *InventoryClient) Reduce(ctx context.Context, productID string, quantity int) error {
	u := fmt.Sprintf("%s/product/reduceQuantity/%s?quantity=%d",
		c.baseURL, url.PathEscape(productID), quantity)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest, http.StatusConflict:
		return domain.ErrInsufficientStock
	default:
		return fmt.Errorf("inventory: reduce quantity: %s", res.Status)
	}
}
