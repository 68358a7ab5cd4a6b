package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/brndagencynl/HETT-sub001/internal/money"
)

// CommerceClient talks to the commerce backend that owns the product
// variants for standard catalog sizes. The pricing core never calls this
// itself; base prices are fetched here and injected.
type CommerceClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

type variantResponse struct {
	Handle string `json:"handle"`
	// Price is a decimal string; the commerce API never sends float money.
	Price     string `json:"price"`
	Available bool   `json:"available"`
}

func NewCommerceClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *CommerceClient {
	return &CommerceClient{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// VariantPrice fetches the base price of a variant in cents.
func (c *CommerceClient) VariantPrice(ctx context.Context, handle string) (money.Cents, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/api/variants/%s", c.baseURL, handle),
		nil,
	)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("variant %q not found", handle)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var variant variantResponse
	if err := json.NewDecoder(resp.Body).Decode(&variant); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	cents, err := money.ToCents(variant.Price)
	if err != nil {
		return 0, fmt.Errorf("variant %q price %q: %w", handle, variant.Price, err)
	}
	if cents < 0 {
		return 0, fmt.Errorf("variant %q has negative price", handle)
	}

	return cents, nil
}
