package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

var (
	ErrOracleUnavailable = errors.New("inventory oracle unavailable")
	ErrOracleMalformed   = errors.New("inventory oracle returned malformed response")
)

// StockResult is the ephemeral outcome of a stock check.
type StockResult struct {
	IsValid   bool
	Available int
}

// Checker is the read-only inventory boundary. It performs no
// reservation: two concurrent checks for the same product can both
// observe sufficient stock.
type Checker interface {
	Check(ctx context.Context, product string, quantity int) (StockResult, error)
}

type catalogProduct struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Client checks stock against a catalog document served over HTTP. The
// catalog is fetched per check rather than cached, so correctness does
// not depend on staleness tolerance.
type Client struct {
	catalogURL string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(catalogURL string, timeout time.Duration, l *zap.Logger) *Client {
	return &Client{
		catalogURL: catalogURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     l,
	}
}

func (c *Client) Check(ctx context.Context, product string, quantity int) (StockResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.catalogURL, nil)
	if err != nil {
		return StockResult{}, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to fetch product catalog", zap.String("url", c.catalogURL), zap.Error(err))
		return StockResult{}, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Product catalog returned unexpected status", zap.Int("status", resp.StatusCode))
		return StockResult{}, fmt.Errorf("%w: status %d", ErrOracleUnavailable, resp.StatusCode)
	}

	var products []catalogProduct
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		c.logger.Error("Failed to decode product catalog", zap.Error(err))
		return StockResult{}, fmt.Errorf("%w: %v", ErrOracleMalformed, err)
	}

	for _, p := range products {
		if p.Name == product {
			ok := p.Quantity >= quantity
			c.logger.Debug("Stock check completed",
				zap.String("product", product),
				zap.Int("requested", quantity),
				zap.Int("available", p.Quantity),
				zap.Bool("sufficient", ok))
			return StockResult{IsValid: ok, Available: p.Quantity}, nil
		}
	}

	c.logger.Info("Product not found in catalog", zap.String("product", product))
	return StockResult{IsValid: false, Available: 0}, nil
}
