package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// DistanceClient queries the mapping service for driving distances. Used by
// shipping eligibility only; pricing never depends on it.
type DistanceClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

type distanceResponse struct {
	DistanceKM float64 `json:"distance_km"`
	Country    string  `json:"country"`
}

// DrivingDistance is the resolved result for a destination address.
type DrivingDistance struct {
	KM      float64
	Country string
}

func NewDistanceClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *DistanceClient {
	return &DistanceClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Distance resolves the driving distance from origin to destination,
// retrying transient failures with exponential backoff.
func (c *DistanceClient) Distance(ctx context.Context, origin, destination string) (DrivingDistance, error) {
	var result DrivingDistance

	retryPolicy := backoff.WithContext(backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(20*time.Second),
	), ctx)

	err := backoff.RetryNotify(
		func() error {
			res, err := c.distance(ctx, origin, destination)
			if err != nil {
				return err
			}
			result = res
			return nil
		},
		retryPolicy,
		func(err error, duration time.Duration) {
			c.logger.Warn("distance lookup failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		return DrivingDistance{}, fmt.Errorf("distance lookup: %w", err)
	}

	return result, nil
}

func (c *DistanceClient) distance(ctx context.Context, origin, destination string) (DrivingDistance, error) {
	query := url.Values{}
	query.Set("origin", origin)
	query.Set("destination", destination)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/api/distance?%s", c.baseURL, query.Encode()),
		nil,
	)
	if err != nil {
		return DrivingDistance{}, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return DrivingDistance{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode >= 500:
		return DrivingDistance{}, fmt.Errorf("upstream status: %d", resp.StatusCode)
	default:
		// Client errors (bad address) will not get better on retry.
		return DrivingDistance{}, backoff.Permanent(fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	var body distanceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return DrivingDistance{}, fmt.Errorf("decode response: %w", err)
	}

	return DrivingDistance{KM: body.DistanceKM, Country: body.Country}, nil
}
