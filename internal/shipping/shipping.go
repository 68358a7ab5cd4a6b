package shipping

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/brndagencynl/HETT-sub001/pkg/api"
)

// Distancer resolves a driving distance to a destination address.
type Distancer interface {
	Distance(ctx context.Context, origin, destination string) (api.DrivingDistance, error)
}

// Policy is the delivery-area rule set: a maximum driving distance from the
// warehouse and a country allowlist.
type Policy struct {
	Origin    string
	MaxKM     float64
	Countries []string
}

// Result reports eligibility. Shipping never influences pricing: the grand
// total of a breakdown excludes delivery regardless of this outcome.
type Result struct {
	Eligible   bool    `json:"eligible"`
	DistanceKM float64 `json:"distance_km"`
	Country    string  `json:"country"`
	Reason     string  `json:"reason,omitempty"`
}

type Checker struct {
	policy Policy
	client Distancer
	logger *zap.Logger
}

func NewChecker(policy Policy, client Distancer, logger *zap.Logger) *Checker {
	return &Checker{policy: policy, client: client, logger: logger}
}

// Check resolves the driving distance to the destination and applies the
// delivery policy.
func (c *Checker) Check(ctx context.Context, destination string) (Result, error) {
	dist, err := c.client.Distance(ctx, c.policy.Origin, destination)
	if err != nil {
		return Result{}, fmt.Errorf("check shipping: %w", err)
	}

	res := Result{
		Eligible:   true,
		DistanceKM: dist.KM,
		Country:    dist.Country,
	}

	if !c.countryAllowed(dist.Country) {
		res.Eligible = false
		res.Reason = fmt.Sprintf("no delivery to country %s", dist.Country)
		return res, nil
	}
	if dist.KM > c.policy.MaxKM {
		res.Eligible = false
		res.Reason = fmt.Sprintf("distance %.1f km exceeds maximum %.1f km", dist.KM, c.policy.MaxKM)
	}

	return res, nil
}

func (c *Checker) countryAllowed(country string) bool {
	for _, allowed := range c.policy.Countries {
		if strings.EqualFold(allowed, country) {
			return true
		}
	}
	return false
}
