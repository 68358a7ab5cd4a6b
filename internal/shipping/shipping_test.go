package shipping

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/brndagencynl/HETT-sub001/pkg/api"
)

type fakeDistancer struct {
	result api.DrivingDistance
	err    error
}

func (f *fakeDistancer) Distance(_ context.Context, _, _ string) (api.DrivingDistance, error) {
	return f.result, f.err
}

func newChecker(d Distancer) *Checker {
	return NewChecker(Policy{
		Origin:    "Hoofdstraat 1, Emmen",
		MaxKM:     150,
		Countries: []string{"NL", "BE", "DE"},
	}, d, zap.NewNop())
}

func TestCheckEligible(t *testing.T) {
	c := newChecker(&fakeDistancer{result: api.DrivingDistance{KM: 42.5, Country: "NL"}})

	res, err := c.Check(context.Background(), "Damrak 1, Amsterdam")
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !res.Eligible || res.Reason != "" {
		t.Errorf("expected eligible, got %+v", res)
	}
}

func TestCheckTooFar(t *testing.T) {
	c := newChecker(&fakeDistancer{result: api.DrivingDistance{KM: 480, Country: "NL"}})

	res, err := c.Check(context.Background(), "somewhere far")
	if err != nil {
		t.Fatal(err)
	}
	if res.Eligible || res.Reason == "" {
		t.Errorf("expected rejection by distance, got %+v", res)
	}
}

func TestCheckCountryNotAllowed(t *testing.T) {
	c := newChecker(&fakeDistancer{result: api.DrivingDistance{KM: 30, Country: "FR"}})

	res, err := c.Check(context.Background(), "Lille")
	if err != nil {
		t.Fatal(err)
	}
	if res.Eligible {
		t.Errorf("expected rejection by country, got %+v", res)
	}
}

func TestCheckCountryCaseInsensitive(t *testing.T) {
	c := newChecker(&fakeDistancer{result: api.DrivingDistance{KM: 30, Country: "nl"}})

	res, err := c.Check(context.Background(), "Assen")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Eligible {
		t.Errorf("country match must be case-insensitive, got %+v", res)
	}
}

func TestCheckUpstreamFailure(t *testing.T) {
	c := newChecker(&fakeDistancer{err: errors.New("service down")})

	if _, err := c.Check(context.Background(), "Assen"); err == nil {
		t.Error("expected error when the distance service fails")
	}
}
