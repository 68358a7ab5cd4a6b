package cart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brndagencynl/HETT-sub001/internal/catalog"
	"github.com/brndagencynl/HETT-sub001/internal/configurator"
	"github.com/brndagencynl/HETT-sub001/internal/money"
	"github.com/brndagencynl/HETT-sub001/internal/pricing"
	"github.com/brndagencynl/HETT-sub001/internal/visual"
)

// ErrIncompleteConfiguration rejects payload construction for configurations
// missing required selections. This is the last gate before checkout: it
// fails hard where validation and pricing only degrade.
var ErrIncompleteConfiguration = errors.New("configuration is incomplete")

// Payload is the serializable cart line handed to the cart/session layer and
// the offer/PDF subsystem. Plain data only: no live catalog references, so a
// stored payload can be deserialized later and re-fed through validation and
// pricing to rebuild an identical line.
type Payload struct {
	Fingerprint   string                      `json:"fingerprint"`
	Configuration configurator.Configuration  `json:"configuration"`
	Breakdown     pricing.Breakdown           `json:"breakdown"`
	Layers        []visual.Layer              `json:"layers"`
	Summary       string                      `json:"summary"`
	GrandTotal    string                      `json:"grand_total"`
}

// BuildPayload assembles a cart line from an already-priced configuration.
// The configuration must be complete; everything else (breakdown, layers) is
// taken as computed so the payload matches exactly what the customer saw.
func BuildPayload(cat *catalog.Catalog, cfg configurator.Configuration, bd pricing.Breakdown, layers []visual.Layer) (Payload, error) {
	if !configurator.IsComplete(cat, cfg) {
		missing := configurator.ValidationErrors(cat, cfg)
		return Payload{}, fmt.Errorf("%w: %d required selections missing", ErrIncompleteConfiguration, len(missing))
	}

	summary, err := Summary(cat, cfg)
	if err != nil {
		return Payload{}, err
	}

	return Payload{
		Fingerprint:   configurator.Fingerprint(cfg),
		Configuration: cfg.Clone(),
		Breakdown:     bd,
		Layers:        layers,
		Summary:       summary,
		GrandTotal:    money.FromCents(bd.GrandTotal),
	}, nil
}

// Summary renders the human-readable one-liner for cart and offer documents:
// the size followed by each selected choice's label in catalog order.
func Summary(cat *catalog.Catalog, cfg configurator.Configuration) (string, error) {
	parts := []string{fmt.Sprintf("%d×%d cm", cfg.WidthCM, cfg.DepthCM)}
	if cfg.Domain == configurator.DomainCustom {
		parts[0] += " (maatwerk)"
	}

	for _, g := range cat.Groups() {
		if g.Kind == catalog.Toggle {
			if cfg.Toggled(g.ID) {
				parts = append(parts, g.Label)
			}
			continue
		}
		choiceID, ok := cfg.Choice(g.ID)
		if !ok || choiceID == catalog.ChoiceNone {
			continue
		}
		ch, err := cat.Choice(g.ID, choiceID)
		if err != nil {
			return "", err
		}
		parts = append(parts, ch.Label)
	}

	return strings.Join(parts, " / "), nil
}
