package visual

import (
	"fmt"

	"github.com/brndagencynl/HETT-sub001/internal/catalog"
	"github.com/brndagencynl/HETT-sub001/internal/configurator"
)

// DefaultColor is the base layer used while the customer has not picked a
// color yet, so the preview always has something to composite onto.
const DefaultColor = "antraciet"

// Layer is one image reference in a preview stack. Later layers render on
// top of earlier ones.
type Layer struct {
	Group  string `json:"group"`
	Choice string `json:"choice"`
	Asset  string `json:"asset"`
}

// overlayOrder is the fixed compositing order. It is part of the contract:
// wall overlays must occlude the roof overlay, and lighting sits on top of
// everything. Never derived from configuration insertion order.
var overlayOrder = []string{
	catalog.GroupDaktype,
	catalog.GroupGoot,
	catalog.GroupZijwandLinks,
	catalog.GroupZijwandRechts,
	catalog.GroupVoorzijde,
	catalog.GroupVerlichting,
}

// BuildLayers derives the preview layer stack from a configuration. The
// color base layer always comes first, then zero-or-one overlay per group in
// overlayOrder. "geen" selections contribute nothing. Works identically for
// partial wizard previews and for regenerating a stored snapshot.
func BuildLayers(cfg configurator.Configuration) []Layer {
	color, ok := cfg.Choice(catalog.GroupKleur)
	if !ok || color == "" {
		color = DefaultColor
	}

	layers := []Layer{{
		Group:  catalog.GroupKleur,
		Choice: color,
		Asset:  assetPath(catalog.GroupKleur, color),
	}}

	for _, groupID := range overlayOrder {
		if groupID == catalog.GroupVerlichting {
			if cfg.Toggled(groupID) {
				layers = append(layers, Layer{
					Group:  groupID,
					Choice: "aan",
					Asset:  assetPath(groupID, "aan"),
				})
			}
			continue
		}

		choice, ok := cfg.Choice(groupID)
		if !ok || choice == catalog.ChoiceNone {
			continue
		}
		layers = append(layers, Layer{
			Group:  groupID,
			Choice: choice,
			Asset:  assetPath(groupID, choice),
		})
	}

	return layers
}

func assetPath(groupID, choiceID string) string {
	return fmt.Sprintf("/layers/%s_%s.png", groupID, choiceID)
}
