package visual

import (
	"reflect"
	"testing"

	"github.com/brndagencynl/HETT-sub001/internal/catalog"
	"github.com/brndagencynl/HETT-sub001/internal/configurator"
)

func TestBuildLayersFixedOrder(t *testing.T) {
	// Insert selections in a deliberately scrambled order; the layer stack
	// must still follow the fixed compositing order.
	cfg := configurator.New(configurator.DomainStandard, 606, 300)
	cfg.SetToggle(catalog.GroupVerlichting, true)
	cfg.Select(catalog.GroupVoorzijde, "glas_schuifwand")
	cfg.Select(catalog.GroupDaktype, "glas_helder")
	cfg.Select(catalog.GroupKleur, "zwart")
	cfg.Select(catalog.GroupZijwandRechts, "poly_wand")
	cfg.Select(catalog.GroupGoot, "deluxe")

	got := BuildLayers(cfg)

	wantGroups := []string{
		catalog.GroupKleur,
		catalog.GroupDaktype,
		catalog.GroupGoot,
		catalog.GroupZijwandRechts,
		catalog.GroupVoorzijde,
		catalog.GroupVerlichting,
	}
	if len(got) != len(wantGroups) {
		t.Fatalf("got %d layers, want %d: %+v", len(got), len(wantGroups), got)
	}
	for i, l := range got {
		if l.Group != wantGroups[i] {
			t.Errorf("layer %d: group %s, want %s", i, l.Group, wantGroups[i])
		}
	}

	if got[0].Asset != "/layers/kleur_zwart.png" {
		t.Errorf("base layer asset = %q", got[0].Asset)
	}
}

func TestBuildLayersDefaultsColor(t *testing.T) {
	cfg := configurator.New(configurator.DomainStandard, 606, 300)

	got := BuildLayers(cfg)
	if len(got) != 1 {
		t.Fatalf("empty configuration: got %d layers, want just the base", len(got))
	}
	if got[0].Choice != DefaultColor {
		t.Errorf("base color = %q, want %q", got[0].Choice, DefaultColor)
	}
}

func TestBuildLayersSkipsNone(t *testing.T) {
	cfg := configurator.New(configurator.DomainStandard, 606, 300)
	cfg.Select(catalog.GroupKleur, "creme")
	cfg.Select(catalog.GroupZijwandLinks, catalog.ChoiceNone)
	cfg.Select(catalog.GroupVoorzijde, catalog.ChoiceNone)

	for _, l := range BuildLayers(cfg) {
		if l.Choice == catalog.ChoiceNone {
			t.Errorf("geen selection produced an overlay: %+v", l)
		}
	}
}

func TestBuildLayersDeterministic(t *testing.T) {
	cfg := configurator.New(configurator.DomainCustom, 530, 280)
	cfg.Select(catalog.GroupKleur, "antraciet")
	cfg.Select(catalog.GroupDaktype, "polycarbonaat_opaal")
	cfg.SetToggle(catalog.GroupVerlichting, true)

	first := BuildLayers(cfg)
	second := BuildLayers(cfg.Clone())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("layer derivation diverged:\n%+v\n%+v", first, second)
	}
}
