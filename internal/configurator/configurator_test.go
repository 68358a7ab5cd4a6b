package configurator

import (
	"fmt"
	"testing"

	"github.com/brndagencynl/HETT-sub001/internal/catalog"
)

func completeConfig() Configuration {
	cfg := New(DomainStandard, 606, 300)
	cfg.Select(catalog.GroupDaktype, "glas_helder")
	cfg.Select(catalog.GroupGoot, "deluxe")
	cfg.Select(catalog.GroupKleur, "antraciet")
	cfg.Select(catalog.GroupZijwandLinks, catalog.ChoiceNone)
	cfg.Select(catalog.GroupZijwandRechts, "poly_wand")
	cfg.Select(catalog.GroupVoorzijde, catalog.ChoiceNone)
	cfg.Select(catalog.GroupMontage, "zelfbouw")
	cfg.SetToggle(catalog.GroupVerlichting, true)
	return cfg
}

func TestIsComplete(t *testing.T) {
	cat := catalog.Default()

	cfg := completeConfig()
	if !IsComplete(cat, cfg) {
		t.Fatalf("expected complete, got errors: %v", ValidationErrors(cat, cfg))
	}

	// The lighting toggle is optional; leaving it out changes nothing.
	delete(cfg.Values, catalog.GroupVerlichting)
	if !IsComplete(cat, cfg) {
		t.Error("optional toggle absence must not block completeness")
	}
}

func TestValidationErrors(t *testing.T) {
	cat := catalog.Default()

	cfg := New(DomainStandard, 606, 300)
	cfg.Select(catalog.GroupDaktype, "glas_helder")

	errs := ValidationErrors(cat, cfg)
	if _, ok := errs[catalog.GroupDaktype]; ok {
		t.Error("selected group reported as missing")
	}
	for _, g := range []string{
		catalog.GroupGoot, catalog.GroupKleur, catalog.GroupZijwandLinks,
		catalog.GroupZijwandRechts, catalog.GroupVoorzijde, catalog.GroupMontage,
	} {
		if errs[g] != ReasonMissing {
			t.Errorf("group %s: got %q, want %q", g, errs[g], ReasonMissing)
		}
	}
	if _, ok := errs[catalog.GroupVerlichting]; ok {
		t.Error("optional group must never be a validation error")
	}
}

func TestFingerprintOrderIndependent(t *testing.T) {
	a := New(DomainStandard, 606, 300)
	a.Select(catalog.GroupDaktype, "glas_helder")
	a.Select(catalog.GroupGoot, "deluxe")
	a.SetToggle(catalog.GroupVerlichting, true)

	b := New(DomainStandard, 606, 300)
	b.SetToggle(catalog.GroupVerlichting, true)
	b.Select(catalog.GroupGoot, "deluxe")
	b.Select(catalog.GroupDaktype, "glas_helder")

	if Fingerprint(a) != Fingerprint(b) {
		t.Errorf("same selections, different fingerprints: %s vs %s", Fingerprint(a), Fingerprint(b))
	}
}

func TestFingerprintDetectsChanges(t *testing.T) {
	base := completeConfig()

	changed := base.Clone()
	changed.Select(catalog.GroupGoot, "standaard")
	if Fingerprint(base) == Fingerprint(changed) {
		t.Error("changed selection kept the same fingerprint")
	}

	resized := base.Clone()
	resized.WidthCM = 706
	if Fingerprint(base) == Fingerprint(resized) {
		t.Error("changed raw size kept the same fingerprint")
	}

	toggled := base.Clone()
	toggled.SetToggle(catalog.GroupVerlichting, false)
	if Fingerprint(base) == Fingerprint(toggled) {
		t.Error("toggled-off lighting kept the same fingerprint")
	}
}

func TestFingerprintCollisionSample(t *testing.T) {
	roofs := []string{"polycarbonaat_helder", "polycarbonaat_opaal", "glas_helder"}
	walls := []string{catalog.ChoiceNone, "poly_wand", "glas_schuifwand"}

	seen := make(map[string]string)
	count := 0
	for w := 250; w <= 720 && count < 10000; w += 2 {
		for i, roof := range roofs {
			for j, wall := range walls {
				cfg := New(DomainCustom, w, 250+(i+j)*25)
				cfg.Select(catalog.GroupDaktype, roof)
				cfg.Select(catalog.GroupZijwandLinks, wall)
				cfg.SetToggle(catalog.GroupVerlichting, (w+i)%2 == 0)

				key := fmt.Sprintf("%d/%d/%s/%s/%v", cfg.WidthCM, cfg.DepthCM, roof, wall, cfg.Toggled(catalog.GroupVerlichting))
				fp := Fingerprint(cfg)
				if prev, ok := seen[fp]; ok && prev != key {
					t.Fatalf("fingerprint collision: %q for both %s and %s", fp, prev, key)
				}
				seen[fp] = key
				count++
			}
		}
	}
	if count < 2000 {
		t.Fatalf("sample too small: %d", count)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := completeConfig()
	b := a.Clone()
	b.Select(catalog.GroupGoot, "standaard")

	if got, _ := a.Choice(catalog.GroupGoot); got != "deluxe" {
		t.Errorf("clone mutation leaked into original: %s", got)
	}
}
