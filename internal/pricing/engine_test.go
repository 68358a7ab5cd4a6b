package pricing

import (
	"reflect"
	"testing"

	"github.com/brndagencynl/HETT-sub001/internal/catalog"
	"github.com/brndagencynl/HETT-sub001/internal/configurator"
	"github.com/brndagencynl/HETT-sub001/internal/money"
	"github.com/brndagencynl/HETT-sub001/internal/sizing"
)

func standardConfig() configurator.Configuration {
	cfg := configurator.New(configurator.DomainStandard, 606, 300)
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

func assertTotals(t *testing.T, bd Breakdown) {
	t.Helper()
	var sum money.Cents
	for _, r := range bd.Rows {
		sum += r.Amount
	}
	if bd.OptionsTotal != sum {
		t.Errorf("OptionsTotal %d != sum of rows %d", bd.OptionsTotal, sum)
	}
	if bd.GrandTotal != bd.Base+bd.OptionsTotal {
		t.Errorf("GrandTotal %d != Base %d + OptionsTotal %d", bd.GrandTotal, bd.Base, bd.OptionsTotal)
	}
}

func TestPriceStandardScenario(t *testing.T) {
	cat := catalog.Default()
	cfg := standardConfig()
	size := sizing.Size{WidthCM: 606, DepthCM: 300}

	bd, err := PriceStandard(cat, cfg, size, 125000)
	if err != nil {
		t.Fatalf("PriceStandard returned error: %v", err)
	}

	if bd.Base != 125000 {
		t.Errorf("Base = %d, want 125000", bd.Base)
	}
	if bd.OptionsTotal != 86800 {
		t.Errorf("OptionsTotal = %d, want 86800", bd.OptionsTotal)
	}
	if bd.GrandTotal != 211800 {
		t.Errorf("GrandTotal = %d, want 211800", bd.GrandTotal)
	}
	assertTotals(t, bd)

	wantAmounts := map[string]money.Cents{
		catalog.GroupDaktype:       32000,
		catalog.GroupGoot:          5000,
		catalog.GroupZijwandRechts: 45000, // poly_wand at width bucket 600
		catalog.GroupVerlichting:   4800,  // 6 spots at 8.00 each
	}
	if len(bd.Rows) != len(wantAmounts) {
		t.Fatalf("got %d rows, want %d: %+v", len(bd.Rows), len(wantAmounts), bd.Rows)
	}
	for _, r := range bd.Rows {
		want, ok := wantAmounts[r.GroupID]
		if !ok {
			t.Errorf("unexpected row for group %s: %+v", r.GroupID, r)
			continue
		}
		if r.Amount != want {
			t.Errorf("row %s: amount %d, want %d", r.GroupID, r.Amount, want)
		}
		if r.Note != "" {
			t.Errorf("row %s: unexpected note %q", r.GroupID, r.Note)
		}
	}
}

func TestPriceStandardNoRowsForZeroSelections(t *testing.T) {
	cat := catalog.Default()
	cfg := standardConfig()

	bd, err := PriceStandard(cat, cfg, sizing.Size{WidthCM: 606, DepthCM: 300}, 125000)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range bd.Rows {
		switch r.GroupID {
		case catalog.GroupZijwandLinks, catalog.GroupVoorzijde, catalog.GroupKleur, catalog.GroupMontage:
			t.Errorf("zero-priced selection produced a row: %+v", r)
		}
	}
}

func TestPriceCustomScenario(t *testing.T) {
	cat := catalog.Default()

	cfg := configurator.New(configurator.DomainCustom, 530, 280)
	bd, err := PriceCustom(cat, cfg)
	if err != nil {
		t.Fatalf("PriceCustom returned error: %v", err)
	}

	// 530 rounds up to bucket 600, 280 up to 300: matrix 160000 + 75000.
	if bd.Base != 235000 {
		t.Errorf("Base = %d, want 235000 (matrix 160000 + surcharge 75000)", bd.Base)
	}
	assertTotals(t, bd)
}

func TestPriceCustomLEDOutsideTable(t *testing.T) {
	cat := catalog.Default()

	cfg := configurator.New(configurator.DomainCustom, 530, 280)
	cfg.SetToggle(catalog.GroupVerlichting, true)

	bd, err := PriceCustom(cat, cfg)
	if err != nil {
		t.Fatalf("PriceCustom returned error: %v", err)
	}

	var led *Row
	for i := range bd.Rows {
		if bd.Rows[i].GroupID == catalog.GroupVerlichting {
			led = &bd.Rows[i]
		}
	}
	if led == nil {
		t.Fatal("lighting toggled on but no breakdown row emitted")
	}
	if led.Amount != 0 || led.Note != NoteLEDUnavailable {
		t.Errorf("LED row = %+v, want zero amount with %q note", led, NoteLEDUnavailable)
	}
	assertTotals(t, bd)
}

func TestPriceSizedRuleWithoutBuckets(t *testing.T) {
	// A size-scaled rule whose table lost all its buckets is a catalog data
	// gap: the selection must still appear, at zero, flagged, not fail.
	cat := catalog.New(catalog.Config{
		Groups: []catalog.Group{
			{
				ID: catalog.GroupZijwandLinks, Label: "Zijwand links", Kind: catalog.SingleSelect, Required: true,
				Choices: []catalog.Choice{
					{ID: "poly_wand", Label: "Polycarbonaat wand", Price: catalog.PriceRule{Kind: catalog.ByWidth, Table: map[int]money.Cents{}}},
				},
			},
		},
	})

	cfg := configurator.New(configurator.DomainStandard, 606, 300)
	cfg.Select(catalog.GroupZijwandLinks, "poly_wand")

	bd, err := PriceStandard(cat, cfg, sizing.Size{WidthCM: 606, DepthCM: 300}, 125000)
	if err != nil {
		t.Fatalf("gap in a price table must not fail pricing: %v", err)
	}

	if len(bd.Rows) != 1 {
		t.Fatalf("got %d rows, want 1: %+v", len(bd.Rows), bd.Rows)
	}
	row := bd.Rows[0]
	if row.Amount != 0 || row.Note != NotePriceUnresolved {
		t.Errorf("row = %+v, want zero amount with %q note", row, NotePriceUnresolved)
	}
	if bd.GrandTotal != 125000 {
		t.Errorf("GrandTotal = %d, want base 125000 untouched by the gap", bd.GrandTotal)
	}
	assertTotals(t, bd)
}

func TestPricePartialConfiguration(t *testing.T) {
	cat := catalog.Default()

	cfg := configurator.New(configurator.DomainStandard, 606, 300)
	cfg.Select(catalog.GroupDaktype, "glas_helder")

	bd, err := PriceStandard(cat, cfg, sizing.Size{WidthCM: 606, DepthCM: 300}, 125000)
	if err != nil {
		t.Fatalf("partial configuration must price for preview: %v", err)
	}
	if bd.GrandTotal != 125000+32000 {
		t.Errorf("GrandTotal = %d, want 157000", bd.GrandTotal)
	}
	assertTotals(t, bd)
}

func TestPriceUnknownChoice(t *testing.T) {
	cat := catalog.Default()

	cfg := configurator.New(configurator.DomainStandard, 606, 300)
	cfg.Select(catalog.GroupDaktype, "rieten_dak")

	if _, err := PriceStandard(cat, cfg, sizing.Size{WidthCM: 606, DepthCM: 300}, 125000); err == nil {
		t.Error("unknown choice id must fail, not be swallowed")
	}
}

func TestPriceIdempotent(t *testing.T) {
	cat := catalog.Default()
	cfg := standardConfig()
	size := sizing.Size{WidthCM: 606, DepthCM: 300}

	first, err := PriceStandard(cat, cfg, size, 125000)
	if err != nil {
		t.Fatal(err)
	}
	second, err := PriceStandard(cat, cfg.Clone(), size, 125000)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-pricing an equal configuration diverged:\n%+v\n%+v", first, second)
	}
}

func TestPriceCustomTotalsInvariant(t *testing.T) {
	cat := catalog.Default()
	walls := []string{catalog.ChoiceNone, "poly_wand", "glas_schuifwand"}

	for w := 250; w <= 720; w += 37 {
		for d := 240; d <= 410; d += 23 {
			cfg := configurator.New(configurator.DomainCustom, w, d)
			cfg.Select(catalog.GroupDaktype, "polycarbonaat_opaal")
			cfg.Select(catalog.GroupZijwandLinks, walls[w%3])
			cfg.Select(catalog.GroupVoorzijde, "glas_schuifwand")
			cfg.SetToggle(catalog.GroupVerlichting, d%2 == 0)

			bd, err := PriceCustom(cat, cfg)
			if err != nil {
				t.Fatalf("PriceCustom(%dx%d) returned error: %v", w, d, err)
			}
			assertTotals(t, bd)
		}
	}
}
