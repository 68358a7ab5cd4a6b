package catalog

import (
	"fmt"

	"github.com/brndagencynl/HETT-sub001/internal/money"
	"github.com/brndagencynl/HETT-sub001/internal/sizing"
)

// Well-known identifiers used across pricing, validation and visualization.
const (
	GroupDaktype       = "daktype"
	GroupGoot          = "goot"
	GroupKleur         = "kleur"
	GroupZijwandLinks  = "zijwand_links"
	GroupZijwandRechts = "zijwand_rechts"
	GroupVoorzijde     = "voorzijde"
	GroupVerlichting   = "verlichting"
	GroupMontage       = "montage"

	// ChoiceNone is the "geen" choice shared by the wall groups. It always
	// prices at zero and never produces a breakdown row or an overlay.
	ChoiceNone = "geen"
)

var standardWidths = []int{306, 406, 506, 606, 706}
var standardDepths = []int{250, 300, 350}

// Default builds the veranda catalog. All tables below are business data,
// kept as literal values rather than derived formulas.
func Default() *Catalog {
	sideWallPoly := map[int]money.Cents{
		300: 35000, 400: 40000, 500: 42500, 600: 45000, 700: 47500,
	}
	sideWallGlass := map[int]money.Cents{
		300: 65000, 400: 72500, 500: 80000, 600: 87500, 700: 95000,
	}
	frontGlass := map[int]money.Cents{
		250: 55000, 300: 62500, 350: 70000, 400: 77500,
	}
	frontPoly := map[int]money.Cents{
		250: 42500, 300: 47500, 350: 52500, 400: 57500,
	}

	sideWallChoices := func() []Choice {
		return []Choice{
			{ID: ChoiceNone, Label: "Geen zijwand", Price: FlatRule(0)},
			{ID: "poly_wand", Label: "Polycarbonaat wand", Description: "Vaste wand in polycarbonaat", Price: PriceRule{Kind: ByWidth, Table: sideWallPoly}},
			{ID: "glas_schuifwand", Label: "Glazen schuifwand", Description: "Schuifwand in gehard glas", Price: PriceRule{Kind: ByWidth, Table: sideWallGlass}},
		}
	}

	groups := []Group{
		{
			ID: GroupDaktype, Label: "Daktype", Kind: SingleSelect, Required: true,
			Choices: []Choice{
				{ID: "polycarbonaat_helder", Label: "Polycarbonaat helder", Price: FlatRule(0)},
				{ID: "polycarbonaat_opaal", Label: "Polycarbonaat opaal", Price: FlatRule(15000)},
				{ID: "glas_helder", Label: "Glas helder", Description: "Gehard helder glas 44.2", Price: FlatRule(32000)},
			},
		},
		{
			ID: GroupGoot, Label: "Goot", Kind: SingleSelect, Required: true,
			Choices: []Choice{
				{ID: "standaard", Label: "Standaard goot", Price: FlatRule(0)},
				{ID: "deluxe", Label: "Deluxe goot", Price: FlatRule(5000)},
			},
		},
		{
			ID: GroupKleur, Label: "Kleur", Kind: SingleSelect, Required: true,
			Choices: []Choice{
				{ID: "antraciet", Label: "Antraciet (RAL 7016)", Price: FlatRule(0)},
				{ID: "creme", Label: "Crème (RAL 9001)", Price: FlatRule(0)},
				{ID: "zwart", Label: "Zwart (RAL 9005)", Price: FlatRule(0)},
			},
		},
		{ID: GroupZijwandLinks, Label: "Zijwand links", Kind: SingleSelect, Required: true, Choices: sideWallChoices()},
		{ID: GroupZijwandRechts, Label: "Zijwand rechts", Kind: SingleSelect, Required: true, Choices: sideWallChoices()},
		{
			ID: GroupVoorzijde, Label: "Voorzijde", Kind: SingleSelect, Required: true,
			Choices: []Choice{
				{ID: ChoiceNone, Label: "Geen voorwand", Price: FlatRule(0)},
				{ID: "glas_schuifwand", Label: "Glazen schuifwand", Price: PriceRule{Kind: ByDepth, Table: frontGlass}},
				{ID: "poly_schuifwand", Label: "Polycarbonaat schuifwand", Price: PriceRule{Kind: ByDepth, Table: frontPoly}},
			},
		},
		{ID: GroupVerlichting, Label: "LED verlichting", Kind: Toggle, Required: false},
		{
			ID: GroupMontage, Label: "Montage", Kind: SingleSelect, Required: true,
			Choices: []Choice{
				{ID: "zelfbouw", Label: "Zelfbouwpakket", Price: FlatRule(0)},
				{ID: "montage_thuis", Label: "Montage aan huis", Price: FlatRule(39900)},
			},
		},
	}

	var sizes []StandardSize
	for _, w := range standardWidths {
		for _, d := range standardDepths {
			sizes = append(sizes, StandardSize{
				Size:    sizing.Size{WidthCM: w, DepthCM: d},
				Variant: fmt.Sprintf("veranda-%dx%d", w, d),
			})
		}
	}

	return New(Config{
		Groups:        groups,
		StandardSizes: sizes,
		WidthBuckets:  []int{300, 400, 500, 600, 700},
		DepthBuckets:  []int{250, 300, 350, 400},
		CustomMatrix: map[sizing.MatrixKey]money.Cents{
			{WidthCM: 300, DepthCM: 250}: 105000,
			{WidthCM: 300, DepthCM: 300}: 115000,
			{WidthCM: 300, DepthCM: 350}: 125000,
			{WidthCM: 300, DepthCM: 400}: 135000,
			{WidthCM: 400, DepthCM: 250}: 120000,
			{WidthCM: 400, DepthCM: 300}: 130000,
			{WidthCM: 400, DepthCM: 350}: 140000,
			{WidthCM: 400, DepthCM: 400}: 150000,
			{WidthCM: 500, DepthCM: 250}: 135000,
			{WidthCM: 500, DepthCM: 300}: 145000,
			{WidthCM: 500, DepthCM: 350}: 155000,
			{WidthCM: 500, DepthCM: 400}: 165000,
			{WidthCM: 600, DepthCM: 250}: 150000,
			{WidthCM: 600, DepthCM: 300}: 160000,
			{WidthCM: 600, DepthCM: 350}: 170000,
			{WidthCM: 600, DepthCM: 400}: 180000,
			{WidthCM: 700, DepthCM: 250}: 165000,
			{WidthCM: 700, DepthCM: 300}: 175000,
			{WidthCM: 700, DepthCM: 350}: 185000,
			{WidthCM: 700, DepthCM: 400}: 195000,
		},
		CustomSurcharge: 75000,
		LEDUnits: map[int]int{
			306: 3, 406: 4, 506: 5, 606: 6, 706: 7,
		},
		LEDUnitPrice: 800,
	})
}
