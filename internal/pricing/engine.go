package pricing

import (
	"fmt"

	"github.com/brndagencynl/HETT-sub001/internal/catalog"
	"github.com/brndagencynl/HETT-sub001/internal/configurator"
	"github.com/brndagencynl/HETT-sub001/internal/money"
	"github.com/brndagencynl/HETT-sub001/internal/sizing"
)

// Notes attached to informational zero-amount rows.
const (
	// NotePriceUnresolved marks a size-dependent choice whose price table had
	// no usable bucket. Safe zero, reported, never fatal.
	NotePriceUnresolved = "price unresolved for this size"
	// NoteLEDUnavailable marks the lighting toggle at a width outside the LED
	// unit table. The toggle stays on, the row contributes zero.
	NoteLEDUnavailable = "unavailable for this width"
)

// Row is one line item of a breakdown, attributing an amount to a selection.
// Labels are presentation-ready; consumers never need catalog lookups.
type Row struct {
	GroupID  string      `json:"group_id"`
	ChoiceID string      `json:"choice_id,omitempty"`
	Label    string      `json:"label"`
	Amount   money.Cents `json:"amount"`
	Note     string      `json:"note,omitempty"`
}

// Breakdown is the single consolidated pricing shape used by every flow:
// live preview, cart line, offer, edit. GrandTotal == Base + OptionsTotal and
// OptionsTotal == sum of row amounts, exactly, in integer cents.
type Breakdown struct {
	Base         money.Cents `json:"base"`
	Rows         []Row       `json:"rows"`
	OptionsTotal money.Cents `json:"options_total"`
	GrandTotal   money.Cents `json:"grand_total"`
}

// PriceStandard prices a catalog-size veranda. The base price comes from the
// commerce variant and is injected by the caller; the engine never fetches
// anything. Pure function of (catalog, configuration, size, base price):
// equal inputs always reproduce a bit-identical breakdown, which is what lets
// the edit flow recompute instead of patching stored amounts.
func PriceStandard(cat *catalog.Catalog, cfg configurator.Configuration, size sizing.Size, basePrice money.Cents) (Breakdown, error) {
	return price(cat, cfg, &size, basePrice)
}

// PriceCustom prices a maatwerk veranda: the raw size is bucketed onto the
// price matrix, and the fixed fabrication surcharge joins the matrix value in
// the base price. Option rows work exactly as in the standard flow, priced
// against the raw size.
func PriceCustom(cat *catalog.Catalog, cfg configurator.Configuration) (Breakdown, error) {
	key, err := cat.CustomKey(cfg.WidthCM, cfg.DepthCM)
	if err != nil {
		return Breakdown{}, fmt.Errorf("resolve maatwerk buckets: %w", err)
	}
	matrixBase, err := cat.CustomBasePrice(key)
	if err != nil {
		return Breakdown{}, fmt.Errorf("maatwerk base price: %w", err)
	}

	size := sizing.Size{WidthCM: cfg.WidthCM, DepthCM: cfg.DepthCM}
	return price(cat, cfg, &size, matrixBase+cat.CustomSurcharge())
}

func price(cat *catalog.Catalog, cfg configurator.Configuration, size *sizing.Size, basePrice money.Cents) (Breakdown, error) {
	bd := Breakdown{Base: basePrice}

	// Walk groups in catalog order so equal configurations always produce
	// rows in the same order.
	for _, g := range cat.Groups() {
		switch g.Kind {
		case catalog.Toggle:
			if g.ID == catalog.GroupVerlichting && cfg.Toggled(g.ID) {
				bd.Rows = append(bd.Rows, lightingRow(cat, g, size.WidthCM))
			}
		default:
			choiceID, ok := cfg.Choice(g.ID)
			if !ok {
				// Partial configurations are priced for preview; missing
				// groups are simply skipped.
				continue
			}
			ch, err := cat.Choice(g.ID, choiceID)
			if err != nil {
				return Breakdown{}, err
			}
			res, err := cat.ChoicePrice(g.ID, choiceID, size)
			if err != nil {
				return Breakdown{}, err
			}
			switch {
			case res.Unresolved:
				bd.Rows = append(bd.Rows, Row{
					GroupID: g.ID, ChoiceID: choiceID, Label: ch.Label,
					Note: NotePriceUnresolved,
				})
			case res.Amount != 0:
				bd.Rows = append(bd.Rows, Row{
					GroupID: g.ID, ChoiceID: choiceID, Label: ch.Label,
					Amount: res.Amount,
				})
			}
			// Zero-priced selections ("geen", included defaults) produce no
			// row; the summary only lists what actually costs money.
		}
	}

	for _, row := range bd.Rows {
		bd.OptionsTotal += row.Amount
	}
	bd.GrandTotal = bd.Base + bd.OptionsTotal
	return bd, nil
}

// lightingRow derives the LED add-on. The unit count is a literal width
// lookup, not a formula; widths outside the table keep the toggle on but
// contribute zero, flagged so the UI can explain why.
func lightingRow(cat *catalog.Catalog, g *catalog.Group, widthCM int) Row {
	units, ok := cat.LEDUnits(widthCM)
	if !ok {
		return Row{GroupID: g.ID, Label: g.Label, Note: NoteLEDUnavailable}
	}
	return Row{
		GroupID: g.ID,
		Label:   fmt.Sprintf("%s (%d spots)", g.Label, units),
		Amount:  money.Cents(units) * cat.LEDUnitPrice(),
	}
}
