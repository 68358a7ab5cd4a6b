package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/brndagencynl/HETT-sub001/internal/money"
	"github.com/brndagencynl/HETT-sub001/internal/sizing"
)

// ErrNotFound is returned for unknown group, choice or size identifiers.
// These indicate a catalog/consumer mismatch, not a user input problem.
var ErrNotFound = errors.New("not found")

// GroupKind distinguishes how a group is selected in the wizard.
type GroupKind string

const (
	SingleSelect GroupKind = "single_select"
	Toggle       GroupKind = "toggle"
)

// RuleKind tags the price-rule variant of a choice.
type RuleKind string

const (
	// Flat is a size-independent surcharge.
	Flat RuleKind = "flat"
	// ByWidth scales with the veranda width (side sliding walls).
	ByWidth RuleKind = "by_width"
	// ByDepth scales with the veranda depth (front sliding walls).
	ByDepth RuleKind = "by_depth"
)

// PriceRule is a tagged variant: a flat amount, or a bucket table keyed by
// width or depth centimeters.
type PriceRule struct {
	Kind  RuleKind
	Flat  money.Cents
	Table map[int]money.Cents
}

// FlatRule builds a size-independent rule.
func FlatRule(c money.Cents) PriceRule {
	return PriceRule{Kind: Flat, Flat: c}
}

// Choice is one selectable option within a group.
type Choice struct {
	ID          string
	Label       string
	Description string
	Price       PriceRule
}

// Group is an immutable option group. Groups are defined once at process
// start and never mutated at runtime.
type Group struct {
	ID       string
	Label    string
	Kind     GroupKind
	Required bool
	Choices  []Choice
}

// StandardSize is one purchasable catalog size, tied 1:1 to a commerce
// variant whose price is the configuration's base price.
type StandardSize struct {
	sizing.Size
	Variant string
}

// Catalog is the full read-only option catalog. Treat as immutable after New.
type Catalog struct {
	groups     map[string]*Group
	groupOrder []string

	standardSizes []StandardSize

	widthBuckets []int
	depthBuckets []int

	customMatrix    map[sizing.MatrixKey]money.Cents
	customSurcharge money.Cents

	ledUnits     map[int]int
	ledUnitPrice money.Cents
}

// PriceResult carries a resolved choice price. Unresolved marks a
// size-dependent rule whose table had no usable bucket: the amount is zero
// and the gap should be reported, but pricing keeps working.
type PriceResult struct {
	Amount     money.Cents
	Unresolved bool
}

// Config is the raw material for a Catalog. Default wires the production
// data; smaller catalogs can be assembled for targeted scenarios.
type Config struct {
	Groups          []Group
	StandardSizes   []StandardSize
	WidthBuckets    []int
	DepthBuckets    []int
	CustomMatrix    map[sizing.MatrixKey]money.Cents
	CustomSurcharge money.Cents
	LEDUnits        map[int]int
	LEDUnitPrice    money.Cents
}

// New builds an immutable catalog from its raw data. Group order is the
// slice order; it drives breakdown row order.
func New(cfg Config) *Catalog {
	byID := make(map[string]*Group, len(cfg.Groups))
	order := make([]string, 0, len(cfg.Groups))
	for i := range cfg.Groups {
		byID[cfg.Groups[i].ID] = &cfg.Groups[i]
		order = append(order, cfg.Groups[i].ID)
	}

	return &Catalog{
		groups:          byID,
		groupOrder:      order,
		standardSizes:   cfg.StandardSizes,
		widthBuckets:    cfg.WidthBuckets,
		depthBuckets:    cfg.DepthBuckets,
		customMatrix:    cfg.CustomMatrix,
		customSurcharge: cfg.CustomSurcharge,
		ledUnits:        cfg.LEDUnits,
		ledUnitPrice:    cfg.LEDUnitPrice,
	}
}

// Group looks up an option group by id.
func (c *Catalog) Group(id string) (*Group, error) {
	g, ok := c.groups[id]
	if !ok {
		return nil, fmt.Errorf("option group %q: %w", id, ErrNotFound)
	}
	return g, nil
}

// Groups returns all groups in their fixed catalog order.
func (c *Catalog) Groups() []*Group {
	out := make([]*Group, 0, len(c.groupOrder))
	for _, id := range c.groupOrder {
		out = append(out, c.groups[id])
	}
	return out
}

// Choice looks up a choice within a group.
func (c *Catalog) Choice(groupID, choiceID string) (*Choice, error) {
	g, err := c.Group(groupID)
	if err != nil {
		return nil, err
	}
	for i := range g.Choices {
		if g.Choices[i].ID == choiceID {
			return &g.Choices[i], nil
		}
	}
	return nil, fmt.Errorf("choice %q in group %q: %w", choiceID, groupID, ErrNotFound)
}

// ChoicePrice resolves a choice's price. Flat rules ignore size. Size-scaled
// rules read the bucket table on their own axis: exact bucket first, else the
// nearest lower bucket, else the nearest higher one. A rule with no usable
// bucket at all resolves to zero and is flagged Unresolved rather than
// failing, so previews keep working while catalog data gaps are fixed.
func (c *Catalog) ChoicePrice(groupID, choiceID string, size *sizing.Size) (PriceResult, error) {
	ch, err := c.Choice(groupID, choiceID)
	if err != nil {
		return PriceResult{}, err
	}

	switch ch.Price.Kind {
	case Flat:
		return PriceResult{Amount: ch.Price.Flat}, nil
	case ByWidth:
		if size == nil {
			return PriceResult{Unresolved: true}, nil
		}
		return priceFromTable(ch.Price.Table, size.WidthCM), nil
	case ByDepth:
		if size == nil {
			return PriceResult{Unresolved: true}, nil
		}
		return priceFromTable(ch.Price.Table, size.DepthCM), nil
	default:
		return PriceResult{}, fmt.Errorf("choice %q in group %q has unknown price rule %q", choiceID, groupID, ch.Price.Kind)
	}
}

// priceFromTable implements the bucket fallback for sized price tables:
// exact, else nearest lower, else nearest higher.
func priceFromTable(table map[int]money.Cents, axisCM int) PriceResult {
	if amount, ok := table[axisCM]; ok {
		return PriceResult{Amount: amount}
	}

	keys := make([]int, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return PriceResult{Unresolved: true}
	}
	sort.Ints(keys)

	lower := -1
	for _, k := range keys {
		if k < axisCM {
			lower = k
		}
	}
	if lower >= 0 {
		return PriceResult{Amount: table[lower]}
	}
	return PriceResult{Amount: table[keys[0]]}
}

// StandardSize resolves an exact catalog size. Mismatches mean the caller is
// in an invalid navigation state; that is an error, not a pricing concern.
func (c *Catalog) StandardSize(widthCM, depthCM int) (StandardSize, error) {
	for _, s := range c.standardSizes {
		if s.WidthCM == widthCM && s.DepthCM == depthCM {
			return s, nil
		}
	}
	return StandardSize{}, fmt.Errorf("standard size %dx%d: %w", widthCM, depthCM, ErrNotFound)
}

// StandardSizes lists all purchasable catalog sizes.
func (c *Catalog) StandardSizes() []StandardSize {
	out := make([]StandardSize, len(c.standardSizes))
	copy(out, c.standardSizes)
	return out
}

// CustomKey maps a raw maatwerk size onto the price matrix.
func (c *Catalog) CustomKey(widthCM, depthCM int) (sizing.MatrixKey, error) {
	return sizing.CustomKey(widthCM, depthCM, c.widthBuckets, c.depthBuckets)
}

// CustomBasePrice returns the matrix base price for a bucketed key.
func (c *Catalog) CustomBasePrice(key sizing.MatrixKey) (money.Cents, error) {
	amount, ok := c.customMatrix[key]
	if !ok {
		return 0, fmt.Errorf("maatwerk matrix cell %dx%d: %w", key.WidthCM, key.DepthCM, ErrNotFound)
	}
	return amount, nil
}

// CustomSurcharge is the fixed maatwerk fabrication surcharge, added on top
// of the matrix base price.
func (c *Catalog) CustomSurcharge() money.Cents {
	return c.customSurcharge
}

// LEDUnits returns the lighting unit count for a width. The mapping is a
// literal business table, not a formula; widths absent from it get zero units
// and ok=false, which the pricing engine surfaces as an informational flag.
func (c *Catalog) LEDUnits(widthCM int) (int, bool) {
	n, ok := c.ledUnits[widthCM]
	return n, ok
}

// LEDUnitPrice is the fixed per-unit LED spot price.
func (c *Catalog) LEDUnitPrice() money.Cents {
	return c.ledUnitPrice
}
