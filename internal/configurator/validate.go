package configurator

import (
	"github.com/brndagencynl/HETT-sub001/internal/catalog"
)

// ReasonMissing is the validation reason for a required group without a
// selection. The wizard maps reasons to localized field errors.
const ReasonMissing = "selection required"

// IsComplete reports whether every required group has a selection. Only a
// complete configuration may be turned into a cart line; partial ones may
// still be priced for live preview. The overview step has no selection of its
// own and therefore never blocks completeness.
func IsComplete(cat *catalog.Catalog, cfg Configuration) bool {
	return len(ValidationErrors(cat, cfg)) == 0
}

// ValidationErrors maps each missing required group to a reason. Optional
// groups never produce an entry. Purely structural: no pricing here.
func ValidationErrors(cat *catalog.Catalog, cfg Configuration) map[string]string {
	errs := make(map[string]string)
	for _, g := range cat.Groups() {
		if !g.Required {
			continue
		}
		switch g.Kind {
		case catalog.Toggle:
			if _, ok := cfg.Values[g.ID]; !ok {
				errs[g.ID] = ReasonMissing
			}
		default:
			if _, ok := cfg.Choice(g.ID); !ok {
				errs[g.ID] = ReasonMissing
			}
		}
	}
	return errs
}
