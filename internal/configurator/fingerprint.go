package configurator

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Reserved fingerprint keys for the non-selection parts of a configuration.
// Underscore-prefixed so they can never collide with a catalog group id.
const (
	fpKeyDomain = "_domain"
	fpKeyWidth  = "_width_cm"
	fpKeyDepth  = "_depth_cm"
)

// Fingerprint derives a stable identifier from a configuration's logical
// content: keys are sorted, each serialized as "key:JSON(value)", joined with
// "|", and run through a 32-bit polynomial rolling hash rendered in base 36.
// Identical group→value mappings fingerprint identically regardless of
// insertion order or platform. Non-cryptographic: used for change detection
// and cart-line dedup, where a collision costs at most a re-render.
func Fingerprint(cfg Configuration) string {
	pairs := make(map[string]any, len(cfg.Values)+3)
	for k, v := range cfg.Values {
		pairs[k] = v
	}
	pairs[fpKeyDomain] = string(cfg.Domain)
	pairs[fpKeyWidth] = cfg.WidthCM
	pairs[fpKeyDepth] = cfg.DepthCM

	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		raw, err := json.Marshal(pairs[k])
		if err != nil {
			// Values are strings, bools and ints; this cannot happen.
			raw = []byte(fmt.Sprintf("%v", pairs[k]))
		}
		parts = append(parts, k+":"+string(raw))
	}

	var h uint32
	for _, b := range []byte(strings.Join(parts, "|")) {
		h = h*31 + uint32(b)
	}
	return strconv.FormatUint(uint64(h), 36)
}
