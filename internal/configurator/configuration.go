package configurator

// Domain distinguishes catalog-size verandas from maatwerk ones.
type Domain string

const (
	DomainStandard Domain = "standard"
	DomainCustom   Domain = "custom"
)

// Configuration is the customer's current set of wizard selections. The
// wizard owns the mutable copy; every core function takes it by value and
// never holds on to it. Values maps a group id to either a choice id (string,
// single-select groups) or an on/off state (bool, toggle groups).
type Configuration struct {
	Domain  Domain         `json:"domain"`
	WidthCM int            `json:"width_cm"`
	DepthCM int            `json:"depth_cm"`
	Values  map[string]any `json:"values"`
}

// New returns an empty configuration for a domain and raw size.
func New(domain Domain, widthCM, depthCM int) Configuration {
	return Configuration{
		Domain:  domain,
		WidthCM: widthCM,
		DepthCM: depthCM,
		Values:  make(map[string]any),
	}
}

// Choice returns the selected choice id for a single-select group.
func (c Configuration) Choice(groupID string) (string, bool) {
	v, ok := c.Values[groupID]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Toggled reports whether a toggle group is switched on.
func (c Configuration) Toggled(groupID string) bool {
	v, ok := c.Values[groupID]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// Select sets a single-select group's choice.
func (c *Configuration) Select(groupID, choiceID string) {
	if c.Values == nil {
		c.Values = make(map[string]any)
	}
	c.Values[groupID] = choiceID
}

// SetToggle sets a toggle group's state.
func (c *Configuration) SetToggle(groupID string, on bool) {
	if c.Values == nil {
		c.Values = make(map[string]any)
	}
	c.Values[groupID] = on
}

// Clone returns an independent copy. Stored cart lines are never edited in
// place; the edit flow works on a clone and rebuilds the payload.
func (c Configuration) Clone() Configuration {
	out := c
	out.Values = make(map[string]any, len(c.Values))
	for k, v := range c.Values {
		out.Values[k] = v
	}
	return out
}
