package topology

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Component is a single infrastructure component in a layout.
type Component struct {
	ID            string         `json:"id"`
	Type          Kind           `json:"type"`
	Configuration map[string]any `json:"configuration,omitempty"`
}

// UnmarshalJSON trims the component id so that "  api-1 " and "api-1" are the same component.
func (c *Component) UnmarshalJSON(b []byte) error {
	type plain Component
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	p.ID = strings.TrimSpace(p.ID)
	*c = Component(p)
	return nil
}

// Connection is a directed link between two component ids.
// On the wire it is a two element array: ["from", "to"].
type Connection struct {
	From string
	To   string
}

func (c Connection) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{c.From, c.To})
}

func (c *Connection) UnmarshalJSON(b []byte) error {
	var pair []string
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("connection must be a [from, to] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("connection must be a [from, to] pair, got %d elements", len(pair))
	}
	c.From, c.To = pair[0], pair[1]
	return nil
}

// Layout is a topology graph of components and the connections between them.
type Layout struct {
	Components  []Component  `json:"components"`
	Connections []Connection `json:"connections"`
}

// MarshalJSON always emits connections as an array, never null.
func (l Layout) MarshalJSON() ([]byte, error) {
	type plain Layout
	p := plain(l)
	if p.Components == nil {
		p.Components = []Component{}
	}
	if p.Connections == nil {
		p.Connections = []Connection{}
	}
	return json.Marshal(p)
}

// CountByKind returns how many components of each kind the layout holds.
func (l Layout) CountByKind() map[Kind]int {
	out := make(map[Kind]int, len(l.Components))
	for _, c := range l.Components {
		out[c.Type]++
	}
	return out
}

// Has reports whether any component is of one of the given kinds.
func (l Layout) Has(kinds ...Kind) bool {
	for _, c := range l.Components {
		for _, k := range kinds {
			if c.Type == k {
				return true
			}
		}
	}
	return false
}

// Validate checks the structural invariants of a layout.
func (l Layout) Validate() error {
	if len(l.Components) == 0 {
		return &ValidationError{Field: "components", Reason: "layout must contain at least one component"}
	}
	ids := make(map[string]struct{}, len(l.Components))
	for i, c := range l.Components {
		if strings.TrimSpace(c.ID) == "" {
			return &ValidationError{Field: fmt.Sprintf("components[%d].id", i), Reason: "component id cannot be empty"}
		}
		if !c.Type.Known() {
			return &ValidationError{Field: fmt.Sprintf("components[%d].type", i), Reason: fmt.Sprintf("unknown component type %q", c.Type)}
		}
		if _, dup := ids[c.ID]; dup {
			return &ValidationError{Field: "components", Reason: fmt.Sprintf("component ids must be unique: %q repeats", c.ID)}
		}
		ids[c.ID] = struct{}{}
	}
	for i, conn := range l.Connections {
		field := fmt.Sprintf("connections[%d]", i)
		if conn.From == conn.To {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("component %q cannot connect to itself", conn.From)}
		}
		if _, ok := ids[conn.From]; !ok {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("connection references non-existent component: %s", conn.From)}
		}
		if _, ok := ids[conn.To]; !ok {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("connection references non-existent component: %s", conn.To)}
		}
	}
	if l.Has(KindDatabase) && !l.Has(KindComputeNode) {
		return &ValidationError{Field: "components", Reason: "database component requires at least one compute node"}
	}
	return nil
}
