package resolver

import (
	"strings"

	"github.com/RTradeLtd/Dispatch/route"
)

// Target names the action that dynamically resolved paths are dispatched to
type Target struct {
	App        string `json:"app" yaml:"app"`
	Controller string `json:"controller" yaml:"controller"`
	Action     string `json:"action" yaml:"action"`
}

// DefaultTarget is the dispatch target used when none is configured.
//
// TODO: this placeholder target is inherited from the first deployment and
// should be replaced by per-app targets once every app registers its own
// dynamic view controller.
var DefaultTarget = Target{App: "demo01", Controller: "test", Action: "dynamic"}

// Valid reports whether all parts of the target are set
func (t Target) Valid() bool {
	return t.App != "" && t.Controller != "" && t.Action != ""
}

// Targets maps parsed apps to dispatch targets
type Targets struct {
	Default Target
	Apps    map[string]Target
}

// For returns the dispatch target for the given app
func (t Targets) For(app string) Target {
	if target, found := t.Apps[strings.ToLower(app)]; found && target.Valid() {
		return target
	}
	if t.Default.Valid() {
		return t.Default
	}
	return DefaultTarget
}

// values builds the second-pass route values for a match. Non-reserved
// values from the first pass are carried over so that the two passes differ
// only in the dispatch keys.
func (t Target) values(first route.Values, m Match) route.Values {
	var v = make(route.Values, len(first)+4)
	for k, val := range first {
		switch k {
		case route.KeyApp, route.KeyController, route.KeyAction, route.KeyID, route.KeyRouteGroup:
		default:
			v[k] = val
		}
	}
	v[route.KeyApp] = t.App
	v[route.KeyController] = t.Controller
	v[route.KeyAction] = t.Action
	v[route.KeyID] = m.ID
	return v
}
