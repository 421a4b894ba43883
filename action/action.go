package action

import (
	"context"
	"fmt"
	"net/http"

	"github.com/RTradeLtd/Dispatch/route"
)

// HandlerFunc executes an action
type HandlerFunc func(c *Context) error

// Descriptor identifies a registered action and the handler that serves it
type Descriptor struct {
	App        string
	Controller string
	Action     string

	// Defaults are merged into the route values before the action executes,
	// without overwriting values that are already set
	Defaults route.Values

	Handler HandlerFunc
}

// Name returns the qualified name of the action
func (d *Descriptor) Name() string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", d.App, d.Controller, d.Action)
}

// Selector maps a route context onto a registered action
type Selector interface {
	// Select returns the action matching the context's route values, or nil
	Select(c *route.Context) *Descriptor
	// HasValidAction reports whether the given values map to an action
	HasValidAction(values route.Values) bool
}

// Invoker runs a single action
type Invoker interface {
	Invoke(ctx context.Context) error
}

// InvokerFactory creates invokers for action contexts. It may return nil if
// it cannot serve the given action.
type InvokerFactory interface {
	CreateInvoker(c *Context) Invoker
}

// Diagnostics receives notifications around action execution
type Diagnostics interface {
	BeforeAction(d *Descriptor, r *http.Request, values route.Values)
	AfterAction(d *Descriptor, r *http.Request, values route.Values)
}

// NopDiagnostics discards all notifications
type NopDiagnostics struct{}

// BeforeAction does nothing
func (NopDiagnostics) BeforeAction(*Descriptor, *http.Request, route.Values) {}

// AfterAction does nothing
func (NopDiagnostics) AfterAction(*Descriptor, *http.Request, route.Values) {}
