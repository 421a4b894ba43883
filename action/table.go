package action

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/RTradeLtd/Dispatch/route"
)

const (
	// ErrInvalidAction is returned when an incomplete action is provided
	ErrInvalidAction = "invalid action"

	// ErrActionExists is returned when an action is provided that already exists
	ErrActionExists = "action already exists"
)

type key struct{ app, controller, action string }

func newKey(app, controller, action string) key {
	return key{
		strings.ToLower(app),
		strings.ToLower(controller),
		strings.ToLower(action),
	}
}

// Table is a conventional action selector. Actions are keyed by app,
// controller and action name, case-insensitively.
type Table struct {
	// action registry - locked by Table::am
	actions map[key]*Descriptor
	am      sync.RWMutex
}

// NewTable sets up a new table with provided actions. Incomplete or
// duplicate actions are skipped.
func NewTable(actions ...*Descriptor) *Table {
	var t = &Table{actions: make(map[key]*Descriptor)}
	for _, d := range actions {
		t.Register(d)
	}
	return t
}

// Register adds an action to the table
func (t *Table) Register(d *Descriptor) error {
	if d == nil || d.App == "" || d.Controller == "" || d.Action == "" || d.Handler == nil {
		return errors.New(ErrInvalidAction)
	}
	var k = newKey(d.App, d.Controller, d.Action)
	t.am.Lock()
	defer t.am.Unlock()
	if _, found := t.actions[k]; found {
		return errors.New(ErrActionExists)
	}
	t.actions[k] = d
	return nil
}

// Deregister removes the action with the given name
func (t *Table) Deregister(app, controller, action string) error {
	if app == "" || controller == "" || action == "" {
		return errors.New(ErrInvalidAction)
	}
	var k = newKey(app, controller, action)
	t.am.Lock()
	defer t.am.Unlock()
	if _, found := t.actions[k]; !found {
		return fmt.Errorf("action '%s/%s/%s' not found", app, controller, action)
	}
	delete(t.actions, k)
	return nil
}

// Get retrieves the action with the given name
func (t *Table) Get(app, controller, action string) (*Descriptor, error) {
	if app == "" || controller == "" || action == "" {
		return nil, errors.New(ErrInvalidAction)
	}
	t.am.RLock()
	d, found := t.actions[newKey(app, controller, action)]
	t.am.RUnlock()
	if !found {
		return nil, fmt.Errorf("action '%s/%s/%s' not found", app, controller, action)
	}
	return d, nil
}

// List retrieves the names of all known actions, sorted
func (t *Table) List() []string {
	t.am.RLock()
	var names = make([]string, 0, len(t.actions))
	for _, d := range t.actions {
		names = append(names, d.Name())
	}
	t.am.RUnlock()
	sort.Strings(names)
	return names
}

// Select implements Selector
func (t *Table) Select(c *route.Context) *Descriptor {
	if c == nil {
		return nil
	}
	d, err := t.Get(
		c.Values.Get(route.KeyApp),
		c.Values.Get(route.KeyController),
		c.Values.Get(route.KeyAction))
	if err != nil {
		return nil
	}
	return d
}

// HasValidAction implements Selector
func (t *Table) HasValidAction(values route.Values) bool {
	_, err := t.Get(
		values.Get(route.KeyApp),
		values.Get(route.KeyController),
		values.Get(route.KeyAction))
	return err == nil
}
