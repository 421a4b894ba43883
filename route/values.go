package route

const (
	// KeyApp is the route value naming the application
	KeyApp = "app"
	// KeyController is the route value naming the controller
	KeyController = "controller"
	// KeyAction is the route value naming the action
	KeyAction = "action"
	// KeyID is the route value carrying an optional identifier
	KeyID = "id"

	// KeyRouteGroup is reserved by attribute routing and is removed before an
	// action executes so that values look like the result of conventional
	// routing
	KeyRouteGroup = "!__route_group"
)

// Values holds resolved route parameters
type Values map[string]string

// NewValues creates a set of values for the given app, controller, action
// and id
func NewValues(app, controller, action, id string) Values {
	return Values{
		KeyApp:        app,
		KeyController: controller,
		KeyAction:     action,
		KeyID:         id,
	}
}

// Clone returns a copy of v. The copy is never nil.
func (v Values) Clone() Values {
	var c = make(Values, len(v))
	for k, val := range v {
		c[k] = val
	}
	return c
}

// Merge adds entries from defaults that are not already set in v
func (v Values) Merge(defaults Values) {
	for k, val := range defaults {
		if _, found := v[k]; !found {
			v[k] = val
		}
	}
}

// Get returns the value for key, or an empty string
func (v Values) Get(key string) string { return v[key] }

// Equal reports whether v and o hold exactly the same entries. A nil set is
// equal to an empty one.
func (v Values) Equal(o Values) bool {
	if len(v) != len(o) {
		return false
	}
	for k, val := range v {
		if ov, found := o[k]; !found || ov != val {
			return false
		}
	}
	return true
}
