package resolver

import (
	"fmt"
	"strings"
)

// DefaultTemplateRoot is the view root used when none is configured
const DefaultTemplateRoot = "~/apps"

// indexSegment is the only second segment accepted for two-segment paths
const indexSegment = "index"

// Match is the result of reinterpreting a request path as
// {app}/{controller}/{action}/{id}
type Match struct {
	App        string
	Controller string
	Action     string
	ID         string

	// ViewName is the template lookup hint for the matched path
	ViewName string
}

// Parse applies the dynamic path heuristic to path. Two shapes are accepted:
// "{app}/index", and "{app}/{controller}/{action}" with any number of
// trailing segments, of which only the first is kept as the id. Paths are
// lower-cased before parsing.
func Parse(path, templateRoot string) (Match, bool) {
	var segments = strings.Split(normalize(path), "/")
	switch {
	case len(segments) == 2 && segments[1] == indexSegment:
	case len(segments) >= 3:
	default:
		return Match{}, false
	}

	var m = Match{App: segments[0], Controller: segments[1]}
	if len(segments) > 2 {
		m.Action = segments[2]
	}
	if len(segments) > 3 {
		m.ID = segments[3]
	}
	m.ViewName = viewName(templateRoot, m, len(segments) == 2)
	return m, true
}

func normalize(path string) string {
	return strings.ToLower(strings.TrimLeft(path, "/"))
}

func viewName(root string, m Match, index bool) string {
	if root == "" {
		root = DefaultTemplateRoot
	}
	root = strings.TrimRight(root, "/")
	if index {
		return fmt.Sprintf("%s/%s/template/%s", root, m.App, m.Controller)
	}
	return fmt.Sprintf("%s/%s/template/%s_%s", root, m.App, m.Controller, m.Action)
}
