package board

import "strings"

type RouteKind string

const (
	RouteList   = RouteKind("list")
	RouteNew    = RouteKind("new")
	RouteDetail = RouteKind("detail")
)

type Route struct {
	Kind      RouteKind `json:"kind"`
	ProjectID string    `json:"projectId,omitempty"`
}

const projectPrefix = "/project/"

// Resolve maps a location fragment such as "#/project/42" onto a route.
// Anything unrecognised falls back to the list.
func Resolve(fragment string) Route {
	path := strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	switch {
	case path == "/new":
		return Route{Kind: RouteNew}
	case strings.HasPrefix(path, projectPrefix) && len(path) > len(projectPrefix):
		return Route{Kind: RouteDetail, ProjectID: path[len(projectPrefix):]}
	default:
		return Route{Kind: RouteList}
	}
}
