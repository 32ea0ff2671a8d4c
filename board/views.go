package board

import (
	"flyerboard/domain"
)

type ViewKind string

const (
	ViewList     = ViewKind("list")
	ViewNew      = ViewKind("new")
	ViewDetail   = ViewKind("detail")
	ViewNotFound = ViewKind("notFound")
	ViewFatal    = ViewKind("fatal")
)

const BackLink = "#/"

// ProjectCard is a project decorated with what the list and detail screens
// derive from its status.
type ProjectCard struct {
	domain.Project

	Phase       int  `json:"phase"`
	Urgent      bool `json:"urgent"`
	Highlighted bool `json:"highlighted"`
}

func NewProjectCard(p domain.Project) ProjectCard {
	return ProjectCard{
		Project:     p,
		Phase:       domain.PhaseOf(p.Status),
		Urgent:      p.IsUrgent,
		Highlighted: p.Status.Highlighted(),
	}
}

type View struct {
	Kind    ViewKind `json:"kind"`
	Version uint64   `json:"version"`

	Error string `json:"error,omitempty"`
	Back  string `json:"back,omitempty"`

	Projects []ProjectCard `json:"projects"`
	Project  *ProjectCard  `json:"project,omitempty"`

	EventNames    []string               `json:"eventNames,omitempty"`
	InitialStatus domain.ProjectStatus   `json:"initialStatus,omitempty"`
	Statuses      []domain.ProjectStatus `json:"statuses,omitempty"`
}

func cards(list []domain.Project) []ProjectCard {
	result := make([]ProjectCard, 0, len(list))
	for _, p := range list {
		result = append(result, NewProjectCard(p))
	}
	return result
}

func buildView(state State, route Route, eventNames []string) View {
	if state.Fatal != nil {
		return View{Kind: ViewFatal, Version: state.Version, Error: state.Fatal.Error()}
	}
	switch route.Kind {
	case RouteNew:
		return View{Kind: ViewNew, Version: state.Version, EventNames: eventNames,
			InitialStatus: domain.InitialStatus, Statuses: domain.SelectableStatuses()}
	case RouteDetail:
		for _, p := range state.Projects {
			if p.ID.String() == route.ProjectID {
				card := NewProjectCard(p)
				return View{Kind: ViewDetail, Version: state.Version, Project: &card, Statuses: domain.SelectableStatuses()}
			}
		}
		return View{Kind: ViewNotFound, Version: state.Version, Back: BackLink}
	default:
		return View{Kind: ViewList, Version: state.Version, Projects: cards(state.Projects)}
	}
}
