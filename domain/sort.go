package domain

import "sort"

// SortProjects orders projects by event date, then by the position of the
// event name in eventNames. Names missing from eventNames go after every
// listed name and keep their incoming order.
func SortProjects(projects []Project, eventNames []string) {
	rank := make(map[string]int, len(eventNames))
	for i, name := range eventNames {
		if _, found := rank[name]; !found {
			rank[name] = i
		}
	}
	rankOf := func(name string) int {
		if r, found := rank[name]; found {
			return r
		}
		return len(eventNames)
	}

	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].EventDate != projects[j].EventDate {
			return projects[i].EventDate < projects[j].EventDate
		}
		return rankOf(projects[i].EventName) < rankOf(projects[j].EventName)
	})
}
