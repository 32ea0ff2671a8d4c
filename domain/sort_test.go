package domain_test

import (
	"flyerboard/domain"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("SortProjects", func() {
	names := []string{"A", "X", "B"}

	ids := func(projects []domain.Project) []string {
		r := []string{}
		for _, p := range projects {
			r = append(r, p.EventName)
		}
		return r
	}

	It("should break date ties by the configured name order", func() {
		projects := []domain.Project{
			{EventName: "B", EventDate: "2025-01-01"},
			{EventName: "A", EventDate: "2025-01-01"},
		}
		domain.SortProjects(projects, names)
		Expect(ids(projects)).To(Equal([]string{"A", "B"}))
	})

	It("should put a later date last regardless of name", func() {
		projects := []domain.Project{
			{EventName: "A", EventDate: "2025-02-01"},
			{EventName: "B", EventDate: "2025-01-01"},
			{EventName: "A", EventDate: "2025-01-01"},
		}
		domain.SortProjects(projects, names)
		Expect(ids(projects)).To(Equal([]string{"A", "B", "A"}))
		Expect(projects[2].EventDate).To(Equal("2025-02-01"))
	})

	It("should put unlisted names after listed names and keep their order", func() {
		projects := []domain.Project{
			{EventName: "zeta", EventDate: "2025-01-01"},
			{EventName: "B", EventDate: "2025-01-01"},
			{EventName: "alpha", EventDate: "2025-01-01"},
			{EventName: "A", EventDate: "2025-01-01"},
		}
		domain.SortProjects(projects, names)
		Expect(ids(projects)).To(Equal([]string{"A", "B", "zeta", "alpha"}))
	})

	It("should sort by date only when no names are configured", func() {
		projects := []domain.Project{
			{EventName: "B", EventDate: "2025-03-01"},
			{EventName: "A", EventDate: "2024-12-31"},
		}
		domain.SortProjects(projects, nil)
		Expect(ids(projects)).To(Equal([]string{"A", "B"}))
	})
})
