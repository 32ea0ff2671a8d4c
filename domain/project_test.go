package domain_test

import (
	"flyerboard/domain"

	"github.com/go-playground/validator/v10"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Project", func() {
	Describe("NewProject", func() {
		It("should start at the initial status with empty arrays", func() {
			c := domain.ProjectCreation{EventName: " Test Festival ", EventDate: "2025-06-01", IsUrgent: true}
			p := c.NewProject()
			Expect(p.EventName).To(Equal("Test Festival"))
			Expect(p.Status).To(Equal(domain.InitialStatus))
			Expect(p.Files).To(BeEmpty())
			Expect(p.Files).ToNot(BeNil())
			Expect(p.Comments).To(BeEmpty())
			Expect(p.Comments).ToNot(BeNil())
			Expect(p.IsUrgent).To(BeTrue())
		})
	})

	Describe("ProjectUpdating.Columns", func() {
		It("should only contain the fields that are set", func() {
			name := "renamed"
			count := 0
			u := domain.ProjectUpdating{EventName: &name, PrintCount: &count}
			Expect(u.Columns()).To(Equal(map[string]interface{}{"event_name": "renamed", "print_count": 0}))
		})

		It("should force the terminal status when the flyer is not needed", func() {
			yes := true
			status := domain.StatusPreparing
			u := domain.ProjectUpdating{FlyerNotNeeded: &yes, Status: &status}
			columns := u.Columns()
			Expect(columns["flyer_not_needed"]).To(Equal(true))
			Expect(columns["status"]).To(Equal(string(domain.StatusDone)))
		})

		It("should keep the given status when the flag is cleared", func() {
			no := false
			status := domain.StatusPreparing
			u := domain.ProjectUpdating{FlyerNotNeeded: &no, Status: &status}
			Expect(u.Columns()["status"]).To(Equal(string(domain.StatusPreparing)))
		})
	})

	Describe("Validate", func() {
		It("should require event name and ISO event date", func() {
			err := domain.Validate(&domain.ProjectCreation{EventDate: "2025/06/01"})
			Expect(err).To(HaveOccurred())
			verrs, ok := err.(validator.ValidationErrors)
			Expect(ok).To(BeTrue())
			fields := []string{}
			for _, e := range verrs {
				fields = append(fields, e.Field())
			}
			Expect(fields).To(ConsistOf("EventName", "EventDate"))

			Expect(domain.Validate(&domain.ProjectCreation{EventName: "a", EventDate: "2025-06-01"})).To(Succeed())
		})

		It("should reject negative counts and bad delivery dates", func() {
			n := -1
			Expect(domain.Validate(&domain.ProjectCreation{EventName: "a", EventDate: "2025-06-01", PrintCount: &n})).ToNot(Succeed())
			Expect(domain.Validate(&domain.ProjectCreation{EventName: "a", EventDate: "2025-06-01", DeliveryHopeDate: "soon"})).ToNot(Succeed())
		})

		It("should validate patches field by field", func() {
			empty := ""
			bad := domain.ProjectStatus("bogus")
			good := domain.StatusNotNeeded
			Expect(domain.Validate(&domain.ProjectUpdating{})).To(Succeed())
			Expect(domain.Validate(&domain.ProjectUpdating{EventDate: &empty})).ToNot(Succeed())
			Expect(domain.Validate(&domain.ProjectUpdating{DeliveryHopeDate: &empty})).To(Succeed())
			Expect(domain.Validate(&domain.ProjectUpdating{Status: &bad})).ToNot(Succeed())
			Expect(domain.Validate(&domain.ProjectUpdating{Status: &good})).To(Succeed())
		})
	})

	Describe("Validate blank event names", func() {
		fieldsOf := func(err error) []string {
			verrs, ok := err.(validator.ValidationErrors)
			Expect(ok).To(BeTrue())
			fields := []string{}
			for _, e := range verrs {
				fields = append(fields, e.Field())
			}
			return fields
		}

		It("should reject a whitespace only name on creation", func() {
			err := domain.Validate(&domain.ProjectCreation{EventName: "  \t ", EventDate: "2025-06-01"})
			Expect(err).To(HaveOccurred())
			Expect(fieldsOf(err)).To(ConsistOf("EventName"))
		})

		It("should reject an empty or whitespace only name in a patch", func() {
			for _, name := range []string{"", "   "} {
				n := name
				err := domain.Validate(&domain.ProjectUpdating{EventName: &n})
				Expect(err).To(HaveOccurred())
				Expect(fieldsOf(err)).To(ConsistOf("EventName"))
			}
			renamed := " Autumn Fair "
			Expect(domain.Validate(&domain.ProjectUpdating{EventName: &renamed})).To(Succeed())
		})

		It("should still accept a patch date only in ISO layout", func() {
			bad := "2025-6-1"
			good := "2025-06-01"
			Expect(domain.Validate(&domain.ProjectUpdating{EventDate: &bad})).ToNot(Succeed())
			Expect(domain.Validate(&domain.ProjectUpdating{EventDate: &good})).To(Succeed())
		})
	})

	Describe("FindFile", func() {
		It("should find files by name", func() {
			p := domain.Project{Files: domain.Files{{Name: "a.pdf"}, {Name: "b.pdf"}}}
			Expect(p.FindFile("b.pdf")).To(Equal(1))
			Expect(p.FindFile("c.pdf")).To(Equal(-1))
		})
	})
})
