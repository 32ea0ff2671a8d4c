package domain_test

import (
	"flyerboard/domain"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Status", func() {
	Describe("PhaseOf", func() {
		It("should map every status into [1,7]", func() {
			for _, s := range domain.AllStatuses() {
				Expect(domain.PhaseOf(s)).To(BeNumerically(">=", 1))
				Expect(domain.PhaseOf(s)).To(BeNumerically("<=", 7))
			}
		})

		It("should put undecided and not-needed into the first phase", func() {
			Expect(domain.PhaseOf(domain.StatusUndecided)).To(Equal(1))
			Expect(domain.PhaseOf(domain.StatusNotNeeded)).To(Equal(1))
		})

		It("should give the other six statuses distinct phases 2..7", func() {
			phases := map[int]domain.ProjectStatus{}
			for _, s := range []domain.ProjectStatus{domain.StatusPreparing, domain.StatusInProduction,
				domain.StatusUnderReview, domain.StatusRevisionNeeded, domain.StatusAwaitingPrint, domain.StatusDone} {
				p := domain.PhaseOf(s)
				Expect(phases).ToNot(HaveKey(p))
				phases[p] = s
			}
			Expect(phases).To(HaveLen(6))
			for p := 2; p <= 7; p++ {
				Expect(phases).To(HaveKey(p))
			}
			Expect(domain.PhaseOf(domain.StatusDone)).To(Equal(7))
		})

		It("should fall back to the first phase for unknown values", func() {
			Expect(domain.PhaseOf("unknown")).To(Equal(1))
			Expect(domain.PhaseOf("")).To(Equal(1))
		})
	})

	Describe("SelectableStatuses", func() {
		It("should offer seven statuses without not-needed", func() {
			s := domain.SelectableStatuses()
			Expect(s).To(HaveLen(7))
			Expect(s).ToNot(ContainElement(domain.StatusNotNeeded))
			Expect(s[0]).To(Equal(domain.InitialStatus))
		})

		It("should return a copy", func() {
			s := domain.SelectableStatuses()
			s[0] = "changed"
			Expect(domain.SelectableStatuses()[0]).To(Equal(domain.StatusUndecided))
		})
	})

	Describe("Valid and Highlighted", func() {
		It("should accept only enumerated values", func() {
			Expect(domain.StatusNotNeeded.Valid()).To(BeTrue())
			Expect(domain.ProjectStatus("done").Valid()).To(BeFalse())
		})
		It("should highlight only revision requests", func() {
			Expect(domain.StatusRevisionNeeded.Highlighted()).To(BeTrue())
			Expect(domain.StatusDone.Highlighted()).To(BeFalse())
		})
	})

	Describe("ParseStatus", func() {
		It("should accept every status including not-needed", func() {
			for _, s := range domain.AllStatuses() {
				parsed, err := domain.ParseStatus(string(s))
				Expect(err).To(BeNil())
				Expect(parsed).To(Equal(s))
			}
			parsed, err := domain.ParseStatus(" 完了 ")
			Expect(err).To(BeNil())
			Expect(parsed).To(Equal(domain.StatusDone))
		})
		It("should reject unknown values", func() {
			_, err := domain.ParseStatus("done")
			Expect(err).To(Equal(domain.ErrInvalidStatus))
			_, err = domain.ParseStatus("")
			Expect(err).To(Equal(domain.ErrInvalidStatus))
		})
	})
})
