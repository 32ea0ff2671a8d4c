package domain_test

import (
	"flyerboard/domain"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Columns", func() {
	Describe("Files", func() {
		It("should store nil as an empty array", func() {
			v, err := domain.Files(nil).Value()
			Expect(err).To(BeNil())
			Expect(v).To(Equal("[]"))
		})

		It("should scan string, bytes and null", func() {
			var f domain.Files
			Expect(f.Scan(`[{"name":"a.pdf","url":"http://x/a.pdf","uploadedAt":null}]`)).To(Succeed())
			Expect(f).To(HaveLen(1))
			Expect(f[0].Name).To(Equal("a.pdf"))

			Expect(f.Scan([]byte(`[]`))).To(Succeed())
			Expect(f).To(BeEmpty())

			Expect(f.Scan(nil)).To(Succeed())
			Expect(f).ToNot(BeNil())

			Expect(f.Scan("null")).To(Succeed())
			Expect(f).ToNot(BeNil())

			Expect(f.Scan(12)).ToNot(Succeed())
		})
	})

	Describe("Comments", func() {
		It("should round trip through the column value", func() {
			c := domain.Comments{{ID: "comm_1_a", Text: "こんにちは", UserName: "山田", Role: domain.RoleAgency,
				Timestamp: types.CurrentTimestamp()}}
			v, err := c.Value()
			Expect(err).To(BeNil())

			var back domain.Comments
			Expect(back.Scan(v)).To(Succeed())
			v2, err := back.Value()
			Expect(err).To(BeNil())
			Expect(v2).To(MatchJSON(v.(string)))
		})
	})
})
