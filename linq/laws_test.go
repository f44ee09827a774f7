package linq_test

import (
	"math/big"
	"math/rand"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hasbyte1/go-linq/linq"
)

// samples returns a fixed set of inputs including the empty sequence, a
// singleton, runs of duplicates and a larger random slice.
func samples() [][]int {
	rng := rand.New(rand.NewSource(42))
	large := make([]int, 200)
	for i := range large {
		large[i] = rng.Intn(50) - 25
	}
	return [][]int{
		{},
		{7},
		{1, 2, 3, 4},
		{5, 3, 1, 4, 2},
		{0, 1, 2, 3, 4, 5, 3, 6},
		{2, 2, 1, 1, 3, 3, 2},
		large,
	}
}

var _ = Describe("Query laws", func() {
	isEven := func(n int) bool { return n%2 == 0 }
	isPositive := func(n int) bool { return n > 0 }

	It("fuses consecutive Where calls", func() {
		for _, s := range samples() {
			chained := linq.From(s).Where(isEven).Where(isPositive)
			fused := linq.From(s).Where(func(n int) bool { return isEven(n) && isPositive(n) })
			Expect(chained.ToSlice()).To(Equal(fused.ToSlice()))
		}
	})

	It("keeps the count under Select", func() {
		for _, s := range samples() {
			q := linq.From(s)
			Expect(linq.Select(q, func(n int) string { return "x" }).Count()).To(Equal(q.Count()))
		}
	})

	It("sorts descending after sorting ascending", func() {
		for _, s := range samples() {
			asc := linq.OrderBy(linq.From(s)).ToSlice()
			desc := linq.OrderByDescending(linq.OrderBy(linq.From(s))).ToSlice()
			Expect(slices.Equal(asc, slices.Sorted(slices.Values(s)))).To(BeTrue())
			Expect(desc).To(HaveLen(len(s)))
			for i := range desc {
				Expect(desc[i]).To(Equal(asc[len(asc)-1-i]))
			}
		}
	})

	It("makes Distinct idempotent", func() {
		for _, s := range samples() {
			once := linq.Distinct(linq.From(s))
			twice := linq.Distinct(once)
			Expect(twice.ToSlice()).To(Equal(once.ToSlice()))
		}
	})

	It("adds counts under Concat", func() {
		all := samples()
		for _, s := range all {
			for _, u := range all {
				Expect(linq.From(s).Concat(linq.From(u)).Count()).To(Equal(len(s) + len(u)))
			}
		}
	})

	It("averages as Sum / Count for non-empty integer input", func() {
		for _, s := range samples() {
			if len(s) == 0 {
				continue
			}
			q := linq.From(s)
			sum, err := linq.Sum(q)
			Expect(err).NotTo(HaveOccurred())
			avg, err := linq.Average(q)
			Expect(err).NotTo(HaveOccurred())
			Expect(avg).To(Equal(sum / q.Count()))

			exact, err := linq.AverageDecimal(q)
			Expect(err).NotTo(HaveOccurred())
			want := big.NewRat(int64(sum), int64(len(s)))
			got, ok := new(big.Rat).SetString(exact.String())
			Expect(ok).To(BeTrue())
			diff := new(big.Rat).Sub(got, want)
			Expect(diff.Abs(diff).Cmp(big.NewRat(1, 1e15))).To(BeNumerically("<", 0))
		}
	})

	It("is reflexive under SequenceEqual", func() {
		all := samples()
		for _, s := range all {
			Expect(linq.SequenceEqual(linq.From(s), linq.From(s))).To(BeTrue())
			for _, u := range all {
				if linq.SequenceEqual(linq.From(s), linq.From(u)) {
					Expect(len(s)).To(Equal(len(u)))
				}
			}
		}
	})

	Context("on an empty sequence", func() {
		var q *linq.Query[int]

		BeforeEach(func() {
			q = linq.From([]int{})
		})

		DescribeTable("scalar terminals fail",
			func(call func() error) {
				Expect(call()).To(MatchError(linq.ErrEmptySequence))
			},
			Entry("Min", func() error { _, err := linq.Min(q); return err }),
			Entry("Max", func() error { _, err := linq.Max(q); return err }),
			Entry("Sum", func() error { _, err := linq.Sum(q); return err }),
			Entry("Average", func() error { _, err := linq.Average(q); return err }),
			Entry("Aggregate", func() error {
				_, err := q.Aggregate(func(a, b int) int { return a + b })
				return err
			}),
		)

		It("keeps total terminals well defined", func() {
			Expect(q.Count()).To(BeZero())
			Expect(q.Any(isEven)).To(BeFalse())
			Expect(q.All(isEven)).To(BeTrue())
			Expect(q.Contains(isEven)).To(BeFalse())
			Expect(linq.SequenceEqual(q, linq.Empty[int]())).To(BeTrue())
			ok, err := linq.Includes(q, linq.Empty[int]())
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})
	})
})
