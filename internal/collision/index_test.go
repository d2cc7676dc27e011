package collision_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gamesim/internal/collision"
	"github.com/san-kum/gamesim/internal/entity"
	"github.com/san-kum/gamesim/internal/geom"
)

var _ = Describe("Index", func() {
	var idx *collision.Index

	BeforeEach(func() {
		idx = collision.NewIndex()
	})

	It("registers one entry per shape on the shape's layer", func() {
		e := entity.New("hero", []entity.Shape{
			{Bounds: geom.NewRect(0, 0, 1, 1), Layer: "body", Physics: true},
			{Bounds: geom.NewRect(0, 0, 2, 2), Layer: "aura"},
			{Bounds: geom.NewRect(1, 1, 2, 2), Layer: "body", Physics: true},
		}, nil)

		idx.Register(e)

		Expect(idx.Layers()).To(Equal([]string{"aura", "body"}))
		Expect(idx.Layer("body")).To(Equal([]collision.Entry{{Entity: e, Shape: 0}, {Entity: e, Shape: 2}}))
		Expect(idx.Layer("aura")).To(Equal([]collision.Entry{{Entity: e, Shape: 1}}))
		Expect(idx.Count(e)).To(Equal(3))
	})

	It("removes exactly the entity's entries", func() {
		a := box("body", true, 0, 0, 1)
		b := box("body", true, 5, 0, 1)
		idx.Register(a)
		idx.Register(b)

		Expect(idx.Unregister(a)).To(Equal(1))
		Expect(idx.Unregister(a)).To(Equal(0))

		Expect(idx.Layer("body")).To(Equal([]collision.Entry{{Entity: b, Shape: 0}}))
		Expect(idx.Count(a)).To(BeZero())
	})

	It("drops empty layers", func() {
		a := box("body", true, 0, 0, 1)
		idx.Register(a)
		idx.Unregister(a)

		Expect(idx.Layers()).To(BeEmpty())
		Expect(idx.Layer("body")).To(BeNil())
		Expect(idx.Len("body")).To(BeZero())
	})

	It("hands out snapshots", func() {
		a := box("body", true, 0, 0, 1)
		idx.Register(a)

		snap := idx.Layer("body")
		idx.Register(box("body", true, 1, 1, 1))

		Expect(snap).To(HaveLen(1))
		Expect(idx.Len("body")).To(Equal(2))
	})

	It("stays consistent under interleaved registration and removal", func() {
		rng := rand.New(rand.NewSource(42))
		layers := []string{"a", "b", "c"}
		var alive []*entity.Entity

		for i := 0; i < 400; i++ {
			if len(alive) > 0 && rng.Intn(3) == 0 {
				k := rng.Intn(len(alive))
				idx.Unregister(alive[k])
				alive = append(alive[:k], alive[k+1:]...)
				continue
			}
			shapes := make([]entity.Shape, 1+rng.Intn(3))
			for s := range shapes {
				shapes[s] = entity.Shape{Bounds: geom.NewRect(0, 0, 1, 1), Layer: layers[rng.Intn(len(layers))]}
			}
			e := entity.New("n", shapes, nil)
			idx.Register(e)
			alive = append(alive, e)
		}

		want := map[string]int{}
		for _, e := range alive {
			Expect(idx.Count(e)).To(Equal(e.ShapeCount()))
			for s := 0; s < e.ShapeCount(); s++ {
				want[e.Shape(s).Layer]++
			}
		}

		for _, layer := range layers {
			entries := idx.Layer(layer)
			Expect(entries).To(HaveLen(want[layer]))

			seen := map[collision.Entry]bool{}
			for _, en := range entries {
				Expect(seen[en]).To(BeFalse(), "duplicate entry")
				seen[en] = true
				Expect(en.Entity.Shape(en.Shape).Layer).To(Equal(layer))
			}
		}
	})
})
