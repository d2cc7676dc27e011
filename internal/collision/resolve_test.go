package collision_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gamesim/internal/collision"
	"github.com/san-kum/gamesim/internal/entity"
	"github.com/san-kum/gamesim/internal/geom"
)

var _ = Describe("TestAndResolve", func() {
	collider := func(e *entity.Entity, i int) *entity.Collider {
		c, ok := e.Collider(i)
		Expect(ok).To(BeTrue())
		return &c
	}

	It("reports no hit for absent shapes", func() {
		a := box("solid", true, 0, 0, 1)
		Expect(collision.TestAndResolve(nil, collider(a, 0))).To(BeFalse())
		Expect(collision.TestAndResolve(collider(a, 0), nil)).To(BeFalse())
	})

	It("never collides an entity with itself", func() {
		e := entity.New("twin", []entity.Shape{
			{Bounds: geom.NewRect(-1, -1, 1, 1), Layer: "solid", Physics: true},
			{Bounds: geom.NewRect(0, 0, 2, 2), Layer: "solid", Physics: true},
		}, nil)

		Expect(collision.TestAndResolve(collider(e, 0), collider(e, 1))).To(BeFalse())
		Expect(e.Position()).To(Equal(mgl64.Vec2{0, 0}))
	})

	It("reports no hit for separated shapes", func() {
		a := box("solid", true, 0, 0, 0.5)
		b := box("solid", true, 3, 0, 0.5)

		Expect(collision.TestAndResolve(collider(a, 0), collider(b, 0))).To(BeFalse())
		Expect(a.Position()).To(Equal(mgl64.Vec2{0, 0}))
		Expect(b.Position()).To(Equal(mgl64.Vec2{3, 0}))
	})

	It("splits an x overlap evenly between two physics shapes", func() {
		a := box("solid", true, 0, 0, 1)
		b := box("solid", true, 1, 0, 1)

		Expect(collision.TestAndResolve(collider(a, 0), collider(b, 0))).To(BeTrue())
		Expect(a.Position()).To(Equal(mgl64.Vec2{-0.5, 0}))
		Expect(b.Position()).To(Equal(mgl64.Vec2{1.5, 0}))
	})

	It("splits unit squares overlapping by half a unit", func() {
		a := box("solid", true, 0, 0, 0.5)
		b := box("solid", true, 0.5, 0, 0.5)

		Expect(collision.TestAndResolve(collider(a, 0), collider(b, 0))).To(BeTrue())
		Expect(a.Position()).To(Equal(mgl64.Vec2{-0.25, 0}))
		Expect(b.Position()).To(Equal(mgl64.Vec2{0.75, 0}))
	})

	It("resolves along y when that axis needs less displacement", func() {
		a := box("solid", true, 0, 0, 1)
		b := box("solid", true, 0.5, -1.5, 1)

		Expect(collision.TestAndResolve(collider(a, 0), collider(b, 0))).To(BeTrue())
		Expect(a.Position()).To(Equal(mgl64.Vec2{0, 0.25}))
		Expect(b.Position()).To(Equal(mgl64.Vec2{0.5, -1.75}))
	})

	It("never displaces trigger shapes", func() {
		solid := box("solid", true, 0, 0, 1)
		sensor := box("sensor", false, 1, 0, 1)

		Expect(collision.TestAndResolve(collider(solid, 0), collider(sensor, 0))).To(BeTrue())
		Expect(solid.Position()).To(Equal(mgl64.Vec2{0, 0}))
		Expect(sensor.Position()).To(Equal(mgl64.Vec2{1, 0}))
	})

	It("counts edge contact as a hit without moving anything", func() {
		a := box("solid", true, 0, 0, 0.5)
		b := box("solid", true, 1, 0, 0.5)

		Expect(collision.TestAndResolve(collider(a, 0), collider(b, 0))).To(BeTrue())
		Expect(a.Position()).To(Equal(mgl64.Vec2{0, 0}))
		Expect(b.Position()).To(Equal(mgl64.Vec2{1, 0}))
	})
})

var _ = Describe("Penetration", func() {
	It("measures depth per axis and the direction towards b", func() {
		depth, dir := collision.Penetration(geom.NewRect(0, 0, 2, 2), geom.NewRect(-1, 1.5, 1, 3.5))

		Expect(depth).To(Equal(mgl64.Vec2{1, 0.5}))
		Expect(dir).To(Equal(mgl64.Vec2{-1, 1}))
	})

	It("has no direction on an axis with coincident centers", func() {
		_, dir := collision.Penetration(geom.NewRect(0, 0, 2, 2), geom.NewRect(0, 1, 2, 3))

		Expect(dir).To(Equal(mgl64.Vec2{0, 1}))
	})
})
