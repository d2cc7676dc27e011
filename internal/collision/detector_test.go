package collision_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gamesim/internal/collision"
	"github.com/san-kum/gamesim/internal/entity"
)

var _ = Describe("Detector", func() {
	var idx *collision.Index

	BeforeEach(func() {
		idx = collision.NewIndex()
	})

	It("notifies both owners with the other side's shape", func() {
		player := box("player", true, 0, 0, 1)
		wall := box("wall", true, 1, 0, 1)
		idx.Register(player)
		idx.Register(wall)

		playerHits, wallHits := &hitLog{}, &hitLog{}
		playerHits.watch(player)
		wallHits.watch(wall)

		d := collision.NewDetector(idx, []collision.Rule{{A: "player", B: "wall"}})

		Expect(d.Step()).To(Equal(1))
		Expect(playerHits.hits).To(HaveLen(1))
		Expect(playerHits.hits[0].Owner).To(BeIdenticalTo(wall))
		Expect(playerHits.hits[0].Layer).To(Equal("wall"))
		Expect(wallHits.hits).To(HaveLen(1))
		Expect(wallHits.hits[0].Owner).To(BeIdenticalTo(player))

		Expect(player.Position()).To(Equal(mgl64.Vec2{-0.5, 0}))
		Expect(wall.Position()).To(Equal(mgl64.Vec2{1.5, 0}))
	})

	It("reports trigger overlaps on both sides without moving either", func() {
		player := box("player", true, 0, 0, 1)
		coin := box("pickup", false, 0.5, 0.5, 0.5)
		idx.Register(player)
		idx.Register(coin)

		playerHits, coinHits := &hitLog{}, &hitLog{}
		playerHits.watch(player)
		coinHits.watch(coin)

		d := collision.NewDetector(idx, []collision.Rule{{A: "player", B: "pickup"}})

		Expect(d.Step()).To(Equal(1))
		Expect(playerHits.hits).To(HaveLen(1))
		Expect(coinHits.hits).To(HaveLen(1))
		Expect(player.Position()).To(Equal(mgl64.Vec2{0, 0}))
		Expect(coin.Position()).To(Equal(mgl64.Vec2{0.5, 0.5}))
	})

	It("tests every shape of A against every shape of B once per rule", func() {
		for i := 0; i < 3; i++ {
			idx.Register(box("a", false, 0, 0, 10))
		}
		for i := 0; i < 4; i++ {
			idx.Register(box("b", false, 0, 0, 10))
		}

		d := collision.NewDetector(idx, []collision.Rule{{A: "a", B: "b"}})
		Expect(d.Step()).To(Equal(12))
	})

	It("skips rules naming empty or unknown layers", func() {
		idx.Register(box("a", true, 0, 0, 1))

		d := collision.NewDetector(idx, []collision.Rule{{A: "a", B: "missing"}, {A: "ghost", B: "a"}})
		Expect(d.Step()).To(BeZero())
	})

	It("ignores an entity's own shapes on a self-layer rule", func() {
		e := box("crowd", true, 0, 0, 1)
		e.AddShape(e.Shape(0))
		idx.Register(e)

		log := &hitLog{}
		log.watch(e)

		d := collision.NewDetector(idx, []collision.Rule{{A: "crowd", B: "crowd"}})
		Expect(d.Step()).To(BeZero())
		Expect(log.hits).To(BeEmpty())
	})

	It("keeps its own copy of the rule list", func() {
		rules := []collision.Rule{{A: "a", B: "b"}}
		d := collision.NewDetector(idx, rules)
		rules[0].A = "changed"

		Expect(d.Rules()).To(Equal([]collision.Rule{{A: "a", B: "b"}}))
	})

	It("does not test shapes registered by a hook during the same rule", func() {
		a := box("a", false, 0, 0, 1)
		b := box("b", false, 0, 0, 1)
		idx.Register(a)
		idx.Register(b)

		spawned := 0
		a.OnCollision(func(_ *entity.Entity, _ entity.Collider) {
			idx.Register(box("b", false, 0, 0, 1))
			spawned++
		})

		d := collision.NewDetector(idx, []collision.Rule{{A: "a", B: "b"}})
		Expect(d.Step()).To(Equal(1))
		Expect(spawned).To(Equal(1))
		Expect(idx.Len("b")).To(Equal(2))
	})
})
