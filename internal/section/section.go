// Package section implements the full-viewport blocks a story stacks:
// every section reads one scroll sample per frame, eases its entities
// toward the targets that sample implies and paints them.
package section

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/ivlev/scroll2video/internal/asset"
	"github.com/ivlev/scroll2video/internal/entity"
	"github.com/ivlev/scroll2video/internal/scroll"
	"github.com/ivlev/scroll2video/internal/story"
	"github.com/ivlev/scroll2video/internal/surface"
)

var ErrUnknownKind = errors.New("unknown section kind")

// Env is what a section gets at mount time
type Env struct {
	Viewport scroll.Viewport
	Rand     *rand.Rand
	Assets   *asset.Store // nil draws fallback circles instead of portraits
	OnFlip   func(page int)
}

// Tick is the frame clock. Time and Delta are in seconds.
type Tick struct {
	Index int
	Time  float64
	Delta float64
}

// Section is one block of the scroll document
type Section interface {
	Name() string
	Kind() string
	Height() float64
	// Mount creates the entities and makes the one-time random picks
	Mount(env *Env)
	Resize(vp scroll.Viewport)
	// Scroll receives the batched sample of the section region
	Scroll(s scroll.Sample)
	Update(t Tick)
	Draw(dst surface.Surface)
	Unmount()
}

// Hoverable sections react to the pointer (viewport coordinates).
// A negative position means the pointer left the viewport.
type Hoverable interface {
	Pointer(x, y float64)
}

// Flipper exposes the book of a flip-book section
type Flipper interface {
	Book() Book
}

type constructor func(spec story.SectionSpec) Section

var registry = map[string]constructor{
	story.KindOpening:  newOpening,
	story.KindSystems:  newSystems,
	story.KindGwageo:   newGwageo,
	story.KindPareto:   newPareto,
	story.KindEra:      newEra,
	story.KindFlipbook: newFlipbook,
}

// New builds an unmounted section for spec
func New(spec story.SectionSpec) (Section, error) {
	ctor, ok := registry[spec.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}
	return ctor(spec), nil
}

// base carries what every section shares
type base struct {
	spec    story.SectionSpec
	env     *Env
	vp      scroll.Viewport
	sample  scroll.Sample
	mounted bool
}

func (b *base) Name() string {
	if b.spec.Name != "" {
		return b.spec.Name
	}
	return b.spec.Kind
}

func (b *base) Kind() string    { return b.spec.Kind }
func (b *base) Height() float64 { return b.spec.Height }

func (b *base) mount(env *Env) {
	b.env = env
	b.vp = env.Viewport
	if b.env.Rand == nil {
		b.env.Rand = rand.New(rand.NewSource(1))
	}
	b.mounted = true
}

func (b *base) Resize(vp scroll.Viewport) { b.vp = vp }

func (b *base) Scroll(s scroll.Sample) { b.sample = s }

func (b *base) unmount() {
	b.mounted = false
}

// sprite picks portrait n of the asset set. A missing store yields no
// sprite so entities fall back to plain circles.
func (b *base) sprite(n int) entity.Sprite {
	if b.env == nil || b.env.Assets == nil {
		return nil
	}
	return b.env.Assets.Indexed(n)
}

// picture fetches a named asset, or nil without a store
func (b *base) picture(id string) entity.Sprite {
	if b.env == nil || b.env.Assets == nil || id == "" {
		return nil
	}
	return b.env.Assets.Get(id)
}

// randomPortrait returns an index in [1, count]
func (b *base) randomPortrait() int {
	count := 49
	if b.env.Assets != nil && b.env.Assets.Count() > 0 {
		count = b.env.Assets.Count()
	}
	return b.env.Rand.Intn(count) + 1
}

// sticky translates a pinned layer with the region
func (b *base) sticky(dst surface.Surface) surface.Surface {
	return surface.Offset(dst, 0, b.sample.Sticky())
}

// leaving is element progress from the region top at the viewport top to
// the region bottom at the viewport top
var leaving = scroll.Offset{{Target: 0, Container: 0}, {Target: 1, Container: 0}}
