package system

import (
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/gungame/ai"
	"github.com/milk9111/gungame/common"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
	"golang.org/x/image/colornames"
)

const defaultRigLength = 0.6

// RenderSystem draws the level and every entity as flat shapes. With Debug
// set it also draws each agent's ranges and state.
type RenderSystem struct {
	Debug  bool
	Events *EventLogSystem
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(w *ecs.World) {}

func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func px(v float64) float32 {
	return float32(v * common.TileSize)
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	screen.Fill(colornames.Midnightblue)
	r.drawLevel(w, screen)
	r.drawBodies(w, screen)
	r.drawRigs(w, screen)
	r.drawProjectiles(w, screen)
	if name, ok := r.Events.ReloadNotice(); ok {
		ebitenutil.DebugPrintAt(screen, "reloaded "+name, 4, common.BaseHeight-20)
	}
	if r.Debug {
		DrawPhysicsDebug(w.PhysicsWorld(), screen)
		DrawSightLines(w, screen)
		r.drawDebug(w, screen)
	}
}

func (r *RenderSystem) drawLevel(w *ecs.World, screen *ebiten.Image) {
	lvl := w.PhysicsWorld().Level()
	if lvl == nil {
		return
	}
	for y := 0; y < lvl.Height; y++ {
		for x := 0; x < lvl.Width; x++ {
			if !lvl.Solid(x, y) {
				continue
			}
			vector.FillRect(screen, px(float64(x)), px(float64(y)), common.TileSize, common.TileSize, colornames.Slategray, false)
		}
	}
}

func (r *RenderSystem) drawBodies(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ColliderComponent.Kind(), func(e ecs.Entity, t *component.Transform, c *component.Collider) {
		clr := color.Color(colornames.White)
		if a, ok := ecs.Get(w, e, component.AppearanceComponent.Kind()); ok {
			clr = a.Color
		}
		if wf, ok := ecs.Get(w, e, component.WhiteFlashComponent.Kind()); ok && wf.On {
			clr = colornames.White
		}
		x := t.X - c.Width/2
		y := t.Y - c.Height/2
		vector.FillRect(screen, px(x), px(y), px(c.Width), px(c.Height), clr, false)
	})
}

func (r *RenderSystem) drawRigs(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.AimRigComponent.Kind(), func(e ecs.Entity, t *component.Transform, rig *component.AimRig) {
		pivot := rigPivot(t, rig)
		length := rig.MuzzleDistance
		if length <= 0 {
			length = defaultRigLength
		}
		a := rigWorldAngle(t, rig)
		endX := pivot.X + math.Cos(a)*length
		endY := pivot.Y + math.Sin(a)*length
		vector.StrokeLine(screen, px(pivot.X), px(pivot.Y), px(endX), px(endY), 3, colornames.Lightgrey, true)
	})
}

func (r *RenderSystem) drawProjectiles(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ProjectileComponent.Kind(), func(e ecs.Entity, t *component.Transform, _ *component.Projectile) {
		clr := color.Color(colornames.Gold)
		if a, ok := ecs.Get(w, e, component.AppearanceComponent.Kind()); ok {
			clr = a.Color
		}
		size := math.Abs(t.ScaleX)
		vector.FillRect(screen, px(t.X-size/2), px(t.Y-size/2), px(size), px(size), clr, false)
	})
}

func (r *RenderSystem) drawDebug(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.AIComponent.Kind(), func(e ecs.Entity, t *component.Transform, aiComp *component.AI) {
		c := aiComp.Controller
		if c == nil {
			return
		}
		cfg := c.Config()
		cx, cy := px(t.X), px(t.Y)
		vector.StrokeCircle(screen, cx, cy, px(cfg.DetectionRange), 1, colornames.Yellow, true)
		vector.StrokeCircle(screen, cx, cy, px(cfg.AttackRange), 1, colornames.Red, true)
		vector.StrokeCircle(screen, cx, cy, px(cfg.AttackRange*ai.HysteresisFactor), 1, colornames.Orange, true)
		vector.StrokeCircle(screen, cx, cy, px(cfg.LoseRange), 1, colornames.Gray, true)

		if cfg.Patrol.UsesWaypoints() {
			for _, wp := range cfg.Patrol.Waypoints {
				vector.FillRect(screen, px(wp.X)-2, px(wp.Y)-2, 4, 4, colornames.Lime, false)
			}
		}

		label := c.State().String()
		if tr, ok := r.Events.Last(e); ok {
			label += " <- " + tr.From
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			label += " hp " + strconv.Itoa(h.Current)
		}
		ebitenutil.DebugPrintAt(screen, label, int(cx)-16, int(cy-px(1.2)))
	})
}
