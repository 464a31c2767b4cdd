package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/ecs/component"
)

const defaultGroundCheckDistance = 0.1

type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	)
	for _, e := range entities {
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if bodyComp.Body == nil {
			continue
		}

		player.Grounded = p.grounded(w, e, player, bodyComp)

		vel := bodyComp.Body.Velocity()
		vel.X = input.MoveX * player.MoveSpeed
		if input.JumpPressed && player.Grounded {
			vel.Y = -player.JumpSpeed
		}
		bodyComp.Body.SetVelocityVector(vel)
	}
}

// grounded casts a short ray down from the bottom of the collider.
func (p *PlayerControllerSystem) grounded(w *ecs.World, e ecs.Entity, player *component.Player, body *component.PhysicsBody) bool {
	dist := player.GroundCheckDistance
	if dist <= 0 {
		dist = defaultGroundCheckDistance
	}
	half := 0.0
	if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
		half = c.Height / 2
	}
	_, ok := w.PhysicsWorld().Raycast(body.Body.Position(), cp.Vector{Y: 1}, half+dist, component.CategorySolid, e)
	return ok
}
