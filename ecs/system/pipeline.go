package system

import "github.com/milk9111/gungame/ecs"

// Pipeline is the set of systems a level runs, in update order. Input and
// Render are nil when headless.
type Pipeline struct {
	Input       *InputSystem
	Player      *PlayerControllerSystem
	Gun         *GunSystem
	AI          *AISystem
	Events      *EventLogSystem
	Projectiles *ProjectileSystem
	Damage      *DamageSystem
	Health      *HealthSystem
	Respawn     *RespawnSystem
	TTL         *TTLSystem
	WhiteFlash  *WhiteFlashSystem
	Physics     *PhysicsSystem
	Reload      *PrefabReloadSystem
	Render      *RenderSystem
}

// Install builds the pipeline and registers it on w. Events are flushed at
// the end of every world update, so producers run before their consumers:
// the gun and agents before projectiles, projectiles before damage. The
// event log runs after AI so it sees reload and state change events.
func Install(w *ecs.World, headless bool, changes <-chan string) *Pipeline {
	p := &Pipeline{
		Player:      NewPlayerControllerSystem(),
		Gun:         NewGunSystem(),
		AI:          NewAISystem(),
		Events:      NewEventLogSystem(),
		Projectiles: NewProjectileSystem(),
		Damage:      NewDamageSystem(),
		Health:      NewHealthSystem(),
		Respawn:     NewRespawnSystem(),
		TTL:         NewTTLSystem(),
		WhiteFlash:  NewWhiteFlashSystem(),
		Physics:     NewPhysicsSystem(),
	}
	p.Reload = NewPrefabReloadSystem(changes, p.AI, p.Projectiles)
	if !headless {
		p.Input = NewInputSystem()
		p.Render = NewRenderSystem()
		p.Render.Events = p.Events
	}

	if p.Input != nil {
		w.AddSystem(p.Input)
	}
	w.AddSystem(p.Reload)
	w.AddSystem(p.Player)
	w.AddSystem(p.Gun)
	w.AddSystem(p.AI)
	w.AddSystem(p.Events)
	w.AddSystem(p.Projectiles)
	w.AddSystem(p.Damage)
	w.AddSystem(p.Health)
	w.AddSystem(p.Respawn)
	w.AddSystem(p.TTL)
	w.AddSystem(p.WhiteFlash)
	w.AddSystem(p.Physics)
	if p.Render != nil {
		w.AddSystem(p.Render)
	}
	return p
}
