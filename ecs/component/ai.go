package component

import "github.com/milk9111/gungame/ai"

// AI binds an entity to its behavior controller. Prefab is the YAML file the
// controller's configuration came from and is used for hot reload.
type AI struct {
	Prefab     string
	Controller *ai.Controller
}

var AIComponent = NewComponent[AI]()

// AIHooks are the actions run when an agent enters or leaves a state, keyed
// by state name, plus an optional tengo script.
type AIHooks struct {
	OnEnter map[string][]map[string]any
	OnExit  map[string][]map[string]any
	Script  string
}

var AIHooksComponent = NewComponent[AIHooks]()
