package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/gungame/ecs"
	"github.com/milk9111/gungame/prefabs"
)

// aiScriptRuntime is one compiled hook script. Scripts define
// onEnter(engine, state) and onExit(engine, state); memory persists between
// calls for the same agent.
type aiScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	memory     *tengo.Map
}

const aiHookDispatchScript = `
if __phase == "enter" {
	onEnter(__engine, __state)
} else if __phase == "exit" {
	onExit(__engine, __state)
}
`

func (s *AISystem) runScript(ctx *AIActionContext, path string) {
	rt, err := s.getScriptRuntime(ctx.Entity, path)
	if err != nil {
		ctx.log().WithError(err).WithField("script", path).Error("ai: load hook script")
		return
	}

	engine := buildAIScriptEngine(ctx, rt)
	if err := rt.runPhase("exit", ctx.From.String(), engine); err != nil {
		ctx.log().WithError(err).WithField("script", path).Error("ai: script onExit")
		return
	}
	if err := rt.runPhase("enter", ctx.To.String(), engine); err != nil {
		ctx.log().WithError(err).WithField("script", path).Error("ai: script onEnter")
	}
}

func (s *AISystem) getScriptRuntime(e ecs.Entity, path string) (*aiScriptRuntime, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty script path")
	}
	if s.scriptCache == nil {
		s.scriptCache = map[ecs.Entity]*aiScriptRuntime{}
	}
	if rt, ok := s.scriptCache[e]; ok && rt != nil && rt.scriptPath == path {
		return rt, nil
	}

	rt, err := compileAIScript(path)
	if err != nil {
		return nil, err
	}
	s.scriptCache[e] = rt
	return rt, nil
}

func compileAIScript(path string) (*aiScriptRuntime, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + aiHookDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	return &aiScriptRuntime{
		scriptPath: path,
		compiled:   compiled,
		memory:     &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (rt *aiScriptRuntime) runPhase(phase, state string, engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if engine == nil {
		engine = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func vectorObject(x, y float64) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}
}

func buildAIScriptEngine(ctx *AIActionContext, rt *aiScriptRuntime) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	for name, maker := range actionRegistry {
		makeAction := maker
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			var arg any
			if len(args) > 0 {
				arg = objectToAny(args[0])
			}
			makeAction(arg)(ctx)
			return tengo.TrueValue, nil
		}}
	}

	values["action"] = &tengo.UserFunction{Name: "action", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		maker, ok := actionRegistry[strings.TrimSpace(objectAsString(args[0]))]
		if !ok {
			return tengo.FalseValue, nil
		}
		var arg any
		if len(args) > 1 {
			arg = objectToAny(args[1])
		}
		maker(arg)(ctx)
		return tengo.TrueValue, nil
	}}

	values["state"] = &tengo.UserFunction{Name: "state", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.Controller == nil {
			return &tengo.String{Value: ctx.To.String()}, nil
		}
		return &tengo.String{Value: ctx.Controller.State().String()}, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		p := bodyAdapter{w: ctx.World, e: ctx.Entity}.Position()
		return vectorObject(p.X, p.Y), nil
	}}

	values["target_position"] = &tengo.UserFunction{Name: "target_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.Controller == nil {
			return tengo.UndefinedValue, nil
		}
		target := ctx.Controller.Target()
		if target == nil {
			return tengo.UndefinedValue, nil
		}
		p, ok := target.Position()
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return vectorObject(p.X, p.Y), nil
	}}

	values["distance"] = &tengo.UserFunction{Name: "distance", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ctx.Controller == nil {
			return &tengo.Float{Value: -1}, nil
		}
		d, ok := ctx.Controller.DistanceTo(ctx.Controller.Target())
		if !ok {
			return &tengo.Float{Value: -1}, nil
		}
		return &tengo.Float{Value: d}, nil
	}}

	values["memory"] = rt.memory

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
