package sequence

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

type scriptGate struct {
	name     string
	compiled *tengo.Compiled
	warned   bool
}

// NewScriptGate compiles a tengo script into a Gate. The script sees
// elapsed, now, phase, values (property id -> value) and args, and opens the
// gate by assigning a truthy value to pass.
func NewScriptGate(name string, src []byte, args map[string]any) (Gate, error) {
	if args == nil {
		args = map[string]any{}
	}
	argObj, err := tengo.FromInterface(args)
	if err != nil {
		return nil, fmt.Errorf("sequence: gate %s args: %w", name, err)
	}

	script := tengo.NewScript(src)
	_ = script.Add("elapsed", 0.0)
	_ = script.Add("now", 0.0)
	_ = script.Add("phase", "")
	_ = script.Add("values", &tengo.ImmutableMap{Value: map[string]tengo.Object{}})
	_ = script.Add("args", argObj)
	_ = script.Add("pass", false)
	script.SetImports(stdlib.GetModuleMap("math", "text"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("sequence: gate %s compile: %w", name, err)
	}
	g := &scriptGate{name: name, compiled: compiled}
	return g.eval, nil
}

func (g *scriptGate) eval(v View) bool {
	values := map[string]tengo.Object{}
	for id, val := range v.Values() {
		values[id] = &tengo.Float{Value: val}
	}
	if err := g.run(v, values); err != nil {
		if !g.warned {
			log.Printf("sequence: gate %s: %v", g.name, err)
			g.warned = true
		}
		return false
	}
	return g.compiled.Get("pass").Bool()
}

func (g *scriptGate) run(v View, values map[string]tengo.Object) error {
	if err := g.compiled.Set("elapsed", v.Elapsed()); err != nil {
		return err
	}
	if err := g.compiled.Set("now", v.Now()); err != nil {
		return err
	}
	if err := g.compiled.Set("phase", v.Phase()); err != nil {
		return err
	}
	if err := g.compiled.Set("values", &tengo.ImmutableMap{Value: values}); err != nil {
		return err
	}
	if err := g.compiled.Set("pass", false); err != nil {
		return err
	}
	return g.compiled.Run()
}
