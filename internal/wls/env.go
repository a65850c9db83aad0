package wls

import "sort"

// Env is the single global scope of a program. The last write wins.
type Env struct {
	vars map[string]Value
}

func NewEnv() *Env {
	return &Env{vars: map[string]Value{}}
}

func (e *Env) Set(name string, v Value) {
	e.vars[name] = v
}

func (e *Env) Get(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

func (e *Env) Len() int { return len(e.vars) }

// Names returns the bound names in sorted order.
func (e *Env) Names() []string {
	out := make([]string, 0, len(e.vars))
	for k := range e.vars {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
