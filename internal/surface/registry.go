package surface

import (
	"fmt"
	"sort"
)

var builtins = map[string]func() *Parametric{
	"plane":    func() *Parametric { return NewPlane() },
	"sphere":   func() *Parametric { return NewSphere(1.0) },
	"torus":    func() *Parametric { return NewTorus(2.0, 0.7) },
	"cylinder": func() *Parametric { return NewCylinder(1.0) },
	"cone":     func() *Parametric { return NewCone(1.0) },
	"catenoid": func() *Parametric { return NewCatenoid(1.0) },
	"helicoid": func() *Parametric { return NewHelicoid(0.5) },
	"saddle":   func() *Parametric { return NewMonkeySaddle() },
	"bump":     func() *Parametric { return NewBump(1.5, 0.8) },
}

// Lookup returns the named builtin surface with its default dimensions.
func Lookup(name string) (*Parametric, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown surface: %s", name)
	}
	return fn(), nil
}

// Names lists the builtin surfaces in stable order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
