package describe

import (
	"fmt"
	"reflect"
	"runtime"
)

// Described is implemented by anything that carries a fixed description.
type Described interface {
	Description() string
}

// Text returns the natural string form of v as used in descriptions and
// diagnoses.
//
// Described values yield their description, errors their message and
// fmt.Stringer values their String result. Function values yield the
// runtime name of the function. Everything else is formatted with fmt.Sprint.
//
// A nil pointer is "<nil>" whatever its methods. A method that panics is
// reported in fmt's style instead of propagating the panic.
func Text(v any) string {
	if v == nil {
		return "<nil>"
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "<nil>"
	}

	switch x := v.(type) {
	case Described:
		return call("Description", x.Description)
	case error:
		return call("Error", x.Error)
	case fmt.Stringer:
		return call("String", x.String)
	}

	if rv.Kind() == reflect.Func {
		return funcName(rv)
	}
	return fmt.Sprint(v)
}

// call invokes a text method, turning a panic into fmt's
// "%!v(PANIC=String method: ...)" form.
func call(name string, method func() string) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("%%!v(PANIC=%s method: %v)", name, r)
		}
	}()
	return method()
}

// funcName resolves the runtime name of a function value.
func funcName(rv reflect.Value) string {
	if rv.IsNil() {
		return "<nil>"
	}
	if fn := runtime.FuncForPC(rv.Pointer()); fn != nil {
		return fn.Name()
	}
	return rv.Type().String()
}
