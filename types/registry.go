package types

import "fmt"

// supportedTypeNames is the closed set of type tags accepted everywhere a
// type name is required. Adding a sixth element type means adding a case
// here, to TypeVisitor, and to every Resolve call site — the set is
// closed by design, not meant to be extended at runtime.
var supportedTypeNames = []string{"int", "long", "float", "double", "string"}

// SupportedTypeNames returns the type tags Resolve accepts, in the order
// they are matched.
func SupportedTypeNames() []string {
	out := make([]string, len(supportedTypeNames))
	copy(out, supportedTypeNames)
	return out
}

// IsRegisteredType reports whether name is one of the supported type tags.
func IsRegisteredType(name string) bool {
	for _, n := range supportedTypeNames {
		if n == name {
			return true
		}
	}
	return false
}

// TypeVisitor holds one factory per supported element type. Resolve calls
// exactly one of these, chosen by a runtime type name, so that generic
// code parameterised over T can be instantiated without the caller ever
// naming T directly.
type TypeVisitor[R any] struct {
	Int    func() R
	Long   func() R
	Float  func() R
	Double func() R
	String func() R
}

// Resolve dispatches typeName to the matching field of v and returns its
// result. This is the registry's one operation: given a type name and a
// factory per type, instantiate the factory for the type the name names.
// An unknown type name is a fatal error, returned rather than panicked so
// that callers (table construction, compression, scan dispatch) can
// report it through their own error return.
func Resolve[R any](typeName string, v TypeVisitor[R]) (R, error) {
	switch typeName {
	case "int":
		return v.Int(), nil
	case "long":
		return v.Long(), nil
	case "float":
		return v.Float(), nil
	case "double":
		return v.Double(), nil
	case "string":
		return v.String(), nil
	default:
		var zero R
		return zero, fmt.Errorf("types: unknown type name %q; supported: %v", typeName, supportedTypeNames)
	}
}
