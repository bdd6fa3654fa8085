package berth

import (
	"fmt"
	"reflect"
)

// ID uniquely identifies a service by its Go type and an optional name.
// Two IDs derived from the same type parameter (and name) are always equal,
// so ID is safe to use as a map key.
type ID struct {
	typ  reflect.Type
	name string // Empty for unnamed services, or "primary", "readonly" etc.
}

// IDOf returns the identity of the unnamed service of type T.
func IDOf[T any]() ID {
	return ID{typ: reflect.TypeFor[T]()}
}

// NamedID returns the identity of the service of type T bound under name.
func NamedID[T any](name string) ID {
	return ID{typ: reflect.TypeFor[T](), name: name}
}

// Type returns the Go type of the service.
func (id ID) Type() reflect.Type {
	return id.typ
}

// Name returns the qualifier name, empty for unnamed services.
func (id ID) Name() string {
	return id.name
}

// IsZero reports whether id was never initialized.
func (id ID) IsZero() bool {
	return id.typ == nil
}

// String returns a human-readable representation of the identity.
func (id ID) String() string {
	typeName := "<nil>"
	if id.typ != nil {
		typeName = id.typ.String()
	}

	if id.name == "" {
		return typeName
	}

	return fmt.Sprintf("%s[name=%s]", typeName, id.name)
}

// FullName is String with package import paths instead of package names,
// e.g. "*github.com/acme/store.Client[name=primary]". Types declared in
// different packages under the same name render differently, so FullName
// is the form to use for lookups and metric labels.
func (id ID) FullName() string {
	if id.typ == nil {
		return "<nil>"
	}

	typeName := qualifiedName(id.typ)
	if id.name == "" {
		return typeName
	}

	return fmt.Sprintf("%s[name=%s]", typeName, id.name)
}

func qualifiedName(t reflect.Type) string {
	if t.Name() != "" {
		if t.PkgPath() == "" {
			return t.String()
		}

		// Generic instantiations keep their type arguments in Name.
		return t.PkgPath() + "." + t.Name()
	}

	switch t.Kind() {
	case reflect.Pointer:
		return "*" + qualifiedName(t.Elem())
	case reflect.Slice:
		return "[]" + qualifiedName(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), qualifiedName(t.Elem()))
	case reflect.Map:
		return "map[" + qualifiedName(t.Key()) + "]" + qualifiedName(t.Elem())
	case reflect.Chan:
		return t.ChanDir().String() + " " + qualifiedName(t.Elem())
	default:
		return t.String()
	}
}

// Key provides type-safe service identification.
// Use KeyOf or NamedKey to create typed keys for your services.
type Key[T any] struct {
	id ID
}

// KeyOf creates the typed key of the unnamed service of type T.
//
// Example:
//
//	var DatabaseKey = berth.KeyOf[*Database]()
func KeyOf[T any]() Key[T] {
	return Key[T]{id: IDOf[T]()}
}

// NamedKey creates a typed key for a second binding of the same type.
//
// Example:
//
//	var ReplicaKey = berth.NamedKey[*Database]("replica")
func NamedKey[T any](name string) Key[T] {
	return Key[T]{id: NamedID[T](name)}
}

// ID returns the untyped identity behind the key.
func (k Key[T]) ID() ID {
	return k.id
}

// String returns the string form of the identity.
func (k Key[T]) String() string {
	return k.id.String()
}

// Identifier is implemented by every Key.
type Identifier interface {
	ID() ID
}

// IDs converts keys of mixed types into a dependency list for Register and
// ProvideN.
func IDs(keys ...Identifier) []ID {
	ids := make([]ID, len(keys))
	for i, k := range keys {
		ids[i] = k.ID()
	}

	return ids
}
