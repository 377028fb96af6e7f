// Package facts defines the structured records the extraction layer produces
// and the graph builders consume. The records carry no parse state: they are
// plain values describing namespaces, imports, declared types with their
// dependency-injection markers, and XML-configured components.
package facts

import "strings"

// SourceUnit describes one source file: its namespace, the external
// identifiers it references and the types it declares.
type SourceUnit struct {
	// Path is where the unit was extracted from, kept for diagnostics only.
	Path string
	// Namespace is the unit's package path. Empty means the unit could not
	// be attributed to a namespace and is skipped by the builders.
	Namespace string
	Imports   []ImportRef
	Types     []TypeDecl
}

// ImportRef is one referenced external identifier.
type ImportRef struct {
	// Target is the referenced identifier, e.g. "com.acme.billing.Invoice".
	Target string
	// Wildcard marks on-demand imports ("com.acme.billing.*"), which have no
	// derivable single target and are skipped.
	Wildcard bool
}

// TypeDecl describes one declared type together with its dependency-injection
// markers and wiring references.
type TypeDecl struct {
	// Name is the simple type name.
	Name string
	// Namespace is the declaring package; FullName joins the two.
	Namespace   string
	Annotations []Annotation
	Fields      []Field
	// ConstructorParams are the parameters of the type's constructors, in
	// declaration order.
	ConstructorParams []Param
	// SetterParams are parameters of injection-marked setters.
	SetterParams []Param
}

// FullName returns the fully-qualified type name.
func (t TypeDecl) FullName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// Annotation is a declarative marker on a type, field or method.
type Annotation struct {
	// Name is the simple annotation name without the leading "@".
	Name string
	// Value is the annotation's explicit value argument, when present. For
	// component markers this is the explicit component identifier.
	Value string
}

// Field is a declared field of a type.
type Field struct {
	Name string
	// Type is the declared field type as written, possibly unqualified.
	Type string
	// Injected marks fields carrying an injection annotation.
	Injected bool
}

// Param is a constructor or setter parameter.
type Param struct {
	Name string
	Type string
}

// BeanDefinition is a configuration-origin component fact extracted from an
// XML bean definition.
type BeanDefinition struct {
	// Path is where the definition was extracted from, for diagnostics.
	Path string
	// ID is the explicit identifier, optional.
	ID string
	// Class is the implementation type name.
	Class string
	Properties      []PropertyRef
	ConstructorArgs []ConstructorArg
}

// PropertyRef is a property element on a bean definition. Exactly one of
// Value and Ref is normally set; a literal value produces no edge.
type PropertyRef struct {
	Name  string
	Value string
	Ref   string
}

// ConstructorArg is a constructor-arg element on a bean definition.
type ConstructorArg struct {
	// Index is the declared position, -1 when not given.
	Index int
	Name  string
	Value string
	Ref   string
}

// SimpleName returns the last dot-separated segment of a possibly qualified
// identifier.
func SimpleName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// ParentNamespace strips the final path segment off a qualified reference,
// turning "com.acme.billing.Invoice" into "com.acme.billing". A reference
// without a separator has no parent and yields "".
func ParentNamespace(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[:i]
	}
	return ""
}
