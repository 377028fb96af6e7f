package builder

import (
	"sort"
	"unicode"

	"wirelens/internal/facts"
	"wirelens/internal/graph"
	"wirelens/pkg/logging"
)

// Origin tags where a component was declared.
type Origin int

const (
	// OriginConfig marks components declared in XML configuration.
	OriginConfig Origin = iota
	// OriginDeclarative marks components declared with a marker annotation
	// on their implementation type.
	OriginDeclarative
)

// String makes Origin satisfy the fmt.Stringer interface.
func (o Origin) String() string {
	if o == OriginDeclarative {
		return "DECLARATIVE"
	}
	return "CONFIG"
}

// ComponentInfo is the metadata side-table record for one component node.
// The table is owned by the builder and scoped to a single analysis run.
type ComponentInfo struct {
	ID             string `json:"id"`
	Origin         string `json:"origin"`
	Implementation string `json:"implementation"`
}

// componentMarkers are the annotation names that declare a type as a managed
// component. The annotation's explicit value, when present, is the component
// identifier.
var componentMarkers = map[string]bool{
	"Component":      true,
	"Service":        true,
	"Repository":     true,
	"Controller":     true,
	"RestController": true,
	"Configuration":  true,
	"Named":          true,
	"ManagedBean":    true,
}

type declaredComponent struct {
	id   string
	decl facts.TypeDecl
}

// Components builds the component-wiring graph from declarative and
// configuration facts. Registration and wiring are two phases: all components
// must be recorded before Wire so type-based references can resolve to
// derived identifiers regardless of input order.
type Components struct {
	g        *graph.Graph
	info     map[string]ComponentInfo
	byImpl   map[string]string // implementation FQN -> component id
	bySimple map[string]string // implementation simple name -> component id
	declared []declaredComponent
	beans    []facts.BeanDefinition
	wired    bool
}

// NewComponents returns an empty component-graph builder.
func NewComponents() *Components {
	return &Components{
		g:        graph.New(),
		info:     make(map[string]ComponentInfo),
		byImpl:   make(map[string]string),
		bySimple: make(map[string]string),
	}
}

// DeclarativeID derives the component identifier for an annotation-marked
// type: the marker's explicit value when given, otherwise the implementation
// type's simple name with its first letter lowercased. The derivation is a
// pure function of the fact, so the same fact always yields the same id.
func DeclarativeID(t facts.TypeDecl) (string, bool) {
	for _, a := range t.Annotations {
		if !componentMarkers[a.Name] {
			continue
		}
		if a.Value != "" {
			return a.Value, true
		}
		return lowerFirst(t.Name), true
	}
	return "", false
}

// ConfigID derives the component identifier for an XML bean definition: the
// explicit id when given, otherwise the implementation class name.
func ConfigID(b facts.BeanDefinition) string {
	if b.ID != "" {
		return b.ID
	}
	return b.Class
}

// AddType records a declared type. Types without a component marker are
// ignored; marked types are registered as declarative components and their
// wiring references retained for Wire. Reports whether the type was a
// component.
func (c *Components) AddType(t facts.TypeDecl) bool {
	id, ok := DeclarativeID(t)
	if !ok {
		return false
	}
	if id == "" {
		logging.Warn("Builder", "skipping component %s: empty derived identifier", t.FullName())
		return false
	}
	c.register(id, OriginDeclarative, t.FullName())
	c.declared = append(c.declared, declaredComponent{id: id, decl: t})
	return true
}

// AddBean records a configuration-origin component. Definitions missing both
// an identifier and an implementation class are malformed and skipped with a
// diagnostic.
func (c *Components) AddBean(b facts.BeanDefinition) {
	id := ConfigID(b)
	if id == "" {
		logging.Warn("Builder", "skipping bean in %s: no identifier or class", b.Path)
		return
	}
	c.register(id, OriginConfig, b.Class)
	c.beans = append(c.beans, b)
}

// register records a component. The first registration of an identifier wins
// entirely: a later declaration colliding on the same id updates neither the
// side table nor the type-resolution lookups, so a resolved reference always
// lands on the component whose metadata is recorded for that id.
func (c *Components) register(id string, origin Origin, implementation string) {
	c.g.AddNode(id, graph.KindComponent)
	if existing, exists := c.info[id]; exists {
		if implementation != "" && implementation != existing.Implementation {
			logging.Warn("Builder", "component id %q already registered for %s, ignoring declaration as %s",
				id, existing.Implementation, implementation)
		}
		return
	}
	c.info[id] = ComponentInfo{
		ID:             id,
		Origin:         origin.String(),
		Implementation: implementation,
	}
	if implementation != "" {
		c.byImpl[implementation] = id
		c.bySimple[facts.SimpleName(implementation)] = id
	}
}

// Wire resolves the retained wiring references into edges. References that
// resolve to no known component identifier are dropped, not errors. Wire is
// idempotent.
func (c *Components) Wire() {
	if c.wired {
		return
	}
	c.wired = true

	sort.Slice(c.declared, func(i, j int) bool { return c.declared[i].id < c.declared[j].id })
	for _, d := range c.declared {
		for _, f := range d.decl.Fields {
			if !f.Injected {
				continue
			}
			c.wireByType(d.id, f.Type)
		}
		for _, p := range d.decl.ConstructorParams {
			c.wireByType(d.id, p.Type)
		}
		for _, p := range d.decl.SetterParams {
			c.wireByType(d.id, p.Type)
		}
	}

	sort.Slice(c.beans, func(i, j int) bool { return ConfigID(c.beans[i]) < ConfigID(c.beans[j]) })
	for _, b := range c.beans {
		id := ConfigID(b)
		for _, p := range b.Properties {
			// Literal values never produce an edge.
			if p.Ref != "" {
				c.g.AddEdge(id, p.Ref)
			}
		}
		for _, a := range b.ConstructorArgs {
			if a.Ref != "" {
				c.g.AddEdge(id, a.Ref)
			}
		}
	}
}

// wireByType adds an edge from a component to whatever component the given
// declared type resolves to. Resolution tries the fully-qualified
// implementation name, the simple implementation name and finally the
// naming-convention identifier derived from the type's simple name. A type
// that resolves to nothing (primitives, framework types, externals) produces
// no edge.
func (c *Components) wireByType(from, typeName string) {
	target := c.resolveType(typeName)
	if target == "" {
		logging.Debug("Builder", "reference to %q from %q resolves to no component, dropped", typeName, from)
		return
	}
	c.g.AddEdge(from, target)
}

func (c *Components) resolveType(typeName string) string {
	if typeName == "" {
		return ""
	}
	if id, ok := c.byImpl[typeName]; ok {
		return id
	}
	if id, ok := c.bySimple[typeName]; ok {
		return id
	}
	derived := lowerFirst(facts.SimpleName(typeName))
	if _, ok := c.info[derived]; ok {
		return derived
	}
	return ""
}

// Graph returns the component graph. Call Wire first; the graph only holds
// registration nodes until then.
func (c *Components) Graph() *graph.Graph {
	return c.g
}

// Info returns the side-table record for a component node, if any. Placeholder
// nodes created as edge targets of explicit references have no record.
func (c *Components) Info(id string) (ComponentInfo, bool) {
	ci, ok := c.info[id]
	return ci, ok
}

// Infos returns all side-table records sorted by component id.
func (c *Components) Infos() []ComponentInfo {
	out := make([]ComponentInfo, 0, len(c.info))
	for _, ci := range c.info {
		out = append(out, ci)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
