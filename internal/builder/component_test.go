package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wirelens/internal/facts"
)

func annotated(name, namespace, marker string) facts.TypeDecl {
	return facts.TypeDecl{
		Name:        name,
		Namespace:   namespace,
		Annotations: []facts.Annotation{{Name: marker}},
	}
}

func TestDeclarativeIDDerivation(t *testing.T) {
	tests := []struct {
		name     string
		decl     facts.TypeDecl
		expected string
		ok       bool
	}{
		{
			name:     "lowercases first letter",
			decl:     annotated("OrderService", "com.acme", "Service"),
			expected: "orderService",
			ok:       true,
		},
		{
			name: "explicit value wins",
			decl: facts.TypeDecl{
				Name:        "OrderService",
				Namespace:   "com.acme",
				Annotations: []facts.Annotation{{Name: "Component", Value: "orders"}},
			},
			expected: "orders",
			ok:       true,
		},
		{
			name: "unmarked type is not a component",
			decl: facts.TypeDecl{Name: "Plain", Namespace: "com.acme"},
			ok:   false,
		},
		{
			name:     "named marker counts",
			decl:     annotated("CacheWarmer", "com.acme", "Named"),
			expected: "cacheWarmer",
			ok:       true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := DeclarativeID(tt.decl)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, id)
			}
		})
	}
}

func TestDeclarativeIDDeterministic(t *testing.T) {
	decl := annotated("OrderService", "com.acme", "Service")
	first, _ := DeclarativeID(decl)
	second, _ := DeclarativeID(decl)
	assert.Equal(t, first, second)
}

func TestConfigIDDerivation(t *testing.T) {
	assert.Equal(t, "orders", ConfigID(facts.BeanDefinition{ID: "orders", Class: "com.acme.OrderService"}))
	assert.Equal(t, "com.acme.OrderService", ConfigID(facts.BeanDefinition{Class: "com.acme.OrderService"}))
}

func TestFieldInjectionWiring(t *testing.T) {
	c := NewComponents()
	service := annotated("OrderService", "com.acme", "Service")
	repo := annotated("OrderRepository", "com.acme", "Repository")
	service.Fields = []facts.Field{
		{Name: "repository", Type: "OrderRepository", Injected: true},
		{Name: "counter", Type: "int", Injected: true},
		{Name: "plain", Type: "OrderRepository"}, // not injection-marked
	}
	require.True(t, c.AddType(service))
	require.True(t, c.AddType(repo))
	c.Wire()

	g := c.Graph()
	assert.True(t, g.HasEdge("orderService", "orderRepository"))
	assert.Equal(t, 1, g.EdgeCount())
}

func TestConstructorAndSetterWiring(t *testing.T) {
	c := NewComponents()
	service := annotated("BillingService", "com.acme", "Service")
	service.ConstructorParams = []facts.Param{{Name: "gateway", Type: "com.acme.PaymentGateway"}}
	service.SetterParams = []facts.Param{{Name: "audit", Type: "AuditLog"}}
	c.AddType(service)
	c.AddType(annotated("PaymentGateway", "com.acme", "Component"))
	c.AddType(annotated("AuditLog", "com.acme", "Component"))
	c.Wire()

	g := c.Graph()
	assert.True(t, g.HasEdge("billingService", "paymentGateway"))
	assert.True(t, g.HasEdge("billingService", "auditLog"))
}

func TestBeanWiring(t *testing.T) {
	c := NewComponents()
	c.AddBean(facts.BeanDefinition{
		ID:    "orderService",
		Class: "com.acme.OrderService",
		Properties: []facts.PropertyRef{
			{Name: "repository", Ref: "orderRepository"},
			{Name: "batchSize", Value: "100"}, // literal, no edge
		},
		ConstructorArgs: []facts.ConstructorArg{
			{Index: 0, Ref: "paymentGateway"},
			{Index: 1, Value: "EUR"},
		},
	})
	c.AddBean(facts.BeanDefinition{ID: "orderRepository", Class: "com.acme.OrderRepository"})
	c.Wire()

	g := c.Graph()
	assert.True(t, g.HasEdge("orderService", "orderRepository"))
	assert.True(t, g.HasEdge("orderService", "paymentGateway"))
	assert.Equal(t, 2, g.EdgeCount())

	// paymentGateway was referenced but never defined: legitimate placeholder.
	require.NotNil(t, g.Node("paymentGateway"))
	_, defined := c.Info("paymentGateway")
	assert.False(t, defined)
}

func TestUnresolvableReferenceDropped(t *testing.T) {
	c := NewComponents()
	service := annotated("OrderService", "com.acme", "Service")
	service.Fields = []facts.Field{{Name: "mapper", Type: "ObjectMapper", Injected: true}}
	c.AddType(service)
	c.Wire()

	assert.Equal(t, 0, c.Graph().EdgeCount())
}

func TestSelfDependencyYieldsSelfLoop(t *testing.T) {
	c := NewComponents()
	c.AddBean(facts.BeanDefinition{
		ID:         "recursive",
		Class:      "com.acme.Recursive",
		Properties: []facts.PropertyRef{{Name: "self", Ref: "recursive"}},
	})
	c.Wire()

	g := c.Graph()
	assert.True(t, g.HasEdge("recursive", "recursive"))

	cycles := g.DetectCycles()
	require.Len(t, cycles, 1)
	assert.Len(t, cycles[0], 1)
}

func TestMalformedBeanSkipped(t *testing.T) {
	c := NewComponents()
	c.AddBean(facts.BeanDefinition{Path: "beans.xml"})
	c.Wire()

	assert.Equal(t, 0, c.Graph().NodeCount())
	assert.Empty(t, c.Infos())
}

func TestMixedOriginsShareOneGraph(t *testing.T) {
	c := NewComponents()
	service := annotated("OrderService", "com.acme", "Service")
	service.Fields = []facts.Field{{Name: "legacy", Type: "LegacyGateway", Injected: true}}
	c.AddType(service)
	c.AddBean(facts.BeanDefinition{ID: "legacyGateway", Class: "com.acme.LegacyGateway"})
	c.Wire()

	g := c.Graph()
	assert.True(t, g.HasEdge("orderService", "legacyGateway"))

	svc, ok := c.Info("orderService")
	require.True(t, ok)
	assert.Equal(t, "DECLARATIVE", svc.Origin)
	assert.Equal(t, "com.acme.OrderService", svc.Implementation)

	legacy, ok := c.Info("legacyGateway")
	require.True(t, ok)
	assert.Equal(t, "CONFIG", legacy.Origin)
}

func TestDuplicateIdentifierKeepsFirstRegistration(t *testing.T) {
	c := NewComponents()
	c.AddType(annotated("OrderService", "com.acme", "Service")) // id orderService
	c.AddBean(facts.BeanDefinition{ID: "orderService", Class: "com.legacy.LegacyOrderService"})

	consumer := annotated("Checkout", "com.acme", "Component")
	consumer.Fields = []facts.Field{
		{Name: "orders", Type: "OrderService", Injected: true},
		{Name: "legacy", Type: "LegacyOrderService", Injected: true},
	}
	c.AddType(consumer)
	c.Wire()

	// The side table keeps the first declaration in full.
	info, ok := c.Info("orderService")
	require.True(t, ok)
	assert.Equal(t, "DECLARATIVE", info.Origin)
	assert.Equal(t, "com.acme.OrderService", info.Implementation)

	g := c.Graph()
	// The recorded implementation still resolves to the id.
	assert.True(t, g.HasEdge("checkout", "orderService"))
	// The losing declaration's class must not: its lookup entries were never
	// installed, so the reference resolves to no component and is dropped.
	assert.Equal(t, 1, g.EdgeCount())
}

func TestWireIdempotentAndOrderIndependent(t *testing.T) {
	build := func(reverse bool) *Components {
		c := NewComponents()
		service := annotated("OrderService", "com.acme", "Service")
		service.Fields = []facts.Field{{Name: "repo", Type: "OrderRepository", Injected: true}}
		repo := annotated("OrderRepository", "com.acme", "Repository")
		if reverse {
			c.AddType(repo)
			c.AddType(service)
		} else {
			c.AddType(service)
			c.AddType(repo)
		}
		c.Wire()
		c.Wire() // second call is a no-op
		return c
	}

	forward := build(false)
	backward := build(true)
	assert.Equal(t, forward.Graph().Edges(), backward.Graph().Edges())
	assert.Equal(t, forward.Graph().Nodes(), backward.Graph().Nodes())
	assert.Equal(t, forward.Infos(), backward.Infos())
}
