package extract

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"wirelens/internal/facts"
)

// injectionMarkers are the annotation names that mark a field or setter as a
// wiring reference.
var injectionMarkers = map[string]bool{
	"Autowired": true,
	"Inject":    true,
	"Resource":  true,
}

// ParseJavaSource extracts a source-unit fact from one Java file. Only the
// structure the graph builders consume is extracted: the package declaration,
// imports, top-level type declarations with their annotations, fields,
// constructor parameters and injection-marked setters. Nested types are not
// descended into.
//
// Syntax errors do not abort extraction; tree-sitter produces a best-effort
// tree and whatever facts are recognizable are returned.
func ParseJavaSource(ctx context.Context, content []byte, path string) (facts.SourceUnit, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return facts.SourceUnit{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	unit := facts.SourceUnit{Path: path}
	root := tree.RootNode()
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "package_declaration":
			unit.Namespace = packageName(child, content)
		case "import_declaration":
			if imp, ok := importRef(child, content); ok {
				unit.Imports = append(unit.Imports, imp)
			}
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
			unit.Types = append(unit.Types, typeDecl(child, content, unit.Namespace))
		}
	}
	return unit, nil
}

func packageName(node *sitter.Node, content []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "scoped_identifier" || child.Type() == "identifier" {
			return child.Content(content)
		}
	}
	return ""
}

func importRef(node *sitter.Node, content []byte) (facts.ImportRef, bool) {
	var ref facts.ImportRef
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "scoped_identifier", "identifier":
			ref.Target = child.Content(content)
		case "asterisk":
			ref.Wildcard = true
		}
	}
	if ref.Target == "" {
		return facts.ImportRef{}, false
	}
	if ref.Wildcard {
		ref.Target += ".*"
	}
	return ref, true
}

func typeDecl(node *sitter.Node, content []byte, namespace string) facts.TypeDecl {
	decl := facts.TypeDecl{Namespace: namespace}
	if name := node.ChildByFieldName("name"); name != nil {
		decl.Name = name.Content(content)
	}
	decl.Annotations = annotationsOf(node, content)

	body := node.ChildByFieldName("body")
	if body == nil {
		return decl
	}
	for i := 0; i < int(body.ChildCount()); i++ {
		member := body.Child(i)
		switch member.Type() {
		case "field_declaration":
			if f, ok := fieldDecl(member, content); ok {
				decl.Fields = append(decl.Fields, f)
			}
		case "constructor_declaration":
			decl.ConstructorParams = append(decl.ConstructorParams, params(member, content)...)
		case "method_declaration":
			if isInjectedSetter(member, content) {
				decl.SetterParams = append(decl.SetterParams, params(member, content)...)
			}
		}
	}
	return decl
}

// annotationsOf collects the annotations in a node's modifiers. For
// single-argument annotations the first string literal becomes the value, so
// @Component("orders") yields {Name: Component, Value: orders}.
func annotationsOf(node *sitter.Node, content []byte) []facts.Annotation {
	modifiers := childOfType(node, "modifiers")
	if modifiers == nil {
		return nil
	}
	var annotations []facts.Annotation
	for i := 0; i < int(modifiers.ChildCount()); i++ {
		child := modifiers.Child(i)
		if child.Type() != "marker_annotation" && child.Type() != "annotation" {
			continue
		}
		a := facts.Annotation{}
		if name := child.ChildByFieldName("name"); name != nil {
			a.Name = facts.SimpleName(name.Content(content))
		}
		if args := child.ChildByFieldName("arguments"); args != nil {
			a.Value = firstStringLiteral(args, content)
		}
		if a.Name != "" {
			annotations = append(annotations, a)
		}
	}
	return annotations
}

func fieldDecl(node *sitter.Node, content []byte) (facts.Field, bool) {
	f := facts.Field{}
	if typ := node.ChildByFieldName("type"); typ != nil {
		f.Type = bareTypeName(typ.Content(content))
	}
	if declarator := childOfType(node, "variable_declarator"); declarator != nil {
		if name := declarator.ChildByFieldName("name"); name != nil {
			f.Name = name.Content(content)
		}
	}
	for _, a := range annotationsOf(node, content) {
		if injectionMarkers[a.Name] {
			f.Injected = true
		}
	}
	if f.Name == "" && f.Type == "" {
		return facts.Field{}, false
	}
	return f, true
}

func isInjectedSetter(node *sitter.Node, content []byte) bool {
	name := node.ChildByFieldName("name")
	if name == nil || !strings.HasPrefix(name.Content(content), "set") {
		return false
	}
	for _, a := range annotationsOf(node, content) {
		if injectionMarkers[a.Name] {
			return true
		}
	}
	return false
}

func params(node *sitter.Node, content []byte) []facts.Param {
	parameters := node.ChildByFieldName("parameters")
	if parameters == nil {
		return nil
	}
	var out []facts.Param
	for i := 0; i < int(parameters.ChildCount()); i++ {
		child := parameters.Child(i)
		if child.Type() != "formal_parameter" {
			continue
		}
		p := facts.Param{}
		if typ := child.ChildByFieldName("type"); typ != nil {
			p.Type = bareTypeName(typ.Content(content))
		}
		if name := child.ChildByFieldName("name"); name != nil {
			p.Name = name.Content(content)
		}
		if p.Type != "" {
			out = append(out, p)
		}
	}
	return out
}

func childOfType(node *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == typ {
			return child
		}
	}
	return nil
}

func firstStringLiteral(node *sitter.Node, content []byte) string {
	if node.Type() == "string_literal" {
		return strings.Trim(node.Content(content), `"`)
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if v := firstStringLiteral(node.Child(i), content); v != "" {
			return v
		}
	}
	return ""
}

// bareTypeName strips generic arguments and array markers off a declared
// type, so "List<OrderLine>" keeps its raw spelling out of the wiring
// resolution while "OrderRepository[]" degrades to "OrderRepository".
func bareTypeName(s string) string {
	if i := strings.IndexByte(s, '<'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSuffix(strings.TrimSpace(s), "[]")
}
