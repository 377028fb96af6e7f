package extract

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"wirelens/internal/facts"
)

// xmlBeans mirrors the subset of the bean-definition XML schema the component
// builder consumes. Element names are matched by local name, so namespaced
// documents parse the same as plain ones.
type xmlBeans struct {
	XMLName xml.Name  `xml:"beans"`
	Beans   []xmlBean `xml:"bean"`
}

type xmlBean struct {
	ID              string       `xml:"id,attr"`
	Name            string       `xml:"name,attr"`
	Class           string       `xml:"class,attr"`
	Properties      []xmlSetting `xml:"property"`
	ConstructorArgs []xmlSetting `xml:"constructor-arg"`
}

type xmlSetting struct {
	Name     string  `xml:"name,attr"`
	Value    string  `xml:"value,attr"`
	Ref      string  `xml:"ref,attr"`
	Index    string  `xml:"index,attr"`
	ChildRef *xmlRef `xml:"ref"`
}

type xmlRef struct {
	Bean string `xml:"bean,attr"`
}

// ParseBeans extracts configuration-origin component facts from a bean
// definition document. Documents whose root element is not <beans> are not
// bean definitions; the returned error lets the scanner skip them quietly.
func ParseBeans(content []byte, path string) ([]facts.BeanDefinition, error) {
	var doc xmlBeans
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	out := make([]facts.BeanDefinition, 0, len(doc.Beans))
	for _, b := range doc.Beans {
		def := facts.BeanDefinition{
			Path:  path,
			ID:    b.ID,
			Class: b.Class,
		}
		// "name" is an accepted alias for "id" when id is absent.
		if def.ID == "" {
			def.ID = b.Name
		}
		for _, p := range b.Properties {
			def.Properties = append(def.Properties, facts.PropertyRef{
				Name:  p.Name,
				Value: p.Value,
				Ref:   settingRef(p),
			})
		}
		for _, a := range b.ConstructorArgs {
			def.ConstructorArgs = append(def.ConstructorArgs, facts.ConstructorArg{
				Index: settingIndex(a),
				Name:  a.Name,
				Value: a.Value,
				Ref:   settingRef(a),
			})
		}
		out = append(out, def)
	}
	return out, nil
}

// settingRef resolves the reference of a property or constructor-arg: the ref
// attribute wins, a nested <ref bean="..."/> element is the long form.
func settingRef(s xmlSetting) string {
	if s.Ref != "" {
		return s.Ref
	}
	if s.ChildRef != nil {
		return s.ChildRef.Bean
	}
	return ""
}

func settingIndex(s xmlSetting) int {
	if s.Index == "" {
		return -1
	}
	i, err := strconv.Atoi(s.Index)
	if err != nil {
		return -1
	}
	return i
}
