package fbx

import (
	"fmt"
	"io"
	"strings"
)

// Node is one record of the FBX tree: a short non-unique name, an ordered
// property list and ordered child records. Nodes are immutable once the
// decode that produced them returns.
type Node struct {
	Name       string
	Properties []*Property
	Children   []*Node
}

// FindChild returns the first child with the given name, or nil.
func (n *Node) FindChild(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (n *Node) GetChildren() []*Node {
	if n == nil {
		return nil
	}
	return n.Children
}

// Prop returns the i-th property, or nil when out of range.
func (n *Node) Prop(i int) *Property {
	if n == nil || i < 0 || i >= len(n.Properties) {
		return nil
	}
	return n.Properties[i]
}

func (n *Node) PropValue(i int) interface{} {
	if p := n.Prop(i); p != nil {
		return p.Value
	}
	return nil
}

func (n *Node) PropInt(i int) int {
	return n.Prop(i).ToInt(0)
}

func (n *Node) PropString(i int) string {
	return n.Prop(i).ToString("")
}

// Dump writes the node in an FBX-ASCII-like layout for inspection. Arrays
// longer than 16 elements are elided unless full is set.
func (n *Node) Dump(w io.Writer, d int, full bool) {
	fmt.Fprint(w, strings.Repeat("  ", d), n.Name, ":")
	var arrayReplacer = strings.NewReplacer("[", "{ a:", "]", "}", " ", ", ")
	for i, p := range n.Properties {
		if !full && p.Count() > 16 {
			fmt.Fprintf(w, " *%d { SKIPPED }", p.Count())
			continue
		}
		s := p.String()
		if p.Count() > 0 {
			s = fmt.Sprint("*", p.Count(), " ", arrayReplacer.Replace(s))
		}
		if i == 0 {
			fmt.Fprint(w, " ", s)
		} else {
			fmt.Fprint(w, ", ", s)
		}
	}
	if len(n.Children) > 0 || len(n.Properties) == 0 {
		fmt.Fprintln(w, " {")
		for _, c := range n.Children {
			c.Dump(w, d+1, full)
		}
		fmt.Fprintln(w, strings.Repeat("  ", d)+"}")
	} else {
		fmt.Fprintln(w, "")
	}
}
