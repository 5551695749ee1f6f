package fbx

import "io"

// Document is a decoded binary FBX file: the format version from the
// header and the ordered top-level nodes. The caller owns it exclusively
// once decoding completes.
type Document struct {
	Version uint32
	Nodes   []*Node
}

// FindNode returns the first top-level node with the given name, or nil.
func (doc *Document) FindNode(name string) *Node {
	for _, n := range doc.Nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Creator returns the generator string recorded in the file, if any.
func (doc *Document) Creator() string {
	return doc.FindNode("Creator").PropString(0)
}

// CreationTime returns the creation timestamp recorded in the file, if any.
func (doc *Document) CreationTime() string {
	return doc.FindNode("CreationTime").PropString(0)
}

// Dump writes the whole tree in an FBX-ASCII-like layout.
func (doc *Document) Dump(w io.Writer, full bool) {
	for _, n := range doc.Nodes {
		n.Dump(w, 0, full)
	}
}
