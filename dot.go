package btreeslab

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Dot writes the tree structure in the DOT graph description language,
// one record-shaped node per arena slot, for inspection with graphviz.
func (m *Map[K, V]) Dot(w io.Writer) error {
	if _, err := fmt.Fprint(w, "digraph tree {\n\tnode [shape=record];\n"); err != nil {
		return err
	}
	if m.t.root >= 0 {
		if err := m.t.dotWriteNode(w, m.t.root); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "}")
	return err
}

// Dot writes the set's tree structure in the DOT language.
func (s *Set[K]) Dot(w io.Writer) error {
	return s.m.Dot(w)
}

func (t *tree[K, V]) dotWriteNode(w io.Writer, id int) error {
	n := t.nodes.at(id)

	if _, err := fmt.Fprintf(w, "\tn%d [label=\"", id); err != nil {
		return err
	}
	if n.parent >= 0 {
		if _, err := fmt.Fprintf(w, "(%d)|", n.parent); err != nil {
			return err
		}
	}
	if n.leaf {
		for _, it := range n.items {
			if _, err := fmt.Fprintf(w, "{%v|%v}|", it.key, it.value); err != nil {
				return err
			}
		}
	} else {
		if _, err := fmt.Fprint(w, "<c0> |"); err != nil {
			return err
		}
		for i, it := range n.items {
			if _, err := fmt.Fprintf(w, "{%v|<c%d> %v}|", it.key, i+1, it.value); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintf(w, "(%d)\"];\n", id); err != nil {
		return err
	}

	for _, childID := range n.children {
		if err := t.dotWriteNode(w, childID); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\tn%d -> n%d\n", id, childID); err != nil {
			return err
		}
	}
	return nil
}

// Fingerprint hashes the DOT rendering of the tree, giving a cheap
// structural checksum: two maps with identical node layout, ids and
// contents fingerprint equally.
func (m *Map[K, V]) Fingerprint() uint64 {
	h := xxhash.New()
	// xxhash.New never fails to write.
	_ = m.Dot(h)
	return h.Sum64()
}
