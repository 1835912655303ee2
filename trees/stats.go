package trees

// Stats summarizes the shape of a tree or forest.
type Stats struct {
	Nodes     int // total nodes
	Leaves    int // nodes without children
	Branches  int // nodes with children
	MaxDepth  int // root is depth 1
	MaxDegree int // widest node
	Scattered int // nodes in heap cells
	Piled     int // nodes in arenas
}

// Add folds the counts of other into s.
func (s *Stats) Add(other Stats) {
	s.Nodes += other.Nodes
	s.Leaves += other.Leaves
	s.Branches += other.Branches
	s.MaxDepth = max(s.MaxDepth, other.MaxDepth)
	s.MaxDegree = max(s.MaxDegree, other.MaxDegree)
	s.Scattered += other.Scattered
	s.Piled += other.Piled
}

func collectStats[T any](w *walk[T]) Stats {
	var s Stats
	for v, ok := w.get(); ok; v, ok = w.next() {
		if v.Kind == VisitEnd {
			continue
		}
		s.Nodes++
		if v.Kind == VisitLeaf {
			s.Leaves++
		} else {
			s.Branches++
		}
		s.MaxDepth = max(s.MaxDepth, len(w.path))
		s.MaxDegree = max(s.MaxDegree, v.Node.size.Degree)
		switch v.Node.Strategy() {
		case Scattered:
			s.Scattered++
		case Piled:
			s.Piled++
		}
	}
	return s
}

// StatsOf walks the subtree rooted at n.
func StatsOf[T any](n *Node[T]) Stats {
	var w walk[T]
	w.onNode(n)
	return collectStats(&w)
}

// Stats walks the tree.
func (t *Tree[T]) Stats() Stats { return StatsOf(t.node()) }

// Stats walks every tree of the forest.
func (f *Forest[T]) Stats() Stats {
	var w walk[T]
	w.onForest(f.node().head)
	return collectStats(&w)
}
