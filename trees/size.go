package trees

// Size is the bookkeeping carried by every node.
type Size struct {
	Degree      int // number of direct children
	Descendants int // number of nodes strictly below; for a forest, all nodes it owns
}

// Add returns the field-wise sum of s and rhs.
func (s Size) Add(rhs Size) Size {
	return Size{Degree: s.Degree + rhs.Degree, Descendants: s.Descendants + rhs.Descendants}
}

// Sub returns the field-wise difference of s and rhs.
func (s Size) Sub(rhs Size) Size {
	return Size{Degree: s.Degree - rhs.Degree, Descendants: s.Descendants - rhs.Descendants}
}
