// Package mmfile maps input files read-only so large documents are decoded
// straight from the page cache.
package mmfile

// Mapping is a read-only view of a whole file.
type Mapping struct {
	data   []byte
	unmap  func([]byte) error
	closed bool
}

// Bytes returns the file contents. The slice is invalid after Close.
func (m *Mapping) Bytes() []byte { return m.data }

// Len returns the file size.
func (m *Mapping) Len() int { return len(m.data) }

// Close releases the mapping. Closing twice is a no-op.
func (m *Mapping) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	data := m.data
	m.data = nil
	if m.unmap == nil || len(data) == 0 {
		return nil
	}
	return m.unmap(data)
}
