//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package mmfile

import "os"

// Open reads the entire file where mmap is not available.
func Open(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data}, nil
}
