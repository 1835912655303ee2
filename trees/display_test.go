package trees

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		got  func() string
		want string
	}{
		{"leaf", func() string { return New(5).String() }, "5"},
		{"scenario A", func() string { return scenarioA().String() }, "0( 1( 2 3 ) 4( 5 6 ) )"},
		{"piled", func() string { return scenarioA().DeepClone().String() }, "0( 1( 2 3 ) 4( 5 6 ) )"},
		{"deep chain", func() string { return tr(0, tr(1, tr(2, tr(3)))).String() }, "0( 1( 2( 3 ) ) )"},
		{"subtree", func() string { return scenarioA().Back().String() }, "4( 5 6 )"},
		{"empty forest", func() string { return NewForest[int]().String() }, "()"},
		{"forest", func() string { return fr(tr(1, tr(2)), tr(3)).String() }, "( 1( 2 ) 3 )"},
		{"strings", func() string {
			f := NewForest[string]()
			f.PushBack(New("a"))
			return f.IntoTree("root").String()
		}, "root( a )"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got())
		})
	}
}
