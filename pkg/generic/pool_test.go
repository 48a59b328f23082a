package generic

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolResetsOnPut(t *testing.T) {
	created := 0
	p := NewPool(func() *bytes.Buffer {
		created++
		return new(bytes.Buffer)
	}, (*bytes.Buffer).Reset)

	buf := p.Get()
	require.Equal(t, 1, created)
	buf.WriteString("swish")
	p.Put(buf)
	require.Zero(t, buf.Len())

	for i := 0; i < 10; i++ {
		b := p.Get()
		require.Zero(t, b.Len())
		p.Put(b)
	}
}
