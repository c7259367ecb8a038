package intern

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternReturnsStableHandle(t *testing.T) {
	p := New()
	a := p.Intern("foo/bar.go")
	b := p.Intern("foo/bar.go")
	assert.Equal(t, a, b)
	assert.Equal(t, "foo/bar.go", p.Resolve(a))
}

func TestInternDistinctStringsGetDistinctHandles(t *testing.T) {
	p := New()
	a := p.Intern("a")
	b := p.Intern("b")
	assert.NotEqual(t, a, b)
}

func TestResolveUnknownHandleReturnsEmpty(t *testing.T) {
	p := New()
	assert.Equal(t, "", p.Resolve(Handle(999)))
	assert.Equal(t, "", p.Resolve(Handle(0)))
}

func TestInternConcurrentInsertion(t *testing.T) {
	p := New()
	var wg sync.WaitGroup
	handles := make([]Handle, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i] = p.Intern("shared-name")
		}(i)
	}
	wg.Wait()
	for i := 1; i < 100; i++ {
		assert.Equal(t, handles[0], handles[i])
	}
	assert.Equal(t, 1, p.Len())
}
