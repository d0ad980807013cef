package conversation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetCreatesAndReuses(t *testing.T) {
	t.Parallel()

	s := NewStore()

	id, h1 := s.Get("session-a")
	assert.Equal(t, "session-a", id)

	h1.Append(Turn{Role: RoleUser, Text: "hello"})

	_, h2 := s.Get("session-a")
	assert.Same(t, h1, h2)
	assert.Equal(t, 1, h2.Len())
}

func TestStore_GetMintsSessionID(t *testing.T) {
	t.Parallel()

	s := NewStore()

	id, h := s.Get("")
	require.NotEmpty(t, id)
	require.NotNil(t, h)

	// The minted ID resolves to the same history afterwards.
	_, again := s.Get(id)
	assert.Same(t, h, again)
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	t.Parallel()

	s := NewStore()
	_, a := s.Get("a")
	_, b := s.Get("b")

	a.Append(Turn{Role: RoleUser, Text: "only in a"})

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	s := NewStore()
	_, h := s.Get("a")
	h.Append(Turn{Role: RoleUser, Text: "x"})

	s.Delete("a")

	_, fresh := s.Get("a")
	assert.Equal(t, 0, fresh.Len())
}

func TestStore_ConcurrentGet(t *testing.T) {
	t.Parallel()

	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, h := s.Get("shared")
			h.Append(Turn{Role: RoleUser, Text: "x"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.Len())
}
