package core

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "p" + strconv.Itoa(n)
	}
}

func TestRegistryRegisterAndFind(t *testing.T) {
	r := NewRegistry(sequentialIDs())
	c := NewClient("conn-1", 1)

	p, err := r.Register(c, "alice")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "alice", p.Name)

	found, ok := r.Find("conn-1")
	require.True(t, ok)
	assert.Same(t, p, found)

	byID, ok := r.Get("p1")
	require.True(t, ok)
	assert.Same(t, p, byID)
}

func TestRegistryDuplicateConnection(t *testing.T) {
	r := NewRegistry(sequentialIDs())
	c := NewClient("conn-1", 1)

	first, err := r.Register(c, "alice")
	require.NoError(t, err)

	again, err := r.Register(c, "alice")
	require.ErrorIs(t, err, ErrDuplicateConnection)
	assert.Same(t, first, again)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryUnregisterIsIdempotent(t *testing.T) {
	r := NewRegistry(sequentialIDs())
	c := NewClient("conn-1", 1)
	p, err := r.Register(c, "alice")
	require.NoError(t, err)

	r.Unregister(p.ID)
	r.Unregister(p.ID)
	r.Unregister("unknown")

	_, ok := r.Find("conn-1")
	assert.False(t, ok)
	assert.Zero(t, r.Len())

	// The connection can register again afterwards.
	_, err = r.Register(c, "alice")
	require.NoError(t, err)
}
