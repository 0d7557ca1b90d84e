package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ err error }

func (f failingStore) OpenKey(string) (Key, error) { return nil, f.err }

func TestChainFirstDefaultWins(t *testing.T) {
	user := NewMemoryStore(map[string]string{`.md`: "userclass"})
	defaults := NewMemoryStore(map[string]string{
		`.md`:                   "markdownfile",
		`.md\shellex\{handler}`: "{A}",
	})
	c := Chain(user, nil, defaults)

	k, err := c.OpenKey(".md")
	require.NoError(t, err)
	defer k.Close()

	v, err := k.DefaultValue()
	require.NoError(t, err)
	assert.Equal(t, "userclass", v)

	sub, err := k.OpenSubKey(`shellex\{handler}`)
	require.NoError(t, err)
	v, err = sub.DefaultValue()
	require.NoError(t, err)
	assert.Equal(t, "{A}", v)
}

func TestChainMissingKey(t *testing.T) {
	c := Chain(NewMemoryStore(nil), NewMemoryStore(map[string]string{".a": "x"}))

	_, err := c.OpenKey(".b")
	assert.ErrorIs(t, err, ErrNotExist)

	k, err := c.OpenKey(".a")
	require.NoError(t, err)
	sub, err := k.OpenSubKey("missing")
	assert.Nil(t, sub)
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestChainReportsStoreFailures(t *testing.T) {
	boom := errors.New("access denied")
	c := Chain(failingStore{boom}, NewMemoryStore(nil))

	_, err := c.OpenKey(".a")
	assert.ErrorIs(t, err, boom)

	c = Chain(failingStore{boom}, NewMemoryStore(map[string]string{".a": "x"}))
	k, err := c.OpenKey(".a")
	require.NoError(t, err)
	v, err := k.DefaultValue()
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}
