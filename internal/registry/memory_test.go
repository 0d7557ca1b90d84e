package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreatesAncestors(t *testing.T) {
	s := NewMemoryStore(map[string]string{
		`.foo\shellex\{8895b1c6-b41f-4c1c-a562-0d564250836f}`: "{X}",
	})

	k, err := s.OpenKey(".foo")
	require.NoError(t, err)
	_, err = k.DefaultValue()
	assert.ErrorIs(t, err, ErrNotExist)

	sub, err := k.OpenSubKey(`shellex\{8895B1C6-B41F-4C1C-A562-0D564250836F}`)
	require.NoError(t, err)
	v, err := sub.DefaultValue()
	require.NoError(t, err)
	assert.Equal(t, "{X}", v)
	assert.NoError(t, sub.Close())
}

func TestMemoryStoreIsCaseInsensitive(t *testing.T) {
	s := NewMemoryStore(map[string]string{".TXT": "TextFile"})

	k, err := s.OpenKey(".txt")
	require.NoError(t, err)
	v, err := k.DefaultValue()
	require.NoError(t, err)
	assert.Equal(t, "TextFile", v)
}

func TestMemoryStoreMissingKey(t *testing.T) {
	s := NewMemoryStore(nil)
	_, err := s.OpenKey(".nope")
	assert.ErrorIs(t, err, ErrNotExist)
	_, err = s.OpenKey("")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestJoinAndNormalize(t *testing.T) {
	assert.Equal(t, `a\b\c`, Join(`a\`, "", `\b`, "c"))
	assert.Equal(t, `shellex\x`, NormalizePath(`\ShellEx/X\`))
}
