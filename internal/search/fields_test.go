package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fieldsFixture struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

func TestFieldAccessOnMap(t *testing.T) {
	m := map[string]any{"type": "User"}

	assert.True(t, HasField(m, "type"))
	assert.False(t, HasField(m, "id"))

	v, err := GetField(m, "type")
	require.NoError(t, err)
	assert.Equal(t, "User", v)

	_, err = GetField(m, "id")
	assert.ErrorIs(t, err, ErrMissingField)

	old, err := SetField(m, "type", "Company")
	require.NoError(t, err)
	assert.Equal(t, "User", old)
	assert.Equal(t, "Company", m["type"])

	old, err = SetField(m, "fresh", 1)
	require.NoError(t, err)
	assert.Nil(t, old)
}

func TestFieldAccessOnStruct(t *testing.T) {
	f := &fieldsFixture{Type: "Not", Count: 2}

	assert.True(t, HasField(f, "type"))
	assert.False(t, HasField(f, "missing"))

	v, err := GetField(f, "count")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = GetField(f, "missing")
	assert.ErrorIs(t, err, ErrMissingField)

	old, err := SetField(f, "type", "And")
	require.NoError(t, err)
	assert.Equal(t, "Not", old)
	assert.Equal(t, "And", f.Type)

	// Assigning a wrong-shaped value must fail, not silently coerce.
	_, err = SetField(f, "count", "three")
	assert.Error(t, err)
	assert.Equal(t, 2, f.Count)
}
