package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArrayValue(t *testing.T) {
	v, err := StringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringArray{"eggs", "milk"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["eggs","milk"]`, v.(string))
}

func TestStringArrayScan(t *testing.T) {
	var tags StringArray

	require.NoError(t, tags.Scan(`["eggs","milk"]`))
	assert.Equal(t, StringArray{"eggs", "milk"}, tags)

	require.NoError(t, tags.Scan([]byte(" null ")))
	assert.Empty(t, tags)

	require.NoError(t, tags.Scan(nil))
	assert.Empty(t, tags)
}

func TestStringArrayScanRejectsNonJSON(t *testing.T) {
	var tags StringArray
	assert.Error(t, tags.Scan("eggs, milk"))
	assert.Error(t, tags.Scan(42))
}
