package iojson

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, Write(&out, &errOut, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWrite_marshal_error(t *testing.T) {
	var out, errOut bytes.Buffer
	err := Write(&out, &errOut, map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), `"message":"error marshaling output"`)
}
