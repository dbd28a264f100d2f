package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)
	assert.True(t, v.schema.Exists())
}

func TestValidatorValidate(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate([]byte(outputJSON)))

	err = v.Validate([]byte(`{"version":"three","applicationId":"a","variantName":"r","elements":[]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema mismatch")

	err = v.Validate([]byte(`{"version":1,"applicationId":"a","variantName":"r"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema mismatch")

	err = v.Validate([]byte(`{"version":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing JSON")
}
