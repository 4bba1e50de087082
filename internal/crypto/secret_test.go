package crypto

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretKey_DestroyZeroesBytes(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	k := NewSecretKey(raw)

	k.Destroy()

	assert.Equal(t, []byte{0, 0, 0, 0}, raw)
	assert.True(t, k.Destroyed())
	assert.Zero(t, k.Len())
	assert.ErrorIs(t, k.Use(func([]byte) error { return nil }), ErrKeyDestroyed)

	k.Destroy()
}

func TestSecretKey_NeverPrinted(t *testing.T) {
	k := NewSecretKey([]byte("super-secret-key-material-32byte"))

	assert.NotContains(t, fmt.Sprintf("%v %+v %#v %s", k, k, k, k), "super")

	_, err := json.Marshal(struct{ K *SecretKey }{k})
	require.Error(t, err)
}

func TestSecretKey_Nil(t *testing.T) {
	var k *SecretKey
	assert.True(t, k.Destroyed())
	assert.ErrorIs(t, k.Use(func([]byte) error { return nil }), ErrKeyDestroyed)
	k.Destroy()
}
