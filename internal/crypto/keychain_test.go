package crypto

import (
	"bytes"
	"testing"

	"github.com/MKhiriev/osteo-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = models.KDFParams{Time: 1, Memory: 64, Threads: 1, KeyLen: KeySize}

func newTestService() KeyChainService {
	return NewKeyChainServiceWithParams(testParams)
}

func TestGenerateSalt_LengthAndRandomness(t *testing.T) {
	svc := newTestService()

	s1, err := svc.GenerateSalt()
	require.NoError(t, err)
	s2, err := svc.GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, s1, SaltSize)
	assert.Len(t, s2, SaltSize)
	assert.False(t, bytes.Equal(s1, s2))
}

func TestDeriveKey_Deterministic(t *testing.T) {
	svc := newTestService()
	salt := bytes.Repeat([]byte{0xAB}, SaltSize)

	k1, err := svc.DeriveKey("1234", salt)
	require.NoError(t, err)
	k2, err := svc.DeriveKey("1234", salt)
	require.NoError(t, err)

	assert.Equal(t, KeySize, k1.Len())
	require.NoError(t, k1.Use(func(a []byte) error {
		return k2.Use(func(b []byte) error {
			assert.Equal(t, a, b)
			return nil
		})
	}))
}

func TestDeriveKey_DifferentInputsDiffer(t *testing.T) {
	svc := newTestService()
	salt1 := bytes.Repeat([]byte{0x01}, SaltSize)
	salt2 := bytes.Repeat([]byte{0x02}, SaltSize)

	base, err := svc.DeriveKey("correct horse", salt1)
	require.NoError(t, err)
	otherSalt, err := svc.DeriveKey("correct horse", salt2)
	require.NoError(t, err)
	otherPass, err := svc.DeriveKey("correct horsf", salt1)
	require.NoError(t, err)

	ct, nonce, err := svc.Seal(base, []byte("x"), nil)
	require.NoError(t, err)

	_, err = svc.Open(otherSalt, ct, nonce, nil)
	assert.ErrorIs(t, err, ErrDecrypt)
	_, err = svc.Open(otherPass, ct, nonce, nil)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestDeriveKey_WeakCredential(t *testing.T) {
	svc := newTestService()
	salt := bytes.Repeat([]byte{0x01}, SaltSize)

	for _, c := range []string{"", "12", "abc", "12345678901"[:3]} {
		_, err := svc.DeriveKey(c, salt)
		assert.ErrorIs(t, err, ErrWeakCredential, c)
	}
}

func TestDeriveKey_DerivationErrors(t *testing.T) {
	svc := newTestService()

	_, err := svc.DeriveKey("1234", nil)
	assert.ErrorIs(t, err, ErrDerivation)

	_, err = svc.DeriveKeyWithParams("1234", make([]byte, SaltSize), models.KDFParams{Time: 0, Memory: 64, Threads: 1, KeyLen: KeySize})
	assert.ErrorIs(t, err, ErrDerivation)

	_, err = svc.DeriveKeyWithParams("1234", make([]byte, SaltSize), models.KDFParams{Time: 1, Memory: 64, Threads: 1, KeyLen: 16})
	assert.ErrorIs(t, err, ErrDerivation)
}

func TestValidateParams(t *testing.T) {
	assert.NoError(t, ValidateParams(DefaultKDFParams))
	assert.NoError(t, ValidateParams(testParams))
	assert.ErrorIs(t, ValidateParams(models.KDFParams{Time: 1, Memory: 4, Threads: 1, KeyLen: KeySize}), ErrDerivation)
	assert.ErrorIs(t, ValidateParams(models.KDFParams{Time: 1, Memory: 64, Threads: 0, KeyLen: KeySize}), ErrDerivation)
	assert.ErrorIs(t, ValidateParams(models.KDFParams{Time: 1, Memory: 8 << 20, Threads: 1, KeyLen: KeySize}), ErrDerivation)
	assert.ErrorIs(t, ValidateParams(models.KDFParams{Time: 1 << 31, Memory: 64, Threads: 1, KeyLen: KeySize}), ErrDerivation)
	assert.ErrorIs(t, ValidateParams(models.KDFParams{Time: 1, Memory: 4 << 20, Threads: 1, KeyLen: KeySize}), ErrDerivation)
	assert.ErrorIs(t, ValidateParams(models.KDFParams{Time: 1, Memory: 1024, Threads: 17, KeyLen: KeySize}), ErrDerivation)
	assert.NoError(t, ValidateParams(models.KDFParams{Time: MaxKDFTime, Memory: MaxKDFMemory, Threads: MaxKDFThreads, KeyLen: KeySize}))
}

func TestSealOpen_RoundTrip(t *testing.T) {
	svc := newTestService()
	key, err := svc.DeriveKey("1234", bytes.Repeat([]byte{7}, SaltSize))
	require.NoError(t, err)

	aad := models.EntryAAD(models.Patients, "p1")
	ct, nonce, err := svc.Seal(key, []byte(`{"name":"A"}`), aad)
	require.NoError(t, err)
	assert.Len(t, nonce, 12)
	assert.NotContains(t, string(ct), "name")

	pt, err := svc.Open(key, ct, nonce, aad)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"A"}`, string(pt))
}

func TestSeal_FreshNonce(t *testing.T) {
	svc := newTestService()
	key, err := svc.DeriveKey("1234", bytes.Repeat([]byte{7}, SaltSize))
	require.NoError(t, err)

	ct1, n1, err := svc.Seal(key, []byte("same"), nil)
	require.NoError(t, err)
	ct2, n2, err := svc.Seal(key, []byte("same"), nil)
	require.NoError(t, err)

	assert.NotEqual(t, n1, n2)
	assert.NotEqual(t, ct1, ct2)
}

func TestOpen_TamperDetection(t *testing.T) {
	svc := newTestService()
	key, err := svc.DeriveKey("1234", bytes.Repeat([]byte{7}, SaltSize))
	require.NoError(t, err)

	aad := models.EntryAAD(models.Patients, "p1")
	ct, nonce, err := svc.Seal(key, []byte("payload"), aad)
	require.NoError(t, err)

	flipped := bytes.Clone(ct)
	flipped[0] ^= 0x01
	_, err = svc.Open(key, flipped, nonce, aad)
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = svc.Open(key, ct, nonce, models.EntryAAD(models.Patients, "p2"))
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = svc.Open(key, ct, nonce[:4], aad)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestSealOpen_DestroyedKey(t *testing.T) {
	svc := newTestService()
	key, err := svc.DeriveKey("1234", bytes.Repeat([]byte{7}, SaltSize))
	require.NoError(t, err)
	ct, nonce, err := svc.Seal(key, []byte("x"), nil)
	require.NoError(t, err)

	key.Destroy()

	_, _, err = svc.Seal(key, []byte("x"), nil)
	assert.ErrorIs(t, err, ErrKeyDestroyed)
	_, err = svc.Open(key, ct, nonce, nil)
	assert.ErrorIs(t, err, ErrKeyDestroyed)
}
