package crypto

import "github.com/MKhiriev/osteo-vault/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService owns every cryptographic primitive of the vault. It knows
// nothing about storage or lock state; it turns credentials into keys and
// seals or opens bytes with them.
//
// Scheme:
//
//	salt   = GenerateSalt()                       (once, on configure)
//	key    = DeriveKey(credential, salt)          (Argon2id)
//	canary = Seal(key, CanaryPlaintext, "canary") (stored in vault meta)
//	entry  = Seal(key, record, entityType/id)     (one per record)
type KeyChainService interface {
	// GenerateSalt returns 16 random bytes. The salt is not secret.
	GenerateSalt() ([]byte, error)

	// DeriveKey enforces the credential policy, then derives a 256-bit key
	// with the service's default Argon2id parameters.
	DeriveKey(credential string, salt []byte) (*SecretKey, error)

	// DeriveKeyWithParams is DeriveKey with explicit parameters, used when
	// the vault or an archive recorded different ones.
	DeriveKeyWithParams(credential string, salt []byte, params models.KDFParams) (*SecretKey, error)

	// Params returns the default Argon2id parameters recorded in new vaults.
	Params() models.KDFParams

	// Seal encrypts plaintext with AES-256-GCM under a fresh random nonce,
	// authenticating aad alongside it.
	Seal(key *SecretKey, plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Open decrypts and authenticates. Any mismatch of key, nonce, aad or
	// ciphertext yields ErrDecrypt.
	Open(key *SecretKey, ciphertext, nonce, aad []byte) ([]byte, error)
}
