package recordings

import (
	"crypto/sha256"

	"github.com/google/uuid"
)

// DeterministicID derives a stable recording id from a file name.
//
// The id is the first 128 bits of SHA-256 over the UTF-8 file name,
// rendered in canonical 8-4-4-4-12 UUID grouping. Persisted folder
// membership and transcriptions key off this value, so the hash and
// byte grouping are a fixed contract.
func DeterministicID(fileName string) uuid.UUID {
	sum := sha256.Sum256([]byte(fileName))
	id, _ := uuid.FromBytes(sum[:16])
	return id
}
