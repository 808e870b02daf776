package artifact

import (
	"github.com/minio/highwayhash"
)

var key = []byte("artifact-content-hash-0123456789")

// Hash returns a stable 64-bit content hash of the artifact's TOML
// encoding. Two artifacts that Equal each other hash identically; the
// Full flag does not participate.
func Hash(a Artifact) (uint64, error) {
	data, err := EncodeTOML(a)
	if err != nil {
		return 0, err
	}
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}
