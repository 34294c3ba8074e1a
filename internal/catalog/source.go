package catalog

import (
	"encoding/binary"
	"io"
	mrand "math/rand/v2"
)

// SeededSource returns a deterministic randomness source for reproducible
// draws. Sources with the same seed produce the same byte stream.
func SeededSource(seed int64) io.Reader {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], uint64(seed))
	return mrand.NewChaCha8(key)
}
