package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
	now  = time.Now
)

func init() {
	// Entropy comes from a crypto-seeded PRNG; ulid.Monotonic keeps IDs
	// made within the same millisecond strictly increasing.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a ULID string: a millisecond timestamp followed by randomness,
// so generated identities sort by creation time.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(now().UTC()), mono)
	if err != nil {
		// Only possible if the clock runs backwards past the monotonic
		// window or entropy is exhausted.
		panic(err)
	}
	return id.String()
}

// Prefixed returns New() lower-cased behind prefix, e.g. "acc_01j...".
func Prefixed(prefix string) string {
	return prefix + strings.ToLower(New())
}
