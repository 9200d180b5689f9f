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

// Generator hands out time-sortable trade identifiers.
type Generator struct {
	mu   sync.Mutex
	mono io.Reader
	now  func() time.Time
}

// NewGenerator returns a Generator stamping ids with now. A nil now uses
// time.Now.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}

	// Seed from crypto/rand; Monotonic keeps ids minted in the same
	// millisecond in increasing order.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		mono: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
		now:  now,
	}
}

// New returns a fresh ULID string.
func (g *Generator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.now().UTC()), g.mono)
	if err != nil {
		// Only fails when the clock goes backwards past the entropy window.
		panic(err)
	}
	return id.String()
}

var std = NewGenerator(nil)

// New returns a ULID string from the package generator.
func New() string {
	return std.New()
}

// Valid reports whether s is a well formed ULID.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(strings.ToUpper(s))
	return err == nil
}

// Time returns the creation time encoded in a ULID.
func Time(s string) (time.Time, bool) {
	u, err := ulid.ParseStrict(strings.ToUpper(s))
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(u.Time()), true
}
