package service

import (
	"log"

	"github.com/google/uuid"
	"github.com/shinyyama/commerce-seed/internal/metrics"
)

type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SeededUUIDGenerator produces v4 UUIDs from its own random source so that a
// seeded run yields the same identifiers every time.
type SeededUUIDGenerator struct {
	r Rand
}

func NewSeededUUIDGenerator(seed int64) *SeededUUIDGenerator {
	return &SeededUUIDGenerator{r: NewRand(seed + 1)}
}

func (g *SeededUUIDGenerator) NewID() string {
	id, err := uuid.NewRandomFromReader(byteReader{g.r})
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

type byteReader struct {
	r Rand
}

func (b byteReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(b.r.IntN(256))
	}
	return len(p), nil
}

// Runtime carries what every pass needs besides its repositories.
type Runtime struct {
	Rand          Rand
	Clock         Clock
	IDs           IDGenerator
	Logger        *log.Logger
	Metrics       *metrics.Recorder
	ProgressEvery int
}

func (rt Runtime) withDefaults() Runtime {
	if rt.Rand == nil {
		rt.Rand = NewRand(0)
	}
	if rt.Clock == nil {
		rt.Clock = SystemClock{}
	}
	if rt.IDs == nil {
		rt.IDs = UUIDGenerator{}
	}
	if rt.Logger == nil {
		rt.Logger = log.Default()
	}
	if rt.ProgressEvery <= 0 {
		rt.ProgressEvery = 500
	}
	return rt
}

func (rt Runtime) progress(i int, what string) {
	if (i+1)%rt.ProgressEvery == 0 {
		rt.Logger.Printf("processed %d %s...", i+1, what)
	}
}
