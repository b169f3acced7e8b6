package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Cache memoizes boolean grounding decisions
type Cache interface {
	Get(key string) (bool, bool)
	Set(key string, value bool)
	Len() int
}

// GroundingKey generates a cache key from a statement identity and the
// parameters of the decision. Every parameter is part of the key so a
// statement queried under a different cutoff never reuses an old answer.
func GroundingKey(statementID, ontology string, cutoff float64) string {
	h := sha256.New()
	h.Write([]byte(statementID))
	h.Write([]byte{0})
	h.Write([]byte(ontology))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatFloat(cutoff, 'g', -1, 64)))
	return "causalia:v1:" + hex.EncodeToString(h.Sum(nil))
}

// Noop never stores anything
type Noop struct{}

func (Noop) Get(string) (bool, bool) { return false, false }
func (Noop) Set(string, bool)        {}
func (Noop) Len() int                { return 0 }
