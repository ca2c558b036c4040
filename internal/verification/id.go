package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idSuffixLen    = 9
)

// NewAnalysisID returns analysis_<unix millis>_<9 base36 chars>.
func NewAnalysisID(now time.Time) string {
	return fmt.Sprintf("analysis_%d_%s", now.UnixMilli(), randomBase36(idSuffixLen))
}

func randomBase36(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(base36Alphabet)))
	for i := range out {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			out[i] = base36Alphabet[time.Now().UnixNano()%int64(len(base36Alphabet))]
			continue
		}
		out[i] = base36Alphabet[v.Int64()]
	}
	return string(out)
}
