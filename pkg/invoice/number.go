package invoice

import (
	"crypto/sha256"
	"fmt"
	"math/big"
)

// numberSpace bounds invoice numbers to eight decimal digits.
const numberSpace = 100_000_000

// AssignNumber derives the invoice number for a job from its issue date
// and the recipient's company name: the SHA-256 digest of the UTF-8 bytes
// of date followed by company, reduced modulo 10^8. The same (date,
// company) pair always yields the same number, so no counter needs to be
// persisted. Two jobs for the same company on the same date collide; that
// is a known limitation of the scheme, not a bug.
func AssignNumber(date, company string) int64 {
	sum := sha256.Sum256([]byte(date + company))
	n := new(big.Int).SetBytes(sum[:])
	return n.Mod(n, big.NewInt(numberSpace)).Int64()
}

// FormatNumber renders an invoice number zero-padded to eight digits.
func FormatNumber(n int64) string {
	return fmt.Sprintf("%08d", n)
}
