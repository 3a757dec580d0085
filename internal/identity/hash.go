package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Canonical upper-cases s and drops every character outside [A-Z0-9].
func Canonical(s string) string {
	s = strings.ToUpper(s)

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}

	return b.String()
}

// TransactionHash is the 64-bit FNV-1a identity of a transaction, as 16 hex chars.
func TransactionHash(userID string, date time.Time, canonical string, signedAmount decimal.Decimal) string {
	return fnvHex(userID + "|" + date.Format(dateLayout) + "|" + canonical + "|" + signedAmount.StringFixed(2))
}

// Rehash applies the identity hash n more times to id.
func Rehash(id string, n int) string {
	for i := 0; i < n; i++ {
		id = fnvHex(id)
	}
	return id
}

// InstallmentGroupID identifies all installments of one purchase.
func InstallmentGroupID(canonicalBase string, absAmount decimal.Decimal, total int, userID string) string {
	sum := sha256.Sum256([]byte(canonicalBase + "|" + absAmount.StringFixed(2) + "|" + strconv.Itoa(total) + "|" + userID))
	return hex.EncodeToString(sum[:])[:16]
}

func duplicateKey(date time.Time, canonical string, signedAmount decimal.Decimal) string {
	return date.Format(dateLayout) + "|" + canonical + "|" + signedAmount.StringFixed(2)
}

func fnvHex(s string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%016x", h.Sum64())
}
