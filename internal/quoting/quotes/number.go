package quotes

import (
	"fmt"
	"time"
)

// NewQuoteNumber generates a quote number in the QT<YY><MM>-<suffix> format,
// e.g. QT2506-123456. The six-digit suffix is derived from the millisecond
// clock; uniqueness is ultimately enforced by the repository's unique index.
func NewQuoteNumber(now time.Time) string {
	return fmt.Sprintf("QT%s-%06d", now.Format("0601"), now.UnixMilli()%1_000_000)
}
