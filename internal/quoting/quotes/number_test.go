package quotes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewQuoteNumber(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 30, 45, 0, time.UTC)
	number := NewQuoteNumber(now)

	assert.Regexp(t, `^QT2601-\d{6}$`, number)

	other := NewQuoteNumber(now.Add(time.Millisecond))
	assert.NotEqual(t, number, other)
}
