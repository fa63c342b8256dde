package quotes

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltquote/voltquote/internal/shared"
)

var testClock = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

func TestSubmitForReview(t *testing.T) {
	t.Run("draft moves to pending review with an approval entry", func(t *testing.T) {
		q, err := SubmitForReview(draftQuote(), "user-1", testClock)
		require.NoError(t, err)

		assert.Equal(t, StatusPendingReview, q.Status)
		require.Len(t, q.Approvals, 1)
		assert.Equal(t, "user-1", q.Approvals[0].UserID)
		assert.Equal(t, "submit", q.Approvals[0].Action)
	})

	t.Run("only drafts can be submitted", func(t *testing.T) {
		q := draftQuote()
		q.Status = StatusSent
		_, err := SubmitForReview(q, "user-1", testClock)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidStatus))
	})
}

func TestSend(t *testing.T) {
	t.Run("draft with a named client is sent and stamped", func(t *testing.T) {
		q := draftQuote()
		q.ClientInfo.Name = "Jordan"

		sent, err := Send(q, testClock)
		require.NoError(t, err)
		assert.Equal(t, StatusSent, sent.Status)
		require.NotNil(t, sent.SentAt)
		assert.Equal(t, testClock, *sent.SentAt)
	})

	t.Run("pending review can also be sent", func(t *testing.T) {
		q := draftQuote()
		q.Status = StatusPendingReview
		q.ClientInfo.Name = "Jordan"

		sent, err := Send(q, testClock)
		require.NoError(t, err)
		assert.Equal(t, StatusSent, sent.Status)
	})

	t.Run("client name is required", func(t *testing.T) {
		_, err := Send(draftQuote(), testClock)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("a sent quote cannot be re-sent", func(t *testing.T) {
		q := draftQuote()
		q.Status = StatusSent
		_, err := Send(q, testClock)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidStatus))
	})
}

func TestMarkViewed(t *testing.T) {
	sent := draftQuote()
	sent.Status = StatusSent

	t.Run("first view transitions to viewed", func(t *testing.T) {
		q, err := MarkViewed(sent, ClientView{ViewedAt: testClock, Source: "email-link"})
		require.NoError(t, err)
		assert.Equal(t, StatusViewed, q.Status)
		require.Len(t, q.ClientViews, 1)
		assert.Equal(t, "email-link", q.ClientViews[0].Source)
	})

	t.Run("repeat views append without changing status", func(t *testing.T) {
		q, err := MarkViewed(sent, ClientView{ViewedAt: testClock})
		require.NoError(t, err)
		q, err = MarkViewed(q, ClientView{ViewedAt: testClock.Add(time.Hour)})
		require.NoError(t, err)

		assert.Equal(t, StatusViewed, q.Status)
		assert.Len(t, q.ClientViews, 2)
	})

	t.Run("views on a draft are rejected", func(t *testing.T) {
		_, err := MarkViewed(draftQuote(), ClientView{ViewedAt: testClock})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidStatus))
	})
}

func TestAcceptAndReject(t *testing.T) {
	viewed := draftQuote()
	viewed.Status = StatusViewed

	t.Run("accept stamps AcceptedAt and appends one client comment", func(t *testing.T) {
		decision := Decision{QuoteID: viewed.ID, Decision: DecisionAccepted, Timestamp: testClock}
		q, err := Accept(viewed, decision)
		require.NoError(t, err)

		assert.Equal(t, StatusAccepted, q.Status)
		require.NotNil(t, q.AcceptedAt)
		assert.Equal(t, testClock, *q.AcceptedAt)
		require.Len(t, q.Comments, 1)
		assert.Equal(t, "client", q.Comments[0].UserID)
		assert.Equal(t, "Quote accepted", q.Comments[0].Message)
		assert.False(t, q.Comments[0].IsInternal)
	})

	t.Run("decision comments carry through", func(t *testing.T) {
		decision := Decision{Decision: DecisionRejected, Timestamp: testClock, Comments: "Went with a competitor"}
		q, err := Reject(viewed, decision)
		require.NoError(t, err)

		assert.Equal(t, StatusRejected, q.Status)
		require.Len(t, q.Comments, 1)
		assert.Equal(t, "Went with a competitor", q.Comments[0].Message)
		assert.Nil(t, q.AcceptedAt)
	})

	t.Run("decisions require a sent or viewed quote", func(t *testing.T) {
		_, err := Accept(draftQuote(), Decision{Decision: DecisionAccepted, Timestamp: testClock})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidStatus))

		accepted := draftQuote()
		accepted.Status = StatusAccepted
		_, err = Reject(accepted, Decision{Decision: DecisionRejected, Timestamp: testClock})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidStatus))
	})
}

func TestExpire(t *testing.T) {
	t.Run("outstanding quote past its window expires", func(t *testing.T) {
		q := draftQuote()
		q.Status = StatusSent
		q.ValidUntil = testClock.Add(-time.Hour)

		expired, err := Expire(q, testClock)
		require.NoError(t, err)
		assert.Equal(t, StatusExpired, expired.Status)
	})

	t.Run("still-valid quote is not expired", func(t *testing.T) {
		q := draftQuote()
		q.Status = StatusSent
		q.ValidUntil = testClock.Add(time.Hour)

		_, err := Expire(q, testClock)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("accepted and draft quotes never expire", func(t *testing.T) {
		for _, status := range []Status{StatusDraft, StatusAccepted, StatusRejected, StatusExpired} {
			q := draftQuote()
			q.Status = status
			q.ValidUntil = testClock.Add(-time.Hour)

			_, err := Expire(q, testClock)
			require.Error(t, err, "status %s", status)
			assert.True(t, errors.Is(err, shared.ErrInvalidStatus))
		}
	})
}

func TestAddComment(t *testing.T) {
	q := AddComment(draftQuote(), "user-1", "checked with ops", true, testClock)
	require.Len(t, q.Comments, 1)
	assert.NotEmpty(t, q.Comments[0].ID)
	assert.True(t, q.Comments[0].IsInternal)
	assert.Equal(t, testClock, q.Comments[0].CreatedAt)
}
