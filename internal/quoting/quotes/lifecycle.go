package quotes

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voltquote/voltquote/internal/shared"
)

// SubmitForReview moves a draft into pending_review and records the
// submitter in the approval trail.
func SubmitForReview(q Quote, userID string, now time.Time) (Quote, error) {
	if q.Status != StatusDraft {
		return q, fmt.Errorf("%w: can only submit %s quotes for review, quote is %s", shared.ErrInvalidStatus, StatusDraft, q.Status)
	}
	q.Status = StatusPendingReview
	q.Approvals = append(cloneApprovals(q.Approvals), Approval{
		UserID: userID,
		Action: "submit",
		At:     now,
	})
	return q, nil
}

// Send transitions a draft or reviewed quote to sent and stamps SentAt.
// SentAt is set exactly once; a quote never re-enters the sent state.
func Send(q Quote, now time.Time) (Quote, error) {
	if q.Status != StatusDraft && q.Status != StatusPendingReview {
		return q, fmt.Errorf("%w: cannot send a %s quote", shared.ErrInvalidStatus, q.Status)
	}
	if q.ClientInfo.Name == "" {
		return q, fmt.Errorf("%w: client name is required before sending", shared.ErrValidation)
	}
	q.Status = StatusSent
	sentAt := now
	q.SentAt = &sentAt
	return q, nil
}

// MarkViewed records a client open. The first view moves sent to viewed;
// subsequent views append to the view log without changing status.
func MarkViewed(q Quote, view ClientView) (Quote, error) {
	if q.Status != StatusSent && q.Status != StatusViewed {
		return q, fmt.Errorf("%w: cannot record a view on a %s quote", shared.ErrInvalidStatus, q.Status)
	}
	q.Status = StatusViewed
	views := make([]ClientView, len(q.ClientViews), len(q.ClientViews)+1)
	copy(views, q.ClientViews)
	q.ClientViews = append(views, view)
	return q, nil
}

// Accept records a client acceptance: status, AcceptedAt from the decision
// timestamp, and one client-visible comment.
func Accept(q Quote, decision Decision) (Quote, error) {
	if q.Status != StatusSent && q.Status != StatusViewed {
		return q, fmt.Errorf("%w: cannot accept a %s quote", shared.ErrInvalidStatus, q.Status)
	}
	q.Status = StatusAccepted
	acceptedAt := decision.Timestamp
	q.AcceptedAt = &acceptedAt
	q.Comments = appendDecisionComment(q.Comments, decision, "Quote accepted")
	return q, nil
}

// Reject records a client rejection. There is no RejectedAt field; the
// rejection time is carried by the appended comment.
func Reject(q Quote, decision Decision) (Quote, error) {
	if q.Status != StatusSent && q.Status != StatusViewed {
		return q, fmt.Errorf("%w: cannot reject a %s quote", shared.ErrInvalidStatus, q.Status)
	}
	q.Status = StatusRejected
	q.Comments = appendDecisionComment(q.Comments, decision, "Quote rejected")
	return q, nil
}

// Expire transitions an outstanding quote past its validity window.
func Expire(q Quote, now time.Time) (Quote, error) {
	if !q.Status.Expirable() {
		return q, fmt.Errorf("%w: cannot expire a %s quote", shared.ErrInvalidStatus, q.Status)
	}
	if now.Before(q.ValidUntil) {
		return q, fmt.Errorf("%w: quote %s is valid until %s", shared.ErrValidation, q.QuoteNumber, q.ValidUntil.Format(time.RFC3339))
	}
	q.Status = StatusExpired
	return q, nil
}

// AddComment appends a comment to the quote.
func AddComment(q Quote, userID, message string, internal bool, now time.Time) Quote {
	comments := make([]Comment, len(q.Comments), len(q.Comments)+1)
	copy(comments, q.Comments)
	q.Comments = append(comments, Comment{
		ID:         uuid.NewString(),
		UserID:     userID,
		Message:    message,
		IsInternal: internal,
		CreatedAt:  now,
	})
	return q
}

func appendDecisionComment(comments []Comment, decision Decision, defaultMessage string) []Comment {
	message := decision.Comments
	if message == "" {
		message = defaultMessage
	}
	out := make([]Comment, len(comments), len(comments)+1)
	copy(out, comments)
	return append(out, Comment{
		ID:         uuid.NewString(),
		UserID:     "client",
		Message:    message,
		IsInternal: false,
		CreatedAt:  decision.Timestamp,
	})
}

func cloneApprovals(approvals []Approval) []Approval {
	out := make([]Approval, len(approvals), len(approvals)+1)
	copy(out, approvals)
	return out
}
