package models

import (
	"fmt"
)

// Status is the review lifecycle of a post. There is no durable draft state:
// anything an author submits enters the queue as pending, and every author
// edit re-enters pending for mandatory re-review.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPublished Status = "published"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPublished, StatusRejected:
		return true
	}
	return false
}

// AuthorEditable reports whether the post's author may still edit or delete
// it. Published posts are terminal from the author's point of view.
func (s Status) AuthorEditable() bool {
	return s == StatusPending || s == StatusRejected
}

// Action is a workflow transition request.
type Action string

const (
	ActionApprove  Action = "approve"  // moderator: pending -> published
	ActionReject   Action = "reject"   // moderator: pending -> rejected
	ActionResubmit Action = "resubmit" // author: pending/rejected -> pending
)

// Transition returns the status that results from applying action to cur on
// behalf of actor. The authoritative check lives in the API; this mirror
// exists so the UI can refuse impossible submissions before any network call.
func Transition(cur Status, action Action, actor *User) (Status, error) {
	switch action {
	case ActionApprove, ActionReject:
		if !actor.CanModerate() {
			return cur, fmt.Errorf("%s requires a moderator role", action)
		}
		if cur != StatusPending {
			return cur, fmt.Errorf("cannot %s a %s post", action, cur)
		}
		if action == ActionApprove {
			return StatusPublished, nil
		}
		return StatusRejected, nil
	case ActionResubmit:
		if !cur.AuthorEditable() {
			return cur, fmt.Errorf("cannot resubmit a %s post", cur)
		}
		return StatusPending, nil
	}
	return cur, fmt.Errorf("unknown action %q", action)
}
