// Package authz decides whether an acting identity may perform an operation
// on an owned resource. Decisions are pure: the guard never touches storage
// and a denial never mutates state. The public published-post read path does
// not go through this package at all.
package authz

import (
	"quill/internal/models"
)

// Action is the kind of access being requested on a resource.
type Action int

const (
	ActionRead Action = iota
	ActionList
	ActionCreate
	ActionUpdate
	ActionDelete
)

// String returns a lowercase name for the action, used in denial messages.
func (a Action) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionList:
		return "list"
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	}
	return "access"
}

// Identity is the acting caller. A zero UserID means anonymous. It is passed
// explicitly into every decision rather than read from ambient request state.
type Identity struct {
	UserID  uint
	IsAdmin bool
}

// Anonymous returns the unauthenticated identity.
func Anonymous() Identity {
	return Identity{}
}

// ForUser returns the identity of an authenticated user.
func ForUser(userID uint) Identity {
	return Identity{UserID: userID}
}

// IsAnonymous reports whether the identity is unauthenticated.
func (i Identity) IsAnonymous() bool {
	return i.UserID == 0
}

// CanAccessPost authorizes an action on a post through the owner-only
// resource set. Only the post's author may read, list, update or delete it;
// everyone else is denied, including anonymous callers.
func CanAccessPost(identity Identity, post *models.Post, action Action) error {
	if identity.IsAnonymous() {
		return models.NewAuthorizationDeniedError("Authentication required")
	}
	if action == ActionCreate {
		return nil
	}
	if !post.OwnedBy(identity.UserID) {
		return models.NewAuthorizationDeniedError("You can only " + action.String() + " your own posts")
	}
	return nil
}

// CanAccessComment authorizes an action on a comment. Creation only requires
// an authenticated identity (the resource does not exist yet and the author
// is stamped server-side); every other action is restricted to the author.
func CanAccessComment(identity Identity, comment *models.Comment, action Action) error {
	if identity.IsAnonymous() {
		return models.NewAuthorizationDeniedError("Authentication required")
	}
	if action == ActionCreate {
		return nil
	}
	if !comment.OwnedBy(identity.UserID) {
		return models.NewAuthorizationDeniedError("You can only " + action.String() + " your own comments")
	}
	return nil
}

// CanLike authorizes adding the identity to a post's like set. Any
// authenticated identity may like any post; it only ever adds itself.
func CanLike(identity Identity) error {
	if identity.IsAnonymous() {
		return models.NewAuthorizationDeniedError("Authentication required")
	}
	return nil
}

// CanUnlike authorizes removing the identity from a post's like set.
func CanUnlike(identity Identity) error {
	if identity.IsAnonymous() {
		return models.NewAuthorizationDeniedError("Authentication required")
	}
	return nil
}
