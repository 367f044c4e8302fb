package handler

import (
	"errors"

	"minisocial/internal/model"
)

// User-facing texts shared by the JSON API and the form pages
const (
	msgAuthRequired        = "Authentication required."
	msgCredentialsRequired = "Username and password are required."
	msgUsernameTooShort    = "Username must be at least 3 characters."
	msgPasswordTooShort    = "Password must be at least 8 characters."
	msgUsernameExists      = "Username already exists."
	msgInvalidCredentials  = "Invalid username or password."
	msgContentRequired     = "Content is required."
	msgPostEmpty           = "Post cannot be empty."
	msgPostTooLong         = "Post is too long. Limit is 500 characters."
	msgCommentEmpty        = "Comment cannot be empty."
	msgCommentTooLong      = "Comment is too long. Limit is 300 characters."
	msgPostNotFound        = "Post not found."
	msgUserNotFound        = "User not found."
	msgInvalidFeed         = "Invalid feed."
	msgCannotFollowSelf    = "You cannot follow yourself."
	msgInvalidBody         = "Invalid request body"
	msgInvalidPostID       = "Invalid post ID"

	msgRegistered       = "Registered."
	msgSignedIn         = "Signed in."
	msgSignedOut        = "Signed out."
	msgPosted           = "Posted."
	msgFollowed         = "Followed."
	msgAlreadyFollowing = "Already following."
	msgUnfollowed       = "Unfollowed."
)

// validationMessage maps input errors to their text; ok is false for errors
// that are not the caller's fault.
func validationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, model.ErrUsernameRequired), errors.Is(err, model.ErrPasswordRequired):
		return msgCredentialsRequired, true
	case errors.Is(err, model.ErrUsernameTooShort):
		return msgUsernameTooShort, true
	case errors.Is(err, model.ErrPasswordTooShort):
		return msgPasswordTooShort, true
	case errors.Is(err, model.ErrContentRequired):
		return msgContentRequired, true
	case errors.Is(err, model.ErrContentTooLong):
		return msgPostTooLong, true
	case errors.Is(err, model.ErrCommentRequired):
		return msgCommentEmpty, true
	case errors.Is(err, model.ErrCommentTooLong):
		return msgCommentTooLong, true
	case errors.Is(err, model.ErrCannotFollowSelf):
		return msgCannotFollowSelf, true
	case errors.Is(err, model.ErrInvalidFeed):
		return msgInvalidFeed, true
	}
	return "", false
}
