package services

import "errors"

// Sentinel errors translated to HTTP statuses at the handler boundary.
// Conflicts deliberately map to 400, matching the API this service
// replaces.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrAvatarNotFound   = errors.New("avatar not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrReviewNotFound   = errors.New("review not found")

	ErrUsernameTaken      = errors.New("username already in use")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing     = errors.New("not following this user")

	ErrDuplicateReview = errors.New("item already reviewed by this user")
	ErrInvalidRating   = errors.New("rating must be between 0.5 and 5 in half-star steps")
	ErrEmptyContent    = errors.New("review content is required")

	ErrDefaultAvatar = errors.New("default avatars cannot be deleted")
)

// IsNotFound reports whether err identifies a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrAvatarNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrReviewNotFound)
}

// IsConflict reports whether err identifies a state conflict (reported
// as 400 rather than 409, preserving observed behavior).
func IsConflict(err error) bool {
	return errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrAlreadyFollowing) ||
		errors.Is(err, ErrNotFollowing) ||
		errors.Is(err, ErrDuplicateReview)
}

// IsValidation reports whether err identifies malformed input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrSelfFollow) ||
		errors.Is(err, ErrInvalidRating) ||
		errors.Is(err, ErrEmptyContent) ||
		errors.Is(err, ErrDefaultAvatar)
}
