package service

import "errors"

// Sentinel errors surfaced to the transport layer, which picks status codes
// with errors.Is. Not-found reasons stay distinct per entity so a missing
// post is never reported as a missing parent comment.
var (
	ErrInvalidInput = errors.New("invalid input")

	ErrPostNotFound          = errors.New("post not found")
	ErrCommentNotFound       = errors.New("comment not found")
	ErrParentCommentNotFound = errors.New("parent comment not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrTagNotFound           = errors.New("tag not found")
	ErrToolNotFound          = errors.New("tool not found")
	ErrFriendNotFound        = errors.New("friend link not found")
	ErrAlbumNotFound         = errors.New("album not found")
	ErrPhotoNotFound         = errors.New("photo not found")

	ErrPostSlugTaken     = errors.New("post slug already exists")
	ErrCategorySlugTaken = errors.New("category slug already exists")
	ErrTagSlugTaken      = errors.New("tag slug already exists")

	ErrInvalidCredentials = errors.New("invalid username or password")
)

// IsNotFound reports whether err is any of the entity not-found sentinels.
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrPostNotFound, ErrCommentNotFound, ErrParentCommentNotFound,
		ErrCategoryNotFound, ErrTagNotFound, ErrToolNotFound,
		ErrFriendNotFound, ErrAlbumNotFound, ErrPhotoNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
