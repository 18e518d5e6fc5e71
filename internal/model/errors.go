package model

import "errors"

var (
	ErrNoteNotFound       = errors.New("note not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrFolderNotFound     = errors.New("folder not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrTagExists          = errors.New("tag already exists")
	ErrShareNotFound      = errors.New("share not found")
	ErrShareExists        = errors.New("note already shared with this user")
	ErrSelfShare          = errors.New("cannot share a note with yourself")
	ErrShareLinkExpired   = errors.New("share link expired")
	ErrShareLinkPrivate   = errors.New("share link is private")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
