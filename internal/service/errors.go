package service

import "errors"

var (
	ErrInternal = errors.New("internal server error")
	ErrEmptySecretKey = errors.New("secret key must not be empty")
	ErrInvalidCredentials = errors.New("invalid identity credentials")
	ErrTitleRequired = errors.New("title must not be empty")
	ErrEmptyComment = errors.New("comment must not be empty")
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostAuthor = errors.New("only the post author may edit or delete it")
	ErrAlreadyUpvoted = errors.New("post already upvoted")
	ErrFileMustBeImage = errors.New("file must be an image")
	ErrFileMustHaveAValidExtension = errors.New("file must have a valid extension")
)
