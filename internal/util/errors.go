package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrMaterialNotFound      = errors.New("study material not found")
	ErrMissingMaterialFields = errors.New("title, subject and content are required")
	ErrInvalidAnswerIndex    = errors.New("selected answer is out of range")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrNoExtractableText   = errors.New("file contains no extractable text")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")

	ErrAINotConfigured = errors.New("AI functionality not configured")
	ErrEmptyAIResponse = errors.New("AI returned no choices")
)
