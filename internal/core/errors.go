package core

import "errors"

var (
	ErrEmptyInput       = errors.New("input is empty")
	ErrInvalidTone      = errors.New("tone must be between 0 and 4")
	ErrUnsupportedMedia = errors.New("file is not an image")
	ErrExtraction       = errors.New("failed to extract text from image")
	ErrNoLine           = errors.New("no pickup line available")
	ErrChatNotFound     = errors.New("chat not found")
	ErrBusy             = errors.New("a reply is already in progress for this chat")
)
