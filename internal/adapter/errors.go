// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrUnauthorized    = errors.New("token invalid, please reconfigure it")
	ErrNetwork         = errors.New("server busy, please try again later")
	ErrBadRequest      = errors.New("request rejected by server")
	ErrMissingFilename = errors.New("response has no file name")
	ErrUpload          = errors.New("asset upload failed")
	ErrDocumentStore   = errors.New("document store request failed")
	ErrEmptyAddress    = errors.New("empty address")
)

// ServerError is a 400 response of the backend. Message is the server
// message, passed on to the user verbatim.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// Is makes every ServerError match [ErrBadRequest].
func (e *ServerError) Is(target error) bool {
	return target == ErrBadRequest
}
