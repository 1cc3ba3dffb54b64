// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

// LoginPath is where unauthenticated users are sent.
const LoginPath = "/login"

// UnauthorizedError signals that a page needs a logged-in user.
//
// The error handling middleware is expected to catch this error and redirect
// to LoginPath. The handler has already remembered ReturnPath in the session.
type UnauthorizedError struct {
	// ReturnPath is where the user asked to go.
	ReturnPath string
}

// Error implements the error interface. The message is simple, as the primary
// purpose of this type is to carry structured data to the error handler.
func (e *UnauthorizedError) Error() string {
	return "unauthorized"
}

// NewUnauthorizedError creates an UnauthorizedError.
func NewUnauthorizedError(returnPath string) error {
	return &UnauthorizedError{ReturnPath: returnPath}
}
