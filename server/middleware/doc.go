// Copyright 2025, the Vabber contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides HTTP request handling functionality for Vabber.

Route definitions are centralized in router.DefineRoutes; the middleware chain
is assembled in router.RegisterMiddleware.
*/
package middleware
