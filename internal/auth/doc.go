// Package auth implements account management and session authentication.
//
// It provides bcrypt password hashing, a user-facing sign-up/login/logout
// controller, an scs-backed session manager (which also carries flash
// messages), gin middleware that resolves the current principal on every
// request, and CSRF protection for form posts.
//
// Handlers that require a logged-in user attach Middleware.RequireAuth at
// route registration; anonymous requests are redirected to /login with a
// next parameter so the original navigation can resume after login.
package auth
