// Package auth implements the portal's session-based authentication and
// account management.
//
// Accounts come in two roles with distinct identity schemes: admins log in
// with an ID number (stored as the username), citizens with an email
// address. The Service resolves credentials to accounts and runs the
// account lifecycle (self-registration, admin-driven creation, listing,
// deletion); the SessionManager binds the resolved account to a session
// cookie; the Controller exposes both as JSON endpoints.
//
// # Configuration
//
//	AUTH_SESSION_SECRET=<hex-32-bytes>  # Auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h           # Session duration
//	AUTH_BCRYPT_COST=12                 # bcrypt cost factor
//	AUTH_SECURE_COOKIES=true            # HTTPS-only cookies
package auth
