// Package blog implements a multi user blogging backend: accounts,
// posts with comments, photo albums, and JWT based authentication.
//
// Accounts and roles:
//   - Registration is open and every new account starts as an enabled
//     USER. Roles are ordered USER < MANAGER < ADMIN; admins may act on
//     any user's resources, everyone else only on their own.
//   - Content is always created under the authenticated account, admins
//     included. Editing and deleting follow owner-or-admin rules, and a
//     photo's ownership follows the album it belongs to.
//
// Authentication:
//   - Login returns an HS256 signed access and refresh token pair. The
//     middleware in middleware/jwtware hydrates the request identity
//     from a valid bearer token and never rejects on its own; route
//     guards (RequireAuthenticated, RequireRole) enforce access.
//
// Storage:
//   - Repositories are built on bun with a RepositoryManager front.
//     Cascading deletes (post with comments, album with photos) run in
//     a single transaction through RunInTx.
package blog
