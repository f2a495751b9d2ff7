// Package jwt is helpers for working with JSON Web Tokens (JWT).
//
// It includes:
//   - A typed Claims wrapper (registered claims + strongly-typed payload).
//   - A symmetric HS512 implementation issuing stateless access/refresh pairs.
//   - Context helpers for storing and retrieving authenticated claims.
//
// Refresh tokens are not persisted server side; they are distinguished from
// access tokens by the token_use claim and a longer lifetime.
package jwt
