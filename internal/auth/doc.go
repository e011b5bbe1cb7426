// Package auth guards the API with a static shared secret.
//
// Clients send the secret in the api-key header:
//
//	curl -H 'api-key: s3cret' http://localhost:3000/users
//
// The secret is read once at startup from the API_KEY environment variable
// (or .env). When API_KEY is empty every guarded request is rejected.
//
// # Usage
//
//	gate := auth.NewAPIKeyMiddleware(cfg.Auth)
//	api := router.Group("/", gate.Handler())
package auth
