package http

import (
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/userbooks/internal/auth"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	Users      UserStore
	Authorship AuthorshipStore
	Database   Pinger

	APIKey *auth.APIKeyMiddleware
	Logger *logrus.Logger

	// Send HSTS on HTTPS requests
	HSTS    bool
	Version string
}
