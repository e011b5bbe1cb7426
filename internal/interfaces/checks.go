package interfaces

// Compile-time checks that the concrete repositories satisfy the stores the
// HTTP layer is written against.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/userbooks/internal/database"
	"github.com/mrlokans/userbooks/internal/database/authorship"
	"github.com/mrlokans/userbooks/internal/database/users"
	"github.com/mrlokans/userbooks/internal/http"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.UserStore = (*users.Repository)(nil)

var _ http.AuthorshipStore = (*authorship.Repository)(nil)

// =============================================================================
// Health
// =============================================================================

var _ http.Pinger = (*database.Database)(nil)
