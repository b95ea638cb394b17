package server

// Config holds configuration for the HTTP server and request authentication.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"3000"`
	// JwtSecret is the secret used to sign and verify session tokens.
	JwtSecret string `mapstructure:"jwt_secret" default:"change-me"`
	// JwtExpiresHours is the session token lifetime in hours.
	JwtExpiresHours int `mapstructure:"jwt_expires_hours" default:"8"`
	// SyncToken is the shared secret expected on inventory sync requests.
	SyncToken string `mapstructure:"sync_token" default:""`
	// AllowedOrigins is a comma separated list of allowed CORS origins.
	// Empty means every origin is accepted.
	AllowedOrigins string `mapstructure:"allowed_origins" default:""`
	// BodyLimitMB is the maximum accepted request body size in megabytes.
	// Sync payloads can be large full-warehouse exports.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"50"`
}

// Roles accepted for application users.
const (
	RoleAdmin    = "admin"
	RoleImporter = "importer"
	RoleViewer   = "viewer"
)

// IsValidRole checks whether a role belongs to the accepted set.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleImporter, RoleViewer:
		return true
	default:
		return false
	}
}
