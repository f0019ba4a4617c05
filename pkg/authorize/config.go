package authorize

import "github.com/Omar96MJ/sanad-sub001/config"

// Config holds configuration for the authorization layer.
type Config struct {
	// CasbinModelPath is the path to the Casbin model file.
	CasbinModelPath string

	// EnableAudit wraps the enforcer with decision logging.
	EnableAudit bool

	// AdminBypass lets platform admins skip p-rule evaluation.
	AdminBypass bool
}

func DefaultConfig() Config {
	return Config{
		CasbinModelPath: "casbin_model.conf",
		EnableAudit:     true,
		AdminBypass:     true,
	}
}

func FromCentralConfig(c config.AuthorizationConfig) Config {
	return Config{
		CasbinModelPath: c.CasbinModelPath,
		EnableAudit:     c.EnableAudit,
		AdminBypass:     c.SuperadminBypass,
	}
}
