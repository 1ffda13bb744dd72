// Package config handles configuration loading for the taskdeck server.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${TASKDECK_JWT_SECRET}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//
// Database:
//
//	database:
//	  path: "/var/lib/taskdeck/taskdeck.db"
//
// Authentication:
//
//	auth:
//	  jwt_secret: "${TASKDECK_JWT_SECRET}"  # required, min 32 bytes
//	  bcrypt_cost: 10
//	  token_ttl: "24h"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax (ns, us, ms, s, m, h).
// token_ttl defaults to 24h when unset.
//
// # Validation
//
// Load() validates:
//
//   - server.http_addr and database.path are present
//   - JWT secret minimum length (32 bytes)
//   - token_ttl is positive
//
// # Usage
//
//	cfg, err := config.Load("/etc/taskdeck/server.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
