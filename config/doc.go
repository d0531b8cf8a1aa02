// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml (or the file named by
// CAMPUSMAP_CONFIG) and validated using struct tags.
package config
