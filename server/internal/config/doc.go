// Package config loads and validates squadpulse-server's YAML
// configuration and supports fsnotify-based hot-reload. Secrets (API
// keys, webhook URLs) are never stored in the file — the config names
// environment variables and values are resolved at use time.
package config
