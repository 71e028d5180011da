package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the fixed filesystem and service locations the orchestrator
// operates on. Everything is injectable so tests can point the tool at
// temporary directories.
type Config struct {
	// HTTPDConfDir is the web-server configuration directory receiving the
	// authentication fragments.
	HTTPDConfDir string `yaml:"httpd_conf_dir"`

	// SAML2Dir is the protocol working directory holding generated SP
	// artifacts and the IdP metadata file.
	SAML2Dir string `yaml:"saml2_dir"`

	// TemplateRoot is the template source tree mirroring destination paths.
	TemplateRoot string `yaml:"template_root"`

	// MetadataTool is the external SP metadata/key generator executable.
	MetadataTool string `yaml:"metadata_tool"`

	// WebService is the name of the web-server system service.
	WebService string `yaml:"web_service"`

	// SettingsDB is the path of the appliance settings database.
	SettingsDB string `yaml:"settings_db"`

	// LockPath is the exclusive lock file guarding concurrent runs.
	LockPath string `yaml:"lock_path"`
}

// Load builds the configuration from environment variables with built-in
// defaults.
func Load() *Config {
	return &Config{
		HTTPDConfDir: getEnv("AUTHCTL_HTTPD_CONF_DIR", "/etc/httpd/conf.d"),
		SAML2Dir:     getEnv("AUTHCTL_SAML2_DIR", "/etc/httpd/saml2"),
		TemplateRoot: getEnv("AUTHCTL_TEMPLATE_ROOT", "/opt/authctl/templates"),
		MetadataTool: getEnv("AUTHCTL_METADATA_TOOL", "/usr/libexec/mod_auth_mellon/mellon_create_metadata.sh"),
		WebService:   getEnv("AUTHCTL_WEB_SERVICE", "httpd"),
		SettingsDB:   getEnv("AUTHCTL_SETTINGS_DB", "/var/lib/authctl/settings.db"),
		LockPath:     getEnv("AUTHCTL_LOCK_PATH", "/run/authctl.lock"),
	}
}

// MergeFile overlays non-empty values from the YAML file at path.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	merge(&c.HTTPDConfDir, overlay.HTTPDConfDir)
	merge(&c.SAML2Dir, overlay.SAML2Dir)
	merge(&c.TemplateRoot, overlay.TemplateRoot)
	merge(&c.MetadataTool, overlay.MetadataTool)
	merge(&c.WebService, overlay.WebService)
	merge(&c.SettingsDB, overlay.SettingsDB)
	merge(&c.LockPath, overlay.LockPath)

	return nil
}

// Validate checks that every location is set.
func (c *Config) Validate() error {
	fields := map[string]string{
		"httpd_conf_dir": c.HTTPDConfDir,
		"saml2_dir":      c.SAML2Dir,
		"template_root":  c.TemplateRoot,
		"metadata_tool":  c.MetadataTool,
		"web_service":    c.WebService,
		"settings_db":    c.SettingsDB,
		"lock_path":      c.LockPath,
	}
	for name, value := range fields {
		if value == "" {
			return fmt.Errorf("configuration value %s must not be empty", name)
		}
	}
	return nil
}

func merge(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
