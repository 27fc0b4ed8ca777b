package config

import (
	"errors"
	"fmt"
	"strings"
)

// Errors for config management
var (
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrDuplicateKey      = errors.New("recipient already exists")
	ErrInvalidEmail      = errors.New("invalid email format")
)

// ConfigManager provides CRUD operations for summary email recipients
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a new config manager
func NewConfigManager(cfg *Config, configPath string) *ConfigManager {
	return &ConfigManager{
		config:     cfg,
		configPath: configPath,
	}
}

// AddRecipient adds a new recipient and saves the config
func (m *ConfigManager) AddRecipient(name, email string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return fmt.Errorf("recipient name is required")
	}
	if !isValidEmail(email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	if _, err := m.indexOf(email); err == nil {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, email)
	}

	m.config.Email.Recipients = append(m.config.Email.Recipients, RecipientConfig{
		Name:    name,
		Address: email,
	})
	return Save(m.config, m.configPath)
}

// ListRecipients returns all recipients
func (m *ConfigManager) ListRecipients() []RecipientConfig {
	out := make([]RecipientConfig, len(m.config.Email.Recipients))
	copy(out, m.config.Email.Recipients)
	return out
}

// RemoveRecipient removes the recipient with the given address (case-insensitive)
func (m *ConfigManager) RemoveRecipient(email string) error {
	idx, err := m.indexOf(email)
	if err != nil {
		return err
	}

	m.config.Email.Recipients = append(
		m.config.Email.Recipients[:idx],
		m.config.Email.Recipients[idx+1:]...,
	)
	return Save(m.config, m.configPath)
}

func (m *ConfigManager) indexOf(email string) (int, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for i, r := range m.config.Email.Recipients {
		if strings.ToLower(r.Address) == email {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrRecipientNotFound, email)
}

// isValidEmail performs basic email validation
func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	// Basic check: contains @ and at least one . after @
	atIdx := strings.Index(email, "@")
	if atIdx < 1 {
		return false
	}
	domain := email[atIdx+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return true
}
