package store

import (
	"fmt"
	"os"
	"path/filepath"

	"omfin/ledger-sync/internal/models"

	"gopkg.in/yaml.v3"
)

// ConfigStore loads the categorization configuration: budget categories,
// user rules, and the default categorizer's category keywords. All files are
// optional; a missing file yields an empty configuration, not an error.
type ConfigStore struct {
	BudgetsFile    string
	RulesFile      string
	CategoriesFile string
}

// NewConfigStore creates a store over the given YAML configuration files.
func NewConfigStore(budgetsFile, rulesFile, categoriesFile string) *ConfigStore {
	return &ConfigStore{
		BudgetsFile:    budgetsFile,
		RulesFile:      rulesFile,
		CategoriesFile: categoriesFile,
	}
}

// findConfigFile looks for a configuration file in standard locations.
func (s *ConfigStore) findConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("data", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		configPath := filepath.Join(homeDir, ".config", "ledger-sync", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

func (s *ConfigStore) readOptional(filename string) ([]byte, bool, error) {
	if filename == "" {
		return nil, false, nil
	}

	path, err := s.findConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error resolving config file %s: %w", filename, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return data, true, nil
}

// LoadBudgets loads the budget-category configuration.
func (s *ConfigStore) LoadBudgets() ([]models.BudgetCategory, error) {
	data, found, err := s.readOptional(s.BudgetsFile)
	if err != nil || !found {
		return []models.BudgetCategory{}, err
	}

	var doc struct {
		Budgets []models.BudgetCategory `yaml:"budgets"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing budgets file: %w", err)
	}
	return doc.Budgets, nil
}

// LoadRules loads the user-defined categorization rules.
func (s *ConfigStore) LoadRules() ([]models.CategoryRule, error) {
	data, found, err := s.readOptional(s.RulesFile)
	if err != nil || !found {
		return []models.CategoryRule{}, err
	}

	var doc struct {
		Rules []models.CategoryRule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing rules file: %w", err)
	}
	return doc.Rules, nil
}

// LoadCategories loads the default categorizer's category keywords.
func (s *ConfigStore) LoadCategories() ([]models.CategoryConfig, error) {
	data, found, err := s.readOptional(s.CategoriesFile)
	if err != nil || !found {
		return []models.CategoryConfig{}, err
	}

	var doc struct {
		Categories []models.CategoryConfig `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing categories file: %w", err)
	}
	return doc.Categories, nil
}
