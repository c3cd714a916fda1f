package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PhysCorp/MarbleMachine/internal/domain"
)

// LoadProfile reads and validates a machine profile file. Absent fields
// fall back to the stock profile.
func LoadProfile(path string) (domain.Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Profile{}, &domain.OpError{
			Op:   "config.load_profile",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLProfile
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.Profile{}, &domain.OpError{
			Op:   "config.load_profile",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapProfile(path, dto)
}

// LoadProfileOrDefault returns the stock profile when no path is given.
func LoadProfileOrDefault(path string) (domain.Profile, error) {
	if path == "" {
		return domain.DefaultProfile(), nil
	}
	return LoadProfile(path)
}
