package game

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ResourceConfig represents the resource configuration loaded from YAML.
// It defines the structure of assets/config/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  group_name:
//	    sounds: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Configuration file version
	BasePath string                   `yaml:"base_path"` // Base path for all resources (e.g., "assets")
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup 一组一起加载的资源
type ResourceGroup struct {
	Sounds []SoundResource `yaml:"sounds"`
}

// SoundResource 音效资源定义
//
// Example:
//   - id: SOUND_BUTTON
//     path: sfx/button.wav
type SoundResource struct {
	ID   string `yaml:"id"`   // Resource ID (unique identifier)
	Path string `yaml:"path"` // Relative file path from base_path
}

// ParseResourceConfig 解析资源配置 YAML
func ParseResourceConfig(data []byte) (*ResourceConfig, error) {
	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse resource config: %w", err)
	}

	for name, group := range config.Groups {
		for i, s := range group.Sounds {
			if s.ID == "" || s.Path == "" {
				return nil, fmt.Errorf("group %s: sounds[%d] needs both id and path", name, i)
			}
		}
	}
	return &config, nil
}

// buildFullPath constructs the full file path for a resource.
// For example "assets" + "sfx/button.wav" -> "assets/sfx/button.wav".
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}
