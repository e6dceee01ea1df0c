package game

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/decker502/prism/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// ResourceManager loads and caches audio resources from the embedded filesystem.
//
// Thread Safety Note:
// The caches are plain maps. The game loop is single-threaded, so no locking is done.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext)
//	if err := rm.LoadResourceConfig("assets/config/resources.yaml"); err != nil {
//	    log.Printf("Failed to load resource config: %v", err)
//	}
type ResourceManager struct {
	audioCache   map[string]*audio.Player // path -> Player
	audioContext *audio.Context           // nil 表示没有音频设备

	config      *ResourceConfig
	resourceMap map[string]string // Resource ID -> file path
}

// NewResourceManager creates a ResourceManager.
// audioContext may be nil; audio loading then fails with an error.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		audioCache:   make(map[string]*audio.Player),
		audioContext: audioContext,
		resourceMap:  make(map[string]string),
	}
}

// HasAudio 是否有可用的音频上下文
func (rm *ResourceManager) HasAudio() bool {
	return rm != nil && rm.audioContext != nil
}

// LoadResourceConfig 从嵌入文件系统加载资源配置并建立 ID -> 路径映射
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := embedded.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	config, err := ParseResourceConfig(data)
	if err != nil {
		return fmt.Errorf("resource config %s: %w", configPath, err)
	}

	rm.config = config
	rm.buildResourceMap()
	return nil
}

// buildResourceMap 根据配置重建 ID -> 路径映射
// 没有扩展名的音效默认使用 .wav
func (rm *ResourceManager) buildResourceMap() {
	if rm.config == nil {
		return
	}

	rm.resourceMap = make(map[string]string)
	for _, group := range rm.config.Groups {
		for _, sound := range group.Sounds {
			fullPath := buildFullPath(rm.config.BasePath, sound.Path)
			if filepath.Ext(fullPath) == "" {
				fullPath += ".wav"
			}
			rm.resourceMap[sound.ID] = fullPath
		}
	}
}

// RegisterSound 直接登记一个音效ID的路径（覆盖配置中的同名ID）
func (rm *ResourceManager) RegisterSound(soundID, path string) {
	rm.resourceMap[soundID] = path
}

// ResolvePath 返回资源ID对应的文件路径
func (rm *ResourceManager) ResolvePath(resourceID string) (string, bool) {
	path, ok := rm.resourceMap[resourceID]
	return path, ok
}

// SoundIDs 返回所有已登记的音效ID
func (rm *ResourceManager) SoundIDs() []string {
	ids := make([]string, 0, len(rm.resourceMap))
	for id := range rm.resourceMap {
		ids = append(ids, id)
	}
	return ids
}

// decodeSound 按扩展名解码音频数据，不做重采样
func decodeSound(path string, data []byte) (io.ReadSeeker, error) {
	reader := bytes.NewReader(data)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		stream, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV sound %s: %w", path, err)
		}
		return stream, nil
	case ".mp3":
		stream, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sound %s: %w", path, err)
		}
		return stream, nil
	case ".ogg":
		stream, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sound %s: %w", path, err)
		}
		return stream, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .ogg)", ext)
	}
}

// LoadSoundEffect loads a one-shot sound effect and caches its player.
//
// Returns:
//   - A player ready to play (not started).
//   - An error if there is no audio context, or the file cannot be read or decoded.
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	if cachedPlayer, exists := rm.audioCache[path]; exists {
		return cachedPlayer, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context for sound effect %s", path)
	}

	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound effect file %s: %w", path, err)
	}

	stream, err := decodeSound(path, data)
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}

	rm.audioCache[path] = player
	return player, nil
}

// GetAudioPlayer 返回已缓存的播放器，未加载时返回 nil
func (rm *ResourceManager) GetAudioPlayer(path string) *audio.Player {
	return rm.audioCache[path]
}
