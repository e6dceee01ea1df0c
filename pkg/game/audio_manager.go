package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// defaultSoundVolume 默认音效音量
const defaultSoundVolume = 0.8

// AudioManager 音效管理器
//
// 通过资源ID播放一次性音效。没有音频上下文、资源缺失或解码失败时
// 进入降级模式：PlaySound 返回 false，游戏逻辑不受影响。
// nil *AudioManager 也可以安全调用。
type AudioManager struct {
	resourceManager *ResourceManager
	soundPlayers    map[string]*audio.Player // 资源ID -> 播放器
	failed          map[string]bool          // 加载失败的资源ID，不再重试
	volume          float64
	enabled         bool
}

// NewAudioManager 创建音效管理器
//
// 参数：
//   - rm: ResourceManager 实例，可为 nil（静音）
func NewAudioManager(rm *ResourceManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		soundPlayers:    make(map[string]*audio.Player),
		failed:          make(map[string]bool),
		volume:          defaultSoundVolume,
		enabled:         true,
	}
}

// PlaySound 播放音效
//
// 参数：
//   - soundID: 音效资源ID（如 "SOUND_BUTTON"）
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am == nil || !am.enabled {
		return false
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.volume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// SetSoundEnabled 开关音效
func (am *AudioManager) SetSoundEnabled(enabled bool) {
	am.enabled = enabled
}

// SetSoundVolume 设置音效音量 (0.0 ~ 1.0)，超出范围时截断
func (am *AudioManager) SetSoundVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	am.volume = volume
	for _, player := range am.soundPlayers {
		player.SetVolume(volume)
	}
}

// GetSoundVolume 获取当前音效音量
func (am *AudioManager) GetSoundVolume() float64 {
	return am.volume
}

// getSoundPlayer 获取或加载音效播放器
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, exists := am.soundPlayers[soundID]; exists {
		return player
	}
	if am.failed[soundID] || !am.resourceManager.HasAudio() {
		return nil
	}

	path, ok := am.resourceManager.ResolvePath(soundID)
	if !ok {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		am.failed[soundID] = true
		return nil
	}

	player, err := am.resourceManager.LoadSoundEffect(path)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to load sound %s: %v", soundID, err)
		am.failed[soundID] = true
		return nil
	}
	am.soundPlayers[soundID] = player
	return player
}

// PreloadSounds 预加载音效，避免首次播放时的延迟
func (am *AudioManager) PreloadSounds(soundIDs []string) {
	loaded := 0
	for _, soundID := range soundIDs {
		if am.getSoundPlayer(soundID) != nil {
			loaded++
		}
	}
	log.Printf("[AudioManager] Preloaded %d/%d sounds", loaded, len(soundIDs))
}
