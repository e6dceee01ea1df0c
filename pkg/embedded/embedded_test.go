package embedded

import (
	"errors"
	"testing"
	"testing/fstest"
)

func testFS() (fstest.MapFS, fstest.MapFS) {
	assets := fstest.MapFS{
		"assets/sfx/button.wav": {Data: []byte("RIFF")},
	}
	data := fstest.MapFS{
		"data/levels/level_1.yaml": {Data: []byte("id: \"1\"\n")},
		"data/levels/level_2.yaml": {Data: []byte("id: \"2\"\n")},
		"data/light_physics.yaml":  {Data: []byte("lightSpeed: 8\n")},
	}
	return assets, data
}

// TestNotInitialized 测试未初始化时访问资源
func TestNotInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	if _, err := ReadFile("data/light_physics.yaml"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
	if Exists("assets/sfx/button.wav") {
		t.Error("Exists should be false before Init()")
	}
}

func TestReadFileByPrefix(t *testing.T) {
	assets, data := testFS()
	Init(assets, data)
	defer func() { initialized = false }()

	content, err := ReadFile("./data/light_physics.yaml")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(content) != "lightSpeed: 8\n" {
		t.Errorf("Unexpected content %q", content)
	}

	if !Exists("assets/sfx/button.wav") {
		t.Error("Expected asset to exist")
	}
	if Exists("assets/sfx/missing.wav") {
		t.Error("Missing asset should not exist")
	}

	if _, err := ReadFile("levels/level_1.yaml"); err == nil {
		t.Error("Expected error for path without assets/ or data/ prefix")
	}
}

func TestGlobLevels(t *testing.T) {
	assets, data := testFS()
	Init(assets, data)
	defer func() { initialized = false }()

	files, err := Glob("data/levels/*.yaml")
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(files) != 2 || files[0] != "data/levels/level_1.yaml" {
		t.Errorf("Unexpected glob result %v", files)
	}
}
