package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseLightColor(t *testing.T) {
	tests := []struct {
		input   string
		want    LightColor
		wantErr bool
	}{
		{"white", LightWhite, false},
		{"Red", LightRed, false},
		{" GREEN ", LightGreen, false},
		{"blue", LightBlue, false},
		{"purple", LightWhite, true},
		{"", LightWhite, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLightColor(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLightColorNumBounces(t *testing.T) {
	for _, c := range AllLightColors {
		assert.True(t, c.Valid(), "%s should be valid", c)
		assert.GreaterOrEqual(t, c.NumBounces(), 0, "%s bounces", c)
	}
	assert.False(t, LightColorCount.Valid())
	assert.Equal(t, 0, LightColorCount.NumBounces())
	assert.True(t, LightWhite.IsWhite())
	assert.False(t, LightBlue.IsWhite())
}

func TestLightColorYAML(t *testing.T) {
	var doc struct {
		Color LightColor `yaml:"color"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("color: green\n"), &doc))
	assert.Equal(t, LightGreen, doc.Color)

	err := yaml.Unmarshal([]byte("color: magenta\n"), &doc)
	assert.Error(t, err)

	out, err := yaml.Marshal(struct {
		Color LightColor `yaml:"color"`
	}{Color: LightBlue})
	require.NoError(t, err)
	assert.Equal(t, "color: blue\n", string(out))
}

func TestCrystalColorString(t *testing.T) {
	assert.Equal(t, "Red#2", CrystalColor{Color: LightRed, ID: 2}.String())
}
