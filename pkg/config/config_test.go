package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/zero-merkle-go/pkg/hasher"
	"github.com/Layr-Labs/zero-merkle-go/pkg/merkle"
)

// TestDemoConfigValidate tests configuration validation
func TestDemoConfigValidate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     DemoConfig
		wantErr bool
	}{
		{"Valid keccak", DemoConfig{Height: 32, Hasher: hasher.Keccak256HasherName}, false},
		{"Valid mimc height zero", DemoConfig{Height: 0, Hasher: hasher.MiMCHasherName}, false},
		{"Valid max height", DemoConfig{Height: merkle.MaxHeight, Hasher: hasher.SHA3256HasherName}, false},
		{"Negative height", DemoConfig{Height: -1, Hasher: hasher.Keccak256HasherName}, true},
		{"Height too large", DemoConfig{Height: merkle.MaxHeight + 1, Hasher: hasher.Keccak256HasherName}, true},
		{"Empty hasher", DemoConfig{Height: 8}, true},
		{"Unknown hasher", DemoConfig{Height: 8, Hasher: "sha1"}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestDemoConfigNewPairHasher tests hasher construction from config
func TestDemoConfigNewPairHasher(t *testing.T) {
	cfg := DemoConfig{Height: 8, Hasher: hasher.Keccak256HasherName}
	require.NoError(t, cfg.Validate())

	h, err := cfg.NewPairHasher()
	require.NoError(t, err)
	require.Equal(t, hasher.Keccak256HasherName, h.Name())
}
