package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the hardcoded 2048 configuration, used when the
// embedded YAML cannot be parsed.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: T2048Board{
			Size:      4,
			WinTarget: 2048,
		},
		Animation: T2048Animation{
			SlideTicks:        8, // ~133ms at 60fps
			PopTicks:          6,
			Jitter:            2,
			RoundTimeoutTicks: 120,
		},
	}
}
