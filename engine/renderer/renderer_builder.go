package renderer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOption is returned when a renderer setting from configuration cannot be parsed.
var ErrUnknownOption = errors.New("unknown renderer option")

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets how frames reach the display. It is applied before the first surface configure.
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithMSAA sets the color attachment sample count. MSAA4x is used when unset.
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingMSAA = &count
	}
}

// WithForceSoftwareRenderer requests the fallback adapter (lavapipe, SwiftShader) instead of a GPU.
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// ParsePresentMode resolves "vsync" or "uncapped", case-insensitive.
//
// Parameters:
//   - name: the present mode name
//
// Returns:
//   - PresentMode: the matching mode
//   - error: ErrUnknownOption for any other name
func ParsePresentMode(name string) (PresentMode, error) {
	switch strings.ToLower(name) {
	case "vsync":
		return PresentModeVSync, nil
	case "uncapped":
		return PresentModeUncapped, nil
	}
	return PresentModeVSync, fmt.Errorf("%w: present mode %q", ErrUnknownOption, name)
}

// ParseMSAA resolves a sample count. Only 1 (off) and 4 are supported by the surface formats used.
//
// Parameters:
//   - samples: samples per pixel
//
// Returns:
//   - MSAASampleCount: the matching count
//   - error: ErrUnknownOption for any other count
func ParseMSAA(samples int) (MSAASampleCount, error) {
	switch samples {
	case 1:
		return MSAAOff, nil
	case 4:
		return MSAA4x, nil
	}
	return MSAA4x, fmt.Errorf("%w: msaa %d", ErrUnknownOption, samples)
}
