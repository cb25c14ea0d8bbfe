//go:build tools

package tools

// mockery v3 is used as an installed binary (not via go run), so no blank
// import is needed. Run: mockery (from the module root) to regenerate
// pkg/channel/mocks and pkg/discovery/mocks from .mockery.yaml.
