package bind_group_provider

// BindGroupProviderOption is a functional option used to configure a BindGroupProvider during construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithSize sets the uniform buffer size in bytes. The renderer allocates exactly this much.
//
// Parameters:
//   - size: buffer size, normally layout.UniformLayout.Size()
//
// Returns:
//   - BindGroupProviderOption: a function that sets the buffer size for this provider
func WithSize(size uint64) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.size = size
	}
}
