package validator

// Option configures a single Validate call.
type Option func(*validateConfig)

// validateConfig holds the call-level arguments of one Validate invocation.
type validateConfig struct {
	replacer Replacer
	indent   string
}

// applyOptions applies option functions over the defaults.
func applyOptions(opts ...Option) *validateConfig {
	cfg := &validateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithReplacer declares that the serializing call will use fn as a replacer.
// A non-nil replacer always produces a high-impact warning, since the
// serializer must consult it for every node.
func WithReplacer(fn Replacer) Option {
	return func(cfg *validateConfig) { cfg.replacer = fn }
}

// WithIndent declares that the serializing call will pretty-print with the
// given indent string. A non-empty indent always produces a high-impact
// warning. The empty string means compact output and produces none.
func WithIndent(indent string) Option {
	return func(cfg *validateConfig) { cfg.indent = indent }
}
