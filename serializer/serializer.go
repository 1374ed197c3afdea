package serializer

import (
	"encoding/json"
	"strconv"

	"github.com/jsontools/fastpath/validator"
)

// maxReplaceDepth bounds the replacer pre-transform so a replacer that
// fabricates nested values cannot recurse forever.
const maxReplaceDepth = 100

// MarshalResult bundles serialized output with its fast-path diagnostics.
type MarshalResult struct {
	// JSON is the serialized document
	JSON string
	// Validation is the full validation result for the input tree
	Validation *validator.Result
	// Optimized mirrors Validation.IsOptimized
	Optimized bool
}

// Option configures a single Marshal call.
type Option func(*marshalConfig)

// marshalConfig holds the call-level arguments of one Marshal invocation.
type marshalConfig struct {
	replacer validator.Replacer
	indent   string
}

// WithReplacer substitutes values through fn before serialization.
// The root is visited with key "".
func WithReplacer(fn validator.Replacer) Option {
	return func(cfg *marshalConfig) { cfg.replacer = fn }
}

// WithIndent pretty-prints the output with the given indent string.
// The empty string produces compact output.
func WithIndent(indent string) Option {
	return func(cfg *marshalConfig) { cfg.indent = indent }
}

// Marshal validates tree and then serializes it with encoding/json,
// returning both outputs. Validation is advisory: warnings never prevent
// serialization, and the optimizer is not applied.
//
// Errors are either validation errors (cycles, depth, see the validator
// package) or encoding/json failures, propagated unchanged.
func Marshal(tree any, opts ...Option) (*MarshalResult, error) {
	cfg := &marshalConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	vopts := make([]validator.Option, 0, 2)
	if cfg.replacer != nil {
		vopts = append(vopts, validator.WithReplacer(cfg.replacer))
	}
	if cfg.indent != "" {
		vopts = append(vopts, validator.WithIndent(cfg.indent))
	}

	validation, err := validator.Validate(tree, vopts...)
	if err != nil {
		return nil, err
	}

	out := tree
	if cfg.replacer != nil {
		out = applyReplacer("", out, cfg.replacer, 0)
	}

	var data []byte
	if cfg.indent != "" {
		data, err = json.MarshalIndent(out, "", cfg.indent)
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		return nil, err
	}

	return &MarshalResult{
		JSON:       string(data),
		Validation: validation,
		Optimized:  validation.IsOptimized,
	}, nil
}

// applyReplacer substitutes value through fn, then descends into the
// replacement's members the way a text serializer consults its replacer:
// parent first, then each child with its own key.
func applyReplacer(key string, value any, fn validator.Replacer, depth int) any {
	value = fn(key, value)
	if depth > maxReplaceDepth {
		return value
	}
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			out[k] = applyReplacer(k, child, fn, depth+1)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = applyReplacer(strconv.Itoa(i), child, fn, depth+1)
		}
		return out
	default:
		return value
	}
}
