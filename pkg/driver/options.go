package driver

import (
	"fmt"

	"github.com/spf13/cast"

	"aswcluster/pkg/clustererr"
)

// DecodeOptions tolerantly coerces a loosely-typed source — JSON numbers,
// strings, xlsx cell text — into an Options value, the way the teacher's
// controller coerces spreadsheet cells with cast.ToInt64/cast.ToFloat64.
// Strict construction with an Options{} literal remains the primary
// Go-native path; DecodeOptions is the boundary adapter for the HTTP
// service and any config format that hands over map[string]any.
func DecodeOptions(raw map[string]any) (Options, error) {
	var opts Options

	if v, ok := raw["k"]; ok {
		ks, err := decodeIntSlice(v)
		if err != nil {
			return Options{}, fmt.Errorf("%w: K: %v", clustererr.ErrInvalidK, err)
		}
		opts.K = ks
	}

	opts.Engine = cast.ToString(raw["engine"])
	opts.Variant = cast.ToString(raw["variant"])

	if v, ok := raw["initMethods"]; ok {
		methods, err := decodeStringSlice(v)
		if err != nil {
			return Options{}, fmt.Errorf("%w: initMethods: %v", clustererr.ErrInvalidInitMethod, err)
		}
		opts.InitMethods = methods
	}

	opts.SampleSize = cast.ToInt(raw["sampleSize"])
	opts.NumSamples = cast.ToInt(raw["numSamples"])
	opts.Repeats = cast.ToInt(raw["repeats"])
	opts.IterCap = cast.ToInt(raw["iterCap"])
	opts.Seed = cast.ToUint64(raw["seed"])
	opts.Concurrency = cast.ToInt(raw["concurrency"])

	return opts, nil
}

func decodeIntSlice(v any) ([]int, error) {
	items, ok := v.([]any)
	if !ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return nil, err
		}
		return []int{n}, nil
	}
	out := make([]int, len(items))
	for i, it := range items {
		n, err := cast.ToIntE(it)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%v): %w", i, it, err)
		}
		out[i] = n
	}
	return out, nil
}

func decodeStringSlice(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return []string{cast.ToString(v)}, nil
	}
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = cast.ToString(it)
	}
	return out, nil
}
