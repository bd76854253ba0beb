package preprocess

import (
	"encoding/json"
	"fmt"
	"sort"
)

// StepSpec names a transform and its JSON arguments, the unit a pipeline is
// assembled from in configuration.
type StepSpec struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"args,omitempty"`
}

type blurArgs struct {
	Sigma float64 `json:"sigma"`
}

type resizeArgs struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type edgeArgs struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

type binarizeArgs struct {
	Level *uint8 `json:"level,omitempty"`
}

// New constructs a transform by name from JSON arguments. Omitted arguments
// fall back to sensible defaults (blur sigma 1.4, edge thresholds 50/150,
// Otsu-selected binarization level).
func New(name string, args json.RawMessage) (Transform, error) {
	decode := func(dst interface{}) error {
		if len(args) == 0 {
			return nil
		}
		return json.Unmarshal(args, dst)
	}

	switch name {
	case "grayscale":
		return Grayscale{}, nil
	case "invert":
		return Invert{}, nil
	case "blur":
		a := blurArgs{Sigma: 1.4}
		if err := decode(&a); err != nil {
			return nil, fmt.Errorf("blur args: %w", err)
		}
		return GaussianBlur{Sigma: a.Sigma}, nil
	case "resize":
		var a resizeArgs
		if err := decode(&a); err != nil {
			return nil, fmt.Errorf("resize args: %w", err)
		}
		return Resize{Width: a.Width, Height: a.Height}, nil
	case "edges":
		a := edgeArgs{Low: 50, High: 150}
		if err := decode(&a); err != nil {
			return nil, fmt.Errorf("edges args: %w", err)
		}
		return EdgeDetect{Low: a.Low, High: a.High}, nil
	case "binarize":
		var a binarizeArgs
		if err := decode(&a); err != nil {
			return nil, fmt.Errorf("binarize args: %w", err)
		}
		if a.Level == nil {
			return Binarize{Auto: true}, nil
		}
		return Binarize{Level: *a.Level}, nil
	default:
		return nil, fmt.Errorf("unknown transform %q", name)
	}
}

// Names lists the registered transform names in sorted order.
func Names() []string {
	names := []string{"grayscale", "invert", "blur", "resize", "edges", "binarize"}
	sort.Strings(names)
	return names
}

// Build assembles transforms from an ordered list of step specs.
func Build(specs []StepSpec) ([]Transform, error) {
	steps := make([]Transform, 0, len(specs))
	for _, spec := range specs {
		t, err := New(spec.Name, spec.Args)
		if err != nil {
			return nil, err
		}
		steps = append(steps, t)
	}
	return steps, nil
}
