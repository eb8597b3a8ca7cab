package colortrack

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/esimov/colortrack/imop"
	"github.com/esimov/colortrack/utils"
)

// maxConfigSize caps the size of the configuration file.
const maxConfigSize = 1 * 1024 * 1024

// Config holds the tunable parameters of a tracking run. Fields omitted from the
// JSON file keep the values of the processor they are applied to, so partial
// configurations are safe.
type Config struct {
	// Segmentation
	Lower      *[3]int `json:"lower,omitempty"` // H, S, V
	Upper      *[3]int `json:"upper,omitempty"`
	KernelSize *int    `json:"kernel_size,omitempty"`

	// Morphology
	Iterations *int    `json:"iterations,omitempty"`
	StructElem *string `json:"struct_elem,omitempty"` // "square" or "cross"

	// Overlay
	MinRadius       *float64 `json:"min_radius,omitempty"`
	CircleColor     *string  `json:"circle_color,omitempty"` // hex, like "#000000"
	LineColor       *string  `json:"line_color,omitempty"`
	CircleThickness *float64 `json:"circle_thickness,omitempty"`
	LineThickness   *float64 `json:"line_thickness,omitempty"`

	// Debug
	Debug      *bool   `json:"debug,omitempty"`
	DebugColor *string `json:"debug_color,omitempty"`
	BlendMode  *string `json:"blend_mode,omitempty"`
}

// LoadConfig reads a Config from a JSON file.
// The file must have a .json extension and must not exceed 1MB.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fi, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fi.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fi.Size(), maxConfigSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that are set.
func (c *Config) Validate() error {
	var lower, upper HSV
	var err error
	if c.Lower != nil {
		if lower, err = hsvFromTriplet(*c.Lower); err != nil {
			return fmt.Errorf("lower: %w", err)
		}
	}
	if c.Upper != nil {
		if upper, err = hsvFromTriplet(*c.Upper); err != nil {
			return fmt.Errorf("upper: %w", err)
		}
	}
	if c.Lower != nil && c.Upper != nil {
		if err := (HSVRange{Lower: lower, Upper: upper}).Validate(); err != nil {
			return err
		}
	}
	if c.KernelSize != nil && (*c.KernelSize < 1 || *c.KernelSize%2 == 0) {
		return fmt.Errorf("kernel_size must be a positive odd number, got %d", *c.KernelSize)
	}
	if c.Iterations != nil && *c.Iterations < 0 {
		return fmt.Errorf("iterations must be non-negative, got %d", *c.Iterations)
	}
	if c.StructElem != nil {
		if _, ok := StructElemByName[*c.StructElem]; !ok {
			return fmt.Errorf("unknown struct_elem %q", *c.StructElem)
		}
	}
	if c.MinRadius != nil && *c.MinRadius < 0 {
		return fmt.Errorf("min_radius must be non-negative, got %f", *c.MinRadius)
	}
	if c.CircleThickness != nil && *c.CircleThickness <= 0 {
		return fmt.Errorf("circle_thickness must be positive, got %f", *c.CircleThickness)
	}
	if c.LineThickness != nil && *c.LineThickness <= 0 {
		return fmt.Errorf("line_thickness must be positive, got %f", *c.LineThickness)
	}
	for name, hex := range map[string]*string{
		"circle_color": c.CircleColor,
		"line_color":   c.LineColor,
		"debug_color":  c.DebugColor,
	} {
		if hex == nil {
			continue
		}
		if _, err := utils.HexToRGBA(*hex); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if c.BlendMode != nil {
		if err := imop.NewBlend().Set(*c.BlendMode); err != nil {
			return err
		}
	}
	return nil
}

// Apply overlays the configured values on the processor.
// The configuration is expected to be validated.
func (c *Config) Apply(p *Processor) {
	if c.Lower != nil {
		p.Range.Lower, _ = hsvFromTriplet(*c.Lower)
	}
	if c.Upper != nil {
		p.Range.Upper, _ = hsvFromTriplet(*c.Upper)
	}
	if c.KernelSize != nil {
		p.KernelSize = *c.KernelSize
	}
	if c.Iterations != nil {
		p.Iterations = *c.Iterations
	}
	if c.StructElem != nil {
		p.StructElem = StructElemByName[*c.StructElem]
	}
	if c.MinRadius != nil {
		p.Overlay.MinRadius = *c.MinRadius
	}
	if c.CircleColor != nil {
		p.Overlay.CircleColor, _ = utils.HexToRGBA(*c.CircleColor)
	}
	if c.LineColor != nil {
		p.Overlay.LineColor, _ = utils.HexToRGBA(*c.LineColor)
	}
	if c.CircleThickness != nil {
		p.Overlay.CircleThickness = *c.CircleThickness
	}
	if c.LineThickness != nil {
		p.Overlay.LineThickness = *c.LineThickness
	}
	if c.Debug != nil {
		p.Debug = *c.Debug
	}
	if c.DebugColor != nil {
		p.DebugColor, _ = utils.HexToRGBA(*c.DebugColor)
	}
	if c.BlendMode != nil {
		p.BlendMode = *c.BlendMode
	}
}

// ParseHSV parses a comma separated "h,s,v" triplet, as accepted on the command line.
func ParseHSV(s string) (HSV, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return HSV{}, fmt.Errorf("invalid HSV value %q: expected h,s,v", s)
	}
	var t [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return HSV{}, fmt.Errorf("invalid HSV value %q: %w", s, err)
		}
		t[i] = v
	}
	return hsvFromTriplet(t)
}

func hsvFromTriplet(t [3]int) (HSV, error) {
	if t[0] < 0 || t[0] >= MaxHue {
		return HSV{}, fmt.Errorf("hue must be in [0,%d), got %d", MaxHue, t[0])
	}
	for _, v := range t[1:] {
		if v < 0 || v > 255 {
			return HSV{}, fmt.Errorf("saturation and value must be in [0,255], got %d", v)
		}
	}
	return HSV{H: uint8(t[0]), S: uint8(t[1]), V: uint8(t[2])}, nil
}
