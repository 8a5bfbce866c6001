package command

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maximum number of values a single scan may produce
const MAX_SCAN_VALUES = 100000

// Scan is a numeric parameter range, `min` to `max` inclusive in steps of `step`.
type Scan struct {
	Name string `koanf:"name" yaml:"name"`
	Min  string `koanf:"min" yaml:"min"`
	Max  string `koanf:"max" yaml:"max"`
	// Step defaults to 1.
	Step string `koanf:"step" yaml:"step,omitempty"`
}

// List is a parameter with explicit values.
type List struct {
	Name   string   `koanf:"name" yaml:"name"`
	Values []string `koanf:"values" yaml:"values"`
}

// ParseScan reads `name:min:max` or `name:min:max:step`.
func ParseScan(s string) (Scan, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return Scan{}, fmt.Errorf("%w: `%s`, expected name:min:max[:step]", ErrInvalidParameter, s)
	}
	scan := Scan{Name: strings.TrimSpace(parts[0]), Min: strings.TrimSpace(parts[1]), Max: strings.TrimSpace(parts[2])}
	if len(parts) == 4 {
		scan.Step = strings.TrimSpace(parts[3])
	}
	return scan, nil
}

// ParseList reads `name:value1,value2,...`.
func ParseList(s string) (List, error) {
	name, values, found := strings.Cut(s, ":")
	if !found || strings.TrimSpace(name) == "" {
		return List{}, fmt.Errorf("%w: `%s`, expected name:value1,value2,...", ErrInvalidParameter, s)
	}
	return List{Name: strings.TrimSpace(name), Values: strings.Split(values, ",")}, nil
}

// decimals counts the digits after the decimal point of a number literal.
func decimals(literal string) int {
	if _, frac, ok := strings.Cut(literal, "."); ok {
		return len(frac)
	}
	return 0
}

// Values expands the scan into its formatted values. Integer inputs produce integer
// values; otherwise values keep as many decimals as the most precise input.
func (s Scan) Values() ([]string, error) {
	step := s.Step
	if step == "" {
		step = "1"
	}
	parse := func(what, literal string) (float64, error) {
		v, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s `%s` of parameter `%s` is not a number", ErrInvalidParameter, what, literal, s.Name)
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, fmt.Errorf("%w: %s `%s` of parameter `%s` is not a finite number", ErrInvalidParameter, what, literal, s.Name)
		}
		return v, nil
	}

	lo, err := parse("minimum", s.Min)
	if err != nil {
		return nil, err
	}
	hi, err := parse("maximum", s.Max)
	if err != nil {
		return nil, err
	}
	delta, err := parse("step", step)
	if err != nil {
		return nil, err
	}
	if delta <= 0 {
		return nil, fmt.Errorf("%w: step of parameter `%s` must be positive", ErrInvalidParameter, s.Name)
	}
	if hi < lo {
		return nil, fmt.Errorf("%w: minimum of parameter `%s` is larger than its maximum", ErrInvalidParameter, s.Name)
	}

	// tolerance so that 0:1:0.1 includes 1
	steps := math.Floor((hi-lo)/delta + 1e-9)
	if steps+1 > MAX_SCAN_VALUES {
		return nil, fmt.Errorf("%w: parameter `%s` would produce more than %d values", ErrInvalidParameter, s.Name, MAX_SCAN_VALUES)
	}
	count := int(steps) + 1

	precision := max(decimals(s.Min), decimals(s.Max), decimals(step))
	values := make([]string, count)
	for i := range values {
		values[i] = strconv.FormatFloat(lo+float64(i)*delta, 'f', precision, 64)
	}
	return values, nil
}
