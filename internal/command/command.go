// Package command turns the user's command expressions into the concrete commands that
// get benchmarked, expanding `{parameter}` placeholders from parameter scans and lists.
package command

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoCommands       = errors.New("no command to benchmark was given")
	ErrTooManyNames     = errors.New("more command names than commands were given")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Parameter is one substituted placeholder.
type Parameter struct {
	Name  string
	Value string
}

// Command is a single benchmark target.
type Command struct {
	// Name is shown in summaries and exports. Defaults to the expression.
	Name string
	// Expression is the shell executable string, placeholders already substituted.
	Expression string
	// Parameters in declaration order.
	Parameters []Parameter
}

// New returns a command without parameters.
func New(expression, name string) Command {
	if strings.TrimSpace(name) == "" {
		name = expression
	}
	return Command{Name: name, Expression: expression}
}

// ParameterMap returns the parameters keyed by name.
func (c Command) ParameterMap() map[string]string {
	if len(c.Parameters) == 0 {
		return nil
	}
	m := make(map[string]string, len(c.Parameters))
	for _, p := range c.Parameters {
		m[p.Name] = p.Value
	}
	return m
}

// Substitute replaces the command's `{name}` placeholders in text. Setup, prepare and
// cleanup commands go through this too.
func (c Command) Substitute(text string) string {
	return substitute(text, c.Parameters)
}

func substitute(text string, params []Parameter) string {
	for _, p := range params {
		text = strings.ReplaceAll(text, "{"+p.Name+"}", p.Value)
	}
	return text
}

// Build expands every expression over the cartesian product of all parameter values.
// names, if given, are matched to expressions by position and may use placeholders too.
func Build(expressions, names []string, scans []Scan, lists []List) ([]Command, error) {
	if len(expressions) == 0 {
		return nil, ErrNoCommands
	}
	for _, e := range expressions {
		if strings.TrimSpace(e) == "" {
			return nil, fmt.Errorf("%w: empty command", ErrNoCommands)
		}
	}
	if len(names) > len(expressions) {
		return nil, fmt.Errorf("%w: %d names for %d commands", ErrTooManyNames, len(names), len(expressions))
	}

	dimensions, err := parameterDimensions(scans, lists)
	if err != nil {
		return nil, err
	}
	combinations := product(dimensions)

	var commands []Command
	for i, expression := range expressions {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		for _, params := range combinations {
			cmd := Command{
				Expression: substitute(expression, params),
				Parameters: params,
			}
			cmd.Name = cmd.Expression
			if strings.TrimSpace(name) != "" {
				cmd.Name = substitute(name, params)
			}
			commands = append(commands, cmd)
		}
	}
	return commands, nil
}

type dimension struct {
	name   string
	values []string
}

func parameterDimensions(scans []Scan, lists []List) ([]dimension, error) {
	seen := make(map[string]bool)
	var dims []dimension
	add := func(name string, values []string) error {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty parameter name", ErrInvalidParameter)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate parameter name `%s`", ErrInvalidParameter, name)
		}
		if len(values) == 0 {
			return fmt.Errorf("%w: parameter `%s` has no values", ErrInvalidParameter, name)
		}
		seen[name] = true
		dims = append(dims, dimension{name: name, values: values})
		return nil
	}

	for _, s := range scans {
		values, err := s.Values()
		if err != nil {
			return nil, err
		}
		if err := add(s.Name, values); err != nil {
			return nil, err
		}
	}
	for _, l := range lists {
		if err := add(l.Name, l.Values); err != nil {
			return nil, err
		}
	}
	return dims, nil
}

// product returns every combination of dimension values, the last dimension varying
// fastest. No dimensions yields a single empty combination.
func product(dims []dimension) [][]Parameter {
	combinations := [][]Parameter{nil}
	for _, d := range dims {
		next := make([][]Parameter, 0, len(combinations)*len(d.values))
		for _, combination := range combinations {
			for _, v := range d.values {
				params := make([]Parameter, len(combination), len(combination)+1)
				copy(params, combination)
				next = append(next, append(params, Parameter{Name: d.name, Value: v}))
			}
		}
		combinations = next
	}
	return combinations
}
