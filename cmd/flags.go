package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/mycarbs"
)

// parsePortion parses a portion flag "name=carbs", like "1 slice=15".
// The name may contain '=' itself, the carbs are after the last one.
func parsePortion(s string) (mycarbs.Portion, error) {
	i := strings.LastIndex(s, "=")
	if i < 0 {
		return mycarbs.Portion{}, fmt.Errorf("invalid portion %q, want name=carbs", s)
	}
	name := strings.TrimSpace(s[:i])
	carbs, err := strconv.ParseFloat(strings.TrimSpace(s[i+1:]), 64)
	if err != nil {
		return mycarbs.Portion{}, fmt.Errorf("invalid carbs in portion %q: %w", s, err)
	}
	if name == "" {
		return mycarbs.Portion{}, fmt.Errorf("invalid portion %q, the name is empty", s)
	}
	return mycarbs.Portion{Name: name, Carbs: carbs}, nil
}

// parseQuantities parses a comma separated list of quantities, like
// "0.5,1,2". An empty string is an empty list.
func parseQuantities(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return []float64{}, nil
	}
	parts := strings.Split(s, ",")
	qs := make([]float64, 0, len(parts))
	for _, p := range parts {
		q, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q: %w", p, err)
		}
		qs = append(qs, q)
	}
	return qs, nil
}

// portionsFlag collects repeated -portion flags.
type portionsFlag []mycarbs.Portion

func (p *portionsFlag) String() string {
	parts := make([]string, len(*p))
	for i, v := range *p {
		parts[i] = fmt.Sprintf("%s=%v", v.Name, v.Carbs)
	}
	return strings.Join(parts, ", ")
}

func (p *portionsFlag) Set(s string) error {
	v, err := parsePortion(s)
	if err != nil {
		return err
	}
	*p = append(*p, v)
	return nil
}

// listFlag collects repeated string flags.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ", ") }

func (l *listFlag) Set(s string) error {
	*l = append(*l, s)
	return nil
}

// quantitiesFlag is a comma separated list of quantities.
type quantitiesFlag struct {
	values []float64
	set    bool
}

func (q *quantitiesFlag) String() string {
	parts := make([]string, len(q.values))
	for i, v := range q.values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (q *quantitiesFlag) Set(s string) error {
	v, err := parseQuantities(s)
	if err != nil {
		return err
	}
	q.values, q.set = v, true
	return nil
}
