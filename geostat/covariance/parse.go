package covariance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSpec reports a malformed model specification string.
var ErrInvalidSpec = errors.New("covariance: invalid model spec")

// Parse builds a model from its compact textual form.
//
// A spec is one or more terms joined by "+", each term being
// "sill Name(range)", for example "1.0 Exp(2.0)" or
// "0.7 Sph(10.0) + 0.3 Nug(0.0)". Recognized names (case-insensitive):
// Exp, Sph, Gau, Nug. The nugget ignores its range argument but still
// requires one for syntactic uniformity.
//
// A single term yields the model itself; multiple terms yield a [Sum].
func Parse(spec string) (Model, error) {
	terms := strings.Split(spec, "+")
	models := make([]Model, 0, len(terms))
	for _, term := range terms {
		m, err := parseTerm(term)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	if len(models) == 1 {
		return models[0], nil
	}
	return Sum(models), nil
}

func parseTerm(term string) (Model, error) {
	term = strings.TrimSpace(term)
	fields := strings.Fields(term)
	if len(fields) != 2 {
		return nil, fmt.Errorf("%w: term %q must be \"sill Name(range)\"", ErrInvalidSpec, term)
	}

	sill, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad sill in term %q: %v", ErrInvalidSpec, term, err)
	}
	if sill < 0 {
		return nil, fmt.Errorf("%w: sill must be >= 0 in term %q", ErrInvalidSpec, term)
	}

	call := fields[1]
	open := strings.IndexByte(call, '(')
	if open < 1 || !strings.HasSuffix(call, ")") {
		return nil, fmt.Errorf("%w: term %q must end with \"Name(range)\"", ErrInvalidSpec, term)
	}
	name := strings.ToLower(call[:open])
	arg := call[open+1 : len(call)-1]

	rng, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad range in term %q: %v", ErrInvalidSpec, term, err)
	}

	switch name {
	case "nug":
		return Nugget{Sill: sill}, nil
	case "exp":
		if rng <= 0 {
			return nil, fmt.Errorf("%w: range must be > 0 in term %q", ErrInvalidSpec, term)
		}
		return Exponential{Sill: sill, Range: rng}, nil
	case "sph":
		if rng <= 0 {
			return nil, fmt.Errorf("%w: range must be > 0 in term %q", ErrInvalidSpec, term)
		}
		return Spherical{Sill: sill, Range: rng}, nil
	case "gau":
		if rng <= 0 {
			return nil, fmt.Errorf("%w: range must be > 0 in term %q", ErrInvalidSpec, term)
		}
		return Gaussian{Sill: sill, Range: rng}, nil
	default:
		return nil, fmt.Errorf("%w: unknown model %q in term %q", ErrInvalidSpec, call[:open], term)
	}
}
