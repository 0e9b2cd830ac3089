package analyzer

import (
	"log/slog"
	"math"
	"strings"

	"github.com/davetashner/bigo/internal/model"
)

const (
	unknown           = "Unknown"
	defaultSummary    = "Analysis completed"
	defaultConfidence = 0.8
)

// parseResult builds a Result from the model's decoded JSON. Missing fields
// get defaults; malformed function entries are dropped one by one.
func parseResult(obj map[string]any) *model.Result {
	r := &model.Result{
		Language:                stringOr(obj, "language", unknown),
		OverallTimeComplexity:   stringOr(obj, "overall_time_complexity", unknown),
		OverallSpaceComplexity:  stringOr(obj, "overall_space_complexity", unknown),
		Summary:                 stringOr(obj, "summary", defaultSummary),
		DetailedExplanation:     stringOr(obj, "detailed_explanation", ""),
		Functions:               []model.FunctionComplexity{},
		OptimizationSuggestions: stringSlice(obj["optimization_suggestions"]),
		ConfidenceScore:         confidence(obj["confidence_score"]),
	}

	entries, _ := obj["functions"].([]any)
	for i, raw := range entries {
		fn, ok := parseFunction(raw)
		if !ok {
			slog.Debug("dropping malformed function entry", "index", i)
			continue
		}
		r.Functions = append(r.Functions, fn)
	}
	return r
}

func parseFunction(raw any) (model.FunctionComplexity, bool) {
	var fn model.FunctionComplexity
	obj, ok := raw.(map[string]any)
	if !ok {
		return fn, false
	}

	fn.Name = "unknown"
	if v, present := obj["name"]; present && v != nil {
		s, ok := v.(string)
		if !ok {
			return fn, false
		}
		fn.Name = s
	}
	fn.TimeComplexity = stringOr(obj, "time_complexity", unknown)
	fn.SpaceComplexity = stringOr(obj, "space_complexity", unknown)
	fn.Explanation = stringOr(obj, "explanation", "")

	if fn.LineStart, ok = optionalLine(obj["line_start"]); !ok {
		return fn, false
	}
	if fn.LineEnd, ok = optionalLine(obj["line_end"]); !ok {
		return fn, false
	}
	if fn.LineStart != nil && fn.LineEnd != nil && *fn.LineEnd < *fn.LineStart {
		return fn, false
	}

	if v, present := obj["variables"]; present && v != nil {
		vars, ok := v.(map[string]any)
		if !ok {
			return fn, false
		}
		fn.Variables = make(map[string]string, len(vars))
		for k, val := range vars {
			s, ok := val.(string)
			if !ok {
				return fn, false
			}
			fn.Variables[k] = s
		}
	}

	fn.BestCase = optionalString(obj["best_case"])
	fn.WorstCase = optionalString(obj["worst_case"])
	fn.AverageCase = optionalString(obj["average_case"])
	return fn, true
}

// optionalLine accepts a missing/null value or a positive whole number.
func optionalLine(v any) (*int, bool) {
	if v == nil {
		return nil, true
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || f < 1 || f > math.MaxInt32 {
		return nil, false
	}
	n := int(f)
	return &n, true
}

func optionalString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

func stringOr(obj map[string]any, key, def string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return def
}

func stringSlice(v any) []string {
	out := []string{}
	items, _ := v.([]any)
	for _, it := range items {
		if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// confidence reads confidence_score, defaulting to 0.8 and clamping to [0,1].
func confidence(v any) float64 {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) {
		f = defaultConfidence
	}
	return math.Min(1, math.Max(0, f))
}

// parseListing builds a FunctionListing, skipping entries without a name.
func parseListing(obj map[string]any) *model.FunctionListing {
	l := &model.FunctionListing{
		Language:  stringOr(obj, "language", unknown),
		Functions: []model.ExtractedFunction{},
	}
	entries, _ := obj["functions"].([]any)
	for _, raw := range entries {
		e, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name, ok := e["name"].(string)
		if !ok || name == "" {
			continue
		}
		fn := model.ExtractedFunction{Name: name, Code: stringOr(e, "code", "")}
		if p, ok := optionalLine(e["line_start"]); ok && p != nil {
			fn.LineStart = *p
		}
		if p, ok := optionalLine(e["line_end"]); ok && p != nil {
			fn.LineEnd = *p
		}
		l.Functions = append(l.Functions, fn)
	}
	return l
}
