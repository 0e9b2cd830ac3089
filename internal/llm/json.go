package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

var errNotObject = errors.New("response is not a JSON object")

// ExtractJSON decodes text as a JSON object. When the whole text is not valid
// JSON, the span from the first '{' to the last '}' is tried instead, which
// recovers objects wrapped in prose or markdown fences.
func ExtractJSON(text string) (map[string]any, error) {
	obj, err := decodeObject(text)
	if err == nil {
		return obj, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		var spanObj map[string]any
		spanObj, err = decodeObject(text[start : end+1])
		if err == nil {
			return spanObj, nil
		}
	}
	return nil, newParseError(text, err)
}

func decodeObject(s string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errNotObject
	}
	return obj, nil
}
