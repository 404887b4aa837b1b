package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("validation: schema invalid")
	ErrSchemaValidation = errors.New("validation: front matter does not match schema")
)

// Issue is a single schema violation found in a front matter block.
type Issue struct {
	Location string
	Message  string
}

func (i Issue) String() string {
	location := strings.TrimSpace(i.Location)
	if location == "" {
		location = "#"
	} else if !strings.HasPrefix(location, "#") {
		location = "#" + location
	}
	if i.Message == "" {
		return location
	}
	return fmt.Sprintf("%s: %s", location, i.Message)
}

// FrontMatterError wraps the issues reported for one document.
type FrontMatterError struct {
	Issues []Issue
}

func (e *FrontMatterError) Error() string {
	if len(e.Issues) == 0 {
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return strings.Join(parts, "; ")
}

func (e *FrontMatterError) Unwrap() error {
	return ErrSchemaValidation
}

// PostFrontMatterSchema returns the JSON schema post front matter is checked
// against. Unknown keys are allowed.
func PostFrontMatterSchema() map[string]any {
	stringProp := func() map[string]any {
		return map[string]any{"type": "string"}
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       stringProp(),
			"description": stringProp(),
			"date":        stringProp(),
			"readTime":    stringProp(),
			"image":       stringProp(),
			"slug": map[string]any{
				"type":    "string",
				"pattern": "^[^/]*$",
			},
		},
		"additionalProperties": true,
	}
}

// Validator checks decoded front matter against a compiled schema. It is
// safe for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles schema. A nil schema uses PostFrontMatterSchema.
func NewValidator(schema map[string]any) (*Validator, error) {
	if schema == nil {
		schema = PostFrontMatterSchema()
	}
	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &Validator{schema: compiled}, nil
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
	defaultErr       error
)

// DefaultValidator returns the shared validator for PostFrontMatterSchema.
func DefaultValidator() (*Validator, error) {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = NewValidator(nil)
	})
	return defaultValidator, defaultErr
}

// Validate returns nil when raw satisfies the schema and a
// *FrontMatterError otherwise. YAML specific values such as timestamps are
// passed through JSON first so the validator only sees JSON types.
func (v *Validator) Validate(raw map[string]any) error {
	if v == nil || v.schema == nil {
		return nil
	}
	payload, err := normalizePayload(raw)
	if err != nil {
		return &FrontMatterError{Issues: []Issue{{Message: err.Error()}}}
	}
	if err := v.schema.Validate(payload); err != nil {
		return &FrontMatterError{Issues: Issues(err)}
	}
	return nil
}

// Check validates raw and returns the issues found, if any.
func (v *Validator) Check(raw map[string]any) []Issue {
	return Issues(v.Validate(raw))
}

// Issues flattens err into a list of issues.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var fmErr *FrontMatterError
	if errors.As(err, &fmErr) && fmErr != nil {
		return fmErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectIssues(validationErr)
	}
	return []Issue{{Message: err.Error()}}
}

func normalizePayload(raw map[string]any) (any, error) {
	if raw == nil {
		return map[string]any{}, nil
	}
	encoded, err := json.Marshal(JSONCompatible(raw))
	if err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var out any
	if err := decoder.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode front matter: %w", err)
	}
	return out, nil
}

// JSONCompatible rewrites map[any]any values produced by YAML decoders into
// map[string]any so they can be JSON encoded.
func JSONCompatible(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[key] = JSONCompatible(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[fmt.Sprint(key)] = JSONCompatible(val)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, val := range typed {
			out[i] = JSONCompatible(val)
		}
		return out
	default:
		return value
	}
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("frontmatter.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("frontmatter.json")
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
