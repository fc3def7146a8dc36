package config

import (
	"github.com/google/jsonschema-go/jsonschema"
)

// Schema returns a JSON Schema (Draft 7) describing the configuration
// document, for editor validation and tooling.
func Schema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Schema:      "http://json-schema.org/draft-07/schema#",
		Title:       "chipper logger configuration",
		Description: "Tag-subscribed handlers, the default formatter/target pair, and the delivery policy.",
		Type:        "object",
		Properties: map[string]*jsonschema.Schema{
			"handlers": {
				Type:        "array",
				Description: "Handlers evaluated in declaration order on every emission.",
				Items:       handlerSchema(),
			},
			"default": {
				Type:        "object",
				Description: "Overrides for the default formatter/target pair.",
				Properties: map[string]*jsonschema.Schema{
					"target":    targetSchema(),
					"formatter": formatterSchema(),
				},
				AdditionalProperties: falseSchema(),
			},
			"delivery": {
				Type:        "string",
				Description: "When the default pair fires: for every emission, or only for unmatched ones.",
				Enum:        []any{"always", "unmatched"},
			},
		},
		AdditionalProperties: falseSchema(),
	}
}

func handlerSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:     "object",
		Required: []string{"name", "tags"},
		Properties: map[string]*jsonschema.Schema{
			"name": {
				Type:        "string",
				Description: "Diagnostic name; not used in matching.",
			},
			"tags": {
				Type:        "array",
				Description: "Subscription tag set; an emission sharing any tag matches.",
				Items:       &jsonschema.Schema{Type: "string"},
				MinItems:    jsonschema.Ptr(1),
			},
			"target":    targetSchema(),
			"formatter": formatterSchema(),
		},
		AdditionalProperties: falseSchema(),
	}
}

func targetSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "object",
		Description: "Sink destinations; multiple may be set, fanning the same line to each.",
		Properties: map[string]*jsonschema.Schema{
			"filename": {Type: "string", Description: "File path opened for appending."},
			"stdout":   {Type: "boolean"},
			"stderr":   {Type: "boolean"},
		},
		AdditionalProperties: falseSchema(),
	}
}

func formatterSchema() *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema)

	for _, name := range []string{
		"template",
		"tags_template",
		"tag_template",
		"tag_delimiter",
		"date_template",
		"date_format",
		"time_template",
		"time_format",
		"datetime_template",
		"file_template",
		"line_template",
		"module_template",
		"trace_template",
	} {
		props[name] = &jsonschema.Schema{Type: "string"}
	}

	return &jsonschema.Schema{
		Type:                 "object",
		Description:          "Rendering overrides; absent options keep their defaults.",
		Properties:           props,
		AdditionalProperties: falseSchema(),
	}
}

// falseSchema validates nothing, rejecting unknown properties.
func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
