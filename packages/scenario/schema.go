package scenario

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "checks"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "checks": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/step"}},
    "responses": {"type": "array", "items": {"$ref": "#/definitions/response"}}
  },
  "definitions": {
    "step": {
      "type": "object",
      "additionalProperties": false,
      "oneOf": [
        {"required": ["kind"]},
        {"required": ["query"]}
      ],
      "properties": {
        "kind": {
          "type": "string",
          "enum": [
            "exists", "doesntExist", "visible", "notVisible",
            "text", "doesntHaveText", "val", "css", "width", "height",
            "selected", "notSelected", "enabled", "disabled",
            "attribute", "numberOfElements", "numberOfVisibleElements",
            "cookie", "httpStatus", "title", "doesntHaveTitle",
            "url", "doesntHaveUrl", "dialogText", "dialogDoesntHaveText"
          ]
        },
        "selector": {"type": "string"},
        "property": {"type": "string"},
        "name": {"type": "string"},
        "expected": {},
        "message": {"type": "string"},
        "attach": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/attach"}},
        "query": {"$ref": "#/definitions/block"}
      }
    },
    "block": {
      "type": "object",
      "additionalProperties": false,
      "required": ["selector", "checks"],
      "properties": {
        "selector": {"type": "string", "minLength": 1},
        "checks": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/step"}}
      }
    },
    "attach": {
      "type": "object",
      "additionalProperties": false,
      "required": ["op"],
      "properties": {
        "op": {"type": "string", "enum": ["is", "not", "between", "gt", "gte", "lt", "lte"]},
        "expected": {},
        "message": {"type": "string"}
      }
    },
    "response": {
      "type": "object",
      "additionalProperties": false,
      "required": ["key", "value"],
      "properties": {
        "key": {"type": "string", "minLength": 1},
        "selector": {"type": "string"},
        "value": {}
      }
    }
  }
}`

// Validate checks a YAML scenario document against the embedded
// schema without unmarshaling it into the typed form.
func Validate(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse scenario: %w", err)
	}

	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(errs, "; "))
}
