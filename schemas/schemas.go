// Package schemas holds the embedded JSON Schemas for menuqa input files.
package schemas

import _ "embed"

// ItemsSchemaJSON is the schema for a menu items file: the JSON array of
// merged items the OCR pipeline emits.
//
//go:embed items.schema.json
var ItemsSchemaJSON string
