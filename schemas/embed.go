// Package schemas embeds the JSON Schemas for the catalog files and exports.
package schemas

import _ "embed"

//go:embed friends.schema.json
var Friends string

//go:embed foods.schema.json
var Foods string

//go:embed recommendations.schema.json
var Recommendations string
