// Package schemas embeds the JSON Schemas for the data files the service reads.
package schemas

import _ "embed"

// Catalog is the JSON Schema for the job catalog dataset.
//
//go:embed catalog.schema.json
var Catalog string

// UserSkills is the JSON Schema for offline skill lists passed to the CLI.
//
//go:embed user_skills.schema.json
var UserSkills string
