package report

// reportDefs holds the definitions shared by both output schemas.
const reportDefs = `
  "$defs": {
    "Report": {
      "type": "object",
      "required": ["analysis", "violations"],
      "additionalProperties": false,
      "properties": {
        "file": { "type": "string" },
        "analysis": { "enum": ["full", "fallback"] },
        "violations": {
          "type": "array",
          "items": { "$ref": "#/$defs/Violation" }
        }
      }
    },
    "Violation": {
      "type": "object",
      "required": ["category", "severity", "message", "details"],
      "additionalProperties": false,
      "properties": {
        "category": {
          "enum": [
            "WEAKENED_ASSERTIONS",
            "REMOVED_TEST_LOGIC",
            "TEST_AVOIDANCE",
            "EXPECTATION_ADJUSTMENT",
            "EXCESSIVE_MOCKING"
          ]
        },
        "severity": { "enum": ["CRITICAL", "HIGH"] },
        "message": { "type": "string" },
        "details": {
          "type": "array",
          "minItems": 1,
          "items": { "$ref": "#/$defs/Detail" }
        }
      }
    },
    "Detail": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "line": { "type": "integer", "minimum": 1 },
        "old": { "type": "string" },
        "new": { "type": "string" },
        "removed": { "type": "string" },
        "reason": { "type": "string" },
        "impact": { "type": "string" },
        "pattern": { "type": "string" },
        "added": { "type": "integer", "minimum": 1 }
      }
    }
  }`

// Schema is the JSON Schema (Draft 2020-12) for a single detection report
// as written by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/abdidvp/testguard/report.schema.json",
  "title": "testguard detection report",
  "description": "Output schema for testguard detect",
  "$ref": "#/$defs/Report",` + reportDefs + `
}`

// CheckSchema is the JSON Schema for testguard check --json as written by
// WriteCheckJSON.
const CheckSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/abdidvp/testguard/check.schema.json",
  "title": "testguard check report",
  "description": "Output schema for testguard check --json",
  "type": "object",
  "required": ["version", "files"],
  "additionalProperties": false,
  "properties": {
    "version": { "type": "string" },
    "files": {
      "type": "array",
      "items": { "$ref": "#/$defs/Report" }
    }
  },` + reportDefs + `
}`
