// Package validation holds the declarative request schemas for every resource
// and the generic interpreter that checks decoded JSON values against them.
//
// A Schema is plain data: an ordered list of fields, each with a JSON kind,
// presence rules and a go-playground/validator tag string. Validate walks the
// schema and produces stable, human-readable messages whose wording can be
// overridden per field.
package validation
