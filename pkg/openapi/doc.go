// Package openapi assembles registry references into an OpenAPI 3 document
// using kin-openapi. Object schemas become entries under
// components/schemas and references become "$ref" pointers to them.
package openapi
