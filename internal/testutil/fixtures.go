// Package testutil holds generation requests shared by tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okra-platform/crudgen/internal/request"
)

// ProductRequest is a complete request covering the common field kinds.
const ProductRequest = `{
  "uid": "7f0c2a52-1f7c-4a8e-9d8b-3b8f7d7b9a10",
  "templateName": "default",
  "schema": {
    "title": "STRING",
    "email": "EMAIL",
    "quantity": "INTNUMBER",
    "price": "FLOATNUMBER",
    "inStock": "BOOLEAN",
    "releaseDate": "DATE",
    "size": "SELECT#S, M, L",
    "description": "DESCRIPTION",
    "gallery": "IMAGES"
  },
  "namingConvention": {
    "Users_1_000___": "Product",
    "users_1_000___": "product",
    "Users_2_000___": "Products",
    "users_2_000___": "products",
    "use_generate_folder": false,
    "bulk_action": ["size", "inStock"]
  }
}`

// MinimalRequest declares a single field and lets every variant be derived.
const MinimalRequest = `{
  "entityName": "course_batch",
  "schema": { "name": "STRING" },
  "namingConvention": { "use_generate_folder": true }
}`

// UnknownTagRequest declares a field whose tag is not in the catalog.
const UnknownTagRequest = `{
  "entityName": "Product",
  "schema": { "title": "STRING", "location": "GEOPOINT" },
  "namingConvention": { "use_generate_folder": false }
}`

// Request decodes raw with deterministic options and fails the test on error.
func Request(t testing.TB, raw string, opts ...request.Option) *request.Request {
	t.Helper()

	opts = append([]request.Option{request.WithUIDGenerator(func() string { return "test-uid" })}, opts...)
	req, err := request.Decode([]byte(raw), opts...)
	require.NoError(t, err)
	return req
}

// Product decodes ProductRequest.
func Product(t testing.TB) *request.Request {
	t.Helper()
	return Request(t, ProductRequest)
}
