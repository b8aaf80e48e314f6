// Package docs holds the OpenAPI description of the fixture API served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/{collection}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Collections"],
                "summary": "List records",
                "parameters": [
                    {"type": "string", "description": "assignments, performance-records, audit-logs or products", "name": "collection", "in": "path", "required": true},
                    {"type": "integer", "description": "Page number (default: 1)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default: 50)", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Free-text search", "name": "search", "in": "query"},
                    {"type": "string", "description": "Inclusive start date (YYYY-MM-DD)", "name": "startDate", "in": "query"},
                    {"type": "string", "description": "Inclusive end date (YYYY-MM-DD)", "name": "endDate", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Collections"],
                "summary": "Create a record",
                "parameters": [
                    {"type": "string", "description": "Collection", "name": "collection", "in": "path", "required": true},
                    {"description": "Record fields", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/{collection}/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Collections"],
                "summary": "Update a record",
                "parameters": [
                    {"type": "string", "description": "Collection", "name": "collection", "in": "path", "required": true},
                    {"type": "string", "description": "Record ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to update", "name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Collections"],
                "summary": "Delete a record",
                "parameters": [
                    {"type": "string", "description": "Collection", "name": "collection", "in": "path", "required": true},
                    {"type": "string", "description": "Record ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/products/{id}/toggle-status": {
            "patch": {
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Toggle product status",
                "parameters": [{"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}}}
            }
        },
        "/api/v1/products/{id}/image": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["Products"],
                "summary": "Remove a product image",
                "parameters": [{"type": "string", "description": "Product ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "409": {"description": "Product has no image", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/audit-logs/export": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["Audit Logs"],
                "summary": "Export audit logs",
                "responses": {"200": {"description": "CSV", "schema": {"type": "string"}}}
            }
        },
        "/api/v1/audit-logs/cleanup": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["Audit Logs"],
                "summary": "Delete old audit logs",
                "parameters": [{"type": "integer", "description": "Age in days", "name": "olderThan", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/health": {"get": {"produces": ["application/json"], "tags": ["Health"], "summary": "Health Check", "responses": {"200": {"description": "API is healthy"}}}},
        "/ready": {"get": {"produces": ["application/json"], "tags": ["Health"], "summary": "Readiness Check", "responses": {"200": {"description": "API is ready"}}}},
        "/live": {"get": {"produces": ["application/json"], "tags": ["Health"], "summary": "Liveness Check", "responses": {"200": {"description": "API is alive"}}}}
    },
    "definitions": {
        "response.Resp": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "errors": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "Admin Data Grid Fixture API",
	Description:      "In-memory admin collections (assignments, performance records, audit logs, products) for exercising the data grid client.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
