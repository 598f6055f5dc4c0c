// Package docs registers the OpenAPI description served under /v1/swagger/.
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
        "/projects": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "Get Projects",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/projects.View"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "Replace Repositories",
                "parameters": [
                    {"description": "Repositories in display order", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RepositoriesRequest"}}
                ],
                "responses": {
                    "200": {"description": "Unchanged", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.HTTPErrorResponse"}}
                }
            }
        },
        "/projects/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "Refresh Projects",
                "parameters": [
                    {"description": "Optional replacement list", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/models.RepositoriesRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.HTTPErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errors.HTTPErrorResponse"}}
                }
            }
        },
        "/theme": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Theme"],
                "summary": "Get Theme",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ThemeState"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Theme"],
                "summary": "Set Theme",
                "parameters": [
                    {"description": "New preference", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.PreferenceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ThemeState"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.HTTPErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Theme"],
                "summary": "Forget Theme",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.HTTPErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "errors.HTTPErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "integer"},
                "error_reference": {"type": "string"},
                "title": {"type": "string"},
                "detail": {"type": "string"},
                "resolution": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "handler.APIResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "data": {},
                "message": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "models.PreferenceRequest": {
            "type": "object",
            "properties": {
                "preference": {"type": "string", "enum": ["light", "dark", "system"]}
            }
        },
        "models.RepositoriesRequest": {
            "type": "object",
            "properties": {
                "repositories": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.ThemeState": {
            "type": "object",
            "properties": {
                "preference": {"type": "string"},
                "dark": {"type": "boolean"},
                "options": {"type": "array", "items": {"type": "string"}}
            }
        },
        "projects.Card": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "href": {"type": "string"},
                "description": {"type": "string"},
                "language": {"type": "string"},
                "language_color": {"type": "string"},
                "license": {"type": "string"},
                "stars": {"type": "integer"},
                "forks": {"type": "integer"},
                "updated": {"type": "string"},
                "show_data": {"type": "boolean"}
            }
        },
        "projects.View": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "enum": ["loading", "error", "loaded"]},
                "placeholders": {"type": "integer"},
                "cards": {"type": "array", "items": {"$ref": "#/definitions/projects.Card"}},
                "message": {"type": "string"},
                "hint": {"type": "string"},
                "repositories": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8081",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Portfolio Cards Service",
	Description:      "Project cards fetched from GitHub and per-visitor theme preferences.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
