// Package docs registers the OpenAPI document served at /api-docs.
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
        "/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {
                        "description": "Account details",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.registerRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.userResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/apierror.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apierror.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            }
        },
        "/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apierror.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            }
        },
        "/projects": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "List projects",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.projectResponse"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Create a project",
                "parameters": [
                    {
                        "description": "Project details",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.createProjectRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.projectResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apierror.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            }
        },
        "/projects/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Get a project",
                "parameters": [
                    {"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.projectResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Update a project",
                "parameters": [
                    {"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Fields to change",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.updateProjectRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.projectResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierror.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apierror.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["projects"],
                "summary": "Delete a project",
                "parameters": [
                    {"type": "integer", "description": "Project ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apierror.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apierror.Response"}}
                }
            }
        }
    },
    "definitions": {
        "apierror.Response": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "required": ["identifier", "password"],
            "properties": {
                "identifier": {"type": "string", "maxLength": 255},
                "password": {"type": "string"},
                "registrationSecret": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["identifier", "password"],
            "properties": {
                "identifier": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "identifier": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {
                "subject": {"$ref": "#/definitions/handler.userResponse"},
                "token": {"type": "string"},
                "expiresAt": {"type": "string"}
            }
        },
        "handler.createProjectRequest": {
            "type": "object",
            "required": ["description", "name", "technologies", "type"],
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "description": {"type": "string"},
                "thumbnailUrl": {"type": "string"},
                "repositoryUrl": {"type": "string"},
                "siteUrl": {"type": "string"},
                "technologies": {"type": "array", "minItems": 1, "items": {"type": "string"}},
                "type": {"type": "string", "enum": ["web", "mobile", "desktop", "other"]}
            }
        },
        "handler.updateProjectRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "description": {"type": "string"},
                "thumbnailUrl": {"type": "string"},
                "repositoryUrl": {"type": "string"},
                "siteUrl": {"type": "string"},
                "technologies": {"type": "array", "minItems": 1, "items": {"type": "string"}},
                "type": {"type": "string", "enum": ["web", "mobile", "desktop", "other"]}
            }
        },
        "handler.projectResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "thumbnailUrl": {"type": "string"},
                "repositoryUrl": {"type": "string"},
                "siteUrl": {"type": "string"},
                "technologies": {"type": "array", "items": {"type": "string"}},
                "type": {"type": "string"},
                "createdBy": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Portfolio API",
	Description:      "Portfolio projects with bearer-token authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
