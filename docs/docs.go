// Package docs registers the OpenAPI description of the HTTP API with swag.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/health.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/health.Response"}}
                }
            }
        },
        "/api/v1/ping": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Ping",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/usage": {
            "get": {
                "produces": ["application/json"],
                "tags": ["usage"],
                "summary": "Get usage",
                "parameters": [
                    {"type": "string", "description": "Anonymous session id", "name": "X-Session-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/usage.UsageResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/usage/stream": {
            "get": {
                "tags": ["usage"],
                "summary": "Live usage feed",
                "parameters": [
                    {"type": "string", "description": "JWT for signed-in users", "name": "token", "in": "query"},
                    {"type": "string", "description": "Anonymous session id", "name": "session_id", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/prompts": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["prompts"],
                "summary": "Submit a prompt",
                "parameters": [
                    {"description": "Prompt", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/prompts.SubmitRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/prompts.SubmitResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "402": {"description": "Payment Required", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/recommendations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["home"],
                "summary": "Suggested prompts",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/home.RecommendationsResponse"}}}
            }
        },
        "/api/v1/sidebar": {
            "get": {
                "produces": ["application/json"],
                "tags": ["home"],
                "summary": "Sidebar destinations",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/notifications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "List notifications",
                "parameters": [
                    {"type": "integer", "default": 50, "description": "Max results (1-100)", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Results to skip", "name": "offset", "in": "query"},
                    {"type": "boolean", "description": "Only unread", "name": "unread", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/notifications/read-all": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Mark all notifications read",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/v1/notifications/{id}/read": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Mark a notification read",
                "parameters": [
                    {"type": "string", "description": "Notification ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/providers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "List sign-in providers",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/auth/{provider}": {
            "get": {
                "tags": ["auth"],
                "summary": "Start OAuth authentication",
                "parameters": [
                    {"enum": ["google", "github", "apple"], "type": "string", "description": "OAuth provider", "name": "provider", "in": "path", "required": true}
                ],
                "responses": {"307": {"description": "Redirect to OAuth provider"}}
            }
        },
        "/api/v1/auth/{provider}/callback": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "OAuth callback",
                "parameters": [
                    {"enum": ["google", "github", "apple"], "type": "string", "description": "OAuth provider", "name": "provider", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Get current user",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/v1/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"},
                "redirect": {"type": "string"}
            }
        },
        "health.Response": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "service": {"type": "string"},
                "version": {"type": "string"},
                "checks": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "usage.View": {
            "type": "object",
            "properties": {
                "tier": {"type": "string", "enum": ["free", "pro", "enterprise"]},
                "remaining_tokens": {"type": "integer"},
                "unlimited": {"type": "boolean"},
                "quota_low": {"type": "boolean"}
            }
        },
        "usage.UsageResponse": {
            "type": "object",
            "properties": {
                "usage": {"$ref": "#/definitions/usage.View"},
                "store": {"type": "string", "enum": ["profile", "local"]},
                "signed_in": {"type": "boolean"},
                "session_id": {"type": "string"}
            }
        },
        "prompts.SubmitRequest": {
            "type": "object",
            "properties": {
                "prompt": {"type": "string", "maxLength": 10000}
            }
        },
        "prompts.SubmitResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["accepted", "ignored"]},
                "redirect": {"type": "string"},
                "state": {"type": "object", "properties": {"prompt": {"type": "string"}}},
                "usage": {"$ref": "#/definitions/usage.View"}
            }
        },
        "home.RecommendationsResponse": {
            "type": "object",
            "properties": {
                "recommendations": {"type": "array", "items": {"type": "string"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT token for authenticated requests. Format: Bearer {token}",
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
	Title:            "Website Builder API",
	Description:      "Prompt submission and free-tier usage tracking for the website builder home page",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
