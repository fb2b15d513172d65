// Package docs serves the OpenAPI description of the HTTP API.
// Regenerate with: swag init -g cmd/app/main.go
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
        "/users": {
            "get": {
                "tags": ["users"],
                "summary": "Get user by address",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Wallet address", "name": "address", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UserResponse"}}
                }
            },
            "post": {
                "tags": ["users"],
                "summary": "Create or touch user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Wallet address", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.TouchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TouchResponse"}},
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.TouchResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/whitelist/status": {
            "get": {
                "tags": ["whitelist"],
                "summary": "Whitelist status",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Wallet address", "name": "address", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.StatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/whitelist/tiers": {
            "get": {
                "tags": ["whitelist"],
                "summary": "Whitelist tiers",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TiersResponse"}}
                }
            }
        },
        "/whitelist/join": {
            "post": {
                "tags": ["whitelist"],
                "summary": "Join the whitelist",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Address and tier", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.JoinRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/auth/twitter": {
            "get": {
                "tags": ["twitter"],
                "summary": "Start Twitter authorization",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Wallet address", "name": "address", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AuthURLResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/auth/twitter/callback": {
            "get": {
                "tags": ["twitter"],
                "summary": "Twitter OAuth2 callback",
                "parameters": [
                    {"type": "string", "description": "Authorization code", "name": "code", "in": "query"},
                    {"type": "string", "description": "Session state", "name": "state", "in": "query"}
                ],
                "responses": {
                    "303": {"description": "See Other"}
                }
            }
        },
        "/chat": {
            "get": {
                "tags": ["chat"],
                "summary": "Recent chat messages",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ListResponse"}}
                }
            },
            "post": {
                "tags": ["chat"],
                "summary": "Post a chat message",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Message", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.PostRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PostResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/admin/whitelist": {
            "get": {
                "tags": ["admin"],
                "summary": "List whitelist applications",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Admin address (allowlist mode)", "name": "address", "in": "query"},
                    {"type": "string", "description": "Admin password (secret mode)", "name": "password", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ApplicationList"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/admin/whitelist/approve": {
            "post": {
                "tags": ["admin"],
                "summary": "Approve an application",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Target address, admin credential and optional tier", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ApproveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SuccessResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        },
        "/admin/whitelist/deny": {
            "post": {
                "tags": ["admin"],
                "summary": "Deny an application",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Target address and admin credential", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.DenyRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SuccessResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/middleware.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "middleware.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "error": {"type": "object", "properties": {"code": {"type": "string"}, "message": {"type": "string"}}},
                "timestamp": {"type": "string"},
                "request_id": {"type": "string"},
                "path": {"type": "string"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "lastSeen": {"type": "string"},
                "createdAt": {"type": "string"},
                "twitterConnected": {"type": "boolean"},
                "twitterId": {"type": "string"},
                "twitterUsername": {"type": "string"},
                "twitterName": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.UserResponse": {"type": "object", "properties": {"user": {"$ref": "#/definitions/models.User"}}},
        "models.TouchRequest": {"type": "object", "properties": {"address": {"type": "string"}, "username": {"type": "string"}}},
        "models.TouchResponse": {"type": "object", "properties": {"user": {"$ref": "#/definitions/models.User"}, "created": {"type": "boolean"}}},
        "models.StatusResponse": {
            "type": "object",
            "properties": {
                "isWhitelisted": {"type": "boolean"},
                "twitterConnected": {"type": "boolean"},
                "twitterUsername": {"type": "string"},
                "status": {"type": "string", "enum": ["", "pending", "approved", "denied"]},
                "appliedAt": {"type": "string"}
            }
        },
        "models.JoinRequest": {"type": "object", "properties": {"address": {"type": "string"}, "tier": {"type": "string"}}},
        "models.ApproveRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "adminAddress": {"type": "string"},
                "adminPassword": {"type": "string"},
                "tier": {"type": "string"}
            }
        },
        "models.DenyRequest": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "adminAddress": {"type": "string"},
                "adminPassword": {"type": "string"}
            }
        },
        "models.SuccessResponse": {"type": "object", "properties": {"success": {"type": "boolean"}}},
        "models.Application": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "status": {"type": "string"},
                "tier": {"type": "string"},
                "isWhitelisted": {"type": "boolean"},
                "twitterConnected": {"type": "boolean"},
                "twitterId": {"type": "string"},
                "twitterUsername": {"type": "string"},
                "twitterName": {"type": "string"},
                "appliedAt": {"type": "string"},
                "approvedAt": {"type": "string"},
                "approvedBy": {"type": "string"},
                "deniedAt": {"type": "string"},
                "deniedBy": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.ApplicationList": {"type": "object", "properties": {"applications": {"type": "array", "items": {"$ref": "#/definitions/models.Application"}}}},
        "models.TierResponse": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "price": {"type": "string"}, "priceWei": {"type": "string"}}
        },
        "models.TiersResponse": {"type": "object", "properties": {"tiers": {"type": "array", "items": {"$ref": "#/definitions/models.TierResponse"}}}},
        "models.AuthURLResponse": {"type": "object", "properties": {"url": {"type": "string"}}},
        "models.Message": {
            "type": "object",
            "properties": {"_id": {"type": "string"}, "sender": {"type": "string"}, "content": {"type": "string"}, "timestamp": {"type": "string"}}
        },
        "models.PostRequest": {"type": "object", "properties": {"sender": {"type": "string"}, "content": {"type": "string"}}},
        "models.PostResponse": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"$ref": "#/definitions/models.Message"}}},
        "models.ListResponse": {"type": "object", "properties": {"messages": {"type": "array", "items": {"$ref": "#/definitions/models.Message"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "SlapFlip API",
	Description:      "Backend for the SlapFlip game: wallet users, Twitter-gated whitelist and chat.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
