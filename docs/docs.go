// Package docs registers the Swagger specification served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@motorvault.com.au"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/users/lookup/{member_number}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Members"],
                "summary": "Lookup member",
                "parameters": [
                    {"type": "string", "name": "member_number", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/user/upgrade-subscription": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Members"],
                "summary": "Upgrade subscription",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/user/entitlements": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Members"],
                "summary": "Get entitlements",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/transfers/initiate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Transfers"],
                "summary": "Initiate transfer",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "403": {"description": "Forbidden"},
                    "409": {"description": "Conflict"},
                    "410": {"description": "Gone"}
                }
            }
        },
        "/transfers/pending": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Transfers"],
                "summary": "List pending transfers",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/transfers/incoming": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Transfers"],
                "summary": "List incoming transfers",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/transfers/quarantined": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Transfers"],
                "summary": "List quarantined vehicles",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/transfers/{id}/accept": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Transfers"],
                "summary": "Accept transfer",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/transfers/{id}/reject": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Transfers"],
                "summary": "Reject transfer",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/transfers/{id}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Transfers"],
                "summary": "Cancel transfer",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
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
	Host:             "api.motorvault.com.au",
	BasePath:         "/api/v1",
	Schemes:          []string{"https"},
	Title:            "MotorVault Transfer API",
	Description:      "Vehicle ownership transfer and quarantine lifecycle API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
