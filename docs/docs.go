// Package docs registers the OpenAPI description of the web console with
// swag so echo-swagger can serve it under /swagger/.
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
        "/": {"get": {"tags": ["auth"], "summary": "Current session state and landing dashboard", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/login": {
            "get": {"tags": ["auth"], "summary": "Login entry point", "produces": ["text/html"], "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["auth"],
                "summary": "Log in against the backend",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/logout": {"post": {"tags": ["auth"], "summary": "Log out", "responses": {"204": {"description": "No Content"}}}},
        "/me": {"get": {"tags": ["auth"], "summary": "Current user", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/rooms": {
            "get": {"tags": ["rooms"], "summary": "List rooms", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["rooms"], "summary": "Create a room", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/api/rooms/{id}": {
            "get": {"tags": ["rooms"], "summary": "Get a room", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["rooms"], "summary": "Delete a room", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/rooms/{id}/export-pdf": {"get": {"tags": ["rooms"], "summary": "Download the room's communication report", "produces": ["application/pdf"], "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/rooms/{id}/{field}": {"put": {"tags": ["rooms"], "summary": "Update one room status field", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}, {"in": "path", "name": "field", "type": "string", "required": true}, {"in": "query", "name": "value", "type": "string"}], "responses": {"200": {"description": "OK"}}}},
        "/api/quality-issues": {
            "get": {"tags": ["quality-issues"], "summary": "List quality issues", "parameters": [{"in": "query", "name": "room_id", "type": "integer"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["quality-issues"], "summary": "Record a quality issue", "responses": {"200": {"description": "OK"}}}
        },
        "/api/quality-issues/{id}": {"put": {"tags": ["quality-issues"], "summary": "Update a quality issue", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/quality-issues/{id}/accept": {"put": {"tags": ["quality-issues"], "summary": "Accept a fixed quality issue", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/communications": {
            "get": {"tags": ["communications"], "summary": "List communication records", "parameters": [{"in": "query", "name": "room_id", "type": "integer"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["communications"], "summary": "Record a customer communication", "responses": {"200": {"description": "OK"}}}
        },
        "/api/communications/{id}": {"put": {"tags": ["communications"], "summary": "Mark a communication as implemented", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/users": {
            "get": {"tags": ["users"], "summary": "List users", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "post": {"tags": ["users"], "summary": "Create a user", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/api/users/{id}": {"delete": {"tags": ["users"], "summary": "Delete a user", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/users/{id}/reset-password": {"put": {"tags": ["users"], "summary": "Reset a user's password to a new initial password", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/room-assignments": {
            "get": {"tags": ["users"], "summary": "List room assignments", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["users"], "summary": "Assign a room to a user", "responses": {"200": {"description": "OK"}}}
        },
        "/api/room-assignments/{id}": {"delete": {"tags": ["users"], "summary": "Remove a room assignment", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/admin/summary": {"get": {"tags": ["admin"], "summary": "Per-room summary for administrators", "parameters": [{"in": "query", "name": "building_unit", "type": "string"}], "responses": {"200": {"description": "OK"}}}},
        "/api/admin/rooms/{id}/clear-content": {"delete": {"tags": ["admin"], "summary": "Clear one room's records, keeping the room and its assignments", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/admin/rooms/clear-all-content": {"delete": {"tags": ["admin"], "summary": "Clear the records of every room", "responses": {"200": {"description": "OK"}}}},
        "/api/customers": {"post": {"tags": ["customers"], "summary": "Create a customer", "responses": {"200": {"description": "OK"}}}},
        "/api/customers/room/{room_id}": {"get": {"tags": ["customers"], "summary": "Customer of a room", "parameters": [{"in": "path", "name": "room_id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/api/customers/{id}": {
            "put": {"tags": ["customers"], "summary": "Update a customer", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["customers"], "summary": "Delete a customer", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/upload-image": {"post": {"tags": ["files"], "summary": "Upload an image", "consumes": ["multipart/form-data"], "parameters": [{"in": "formData", "name": "file", "type": "file", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/health": {"get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}},
        "/health/ready": {"get": {"tags": ["health"], "summary": "Readiness probe (backend and token store)", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}}
    },
    "definitions": {
        "loginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Project Dashboard console",
	Description:      "Session-aware web console in front of the property-management backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
