// Package docs holds the OpenAPI document of the mintaid HTTP API.
// Regenerate with `swag init -g cmd/mintaid/docs.go -o docs` after changing
// handler annotations.
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
        "/llm/generate": {
            "post": {
                "description": "Loads the model on first use, then runs one prompt. The reply is capped at 256 tokens and 8000 characters.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["llm"],
                "summary": "Generate text with the local model",
                "parameters": [
                    {
                        "description": "Prompt and optional model path",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.GenerateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.GenerateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/model/status": {
            "get": {
                "description": "Resolves the model path and reports whether the file exists. Never loads the model.",
                "produces": ["application/json"],
                "tags": ["model"],
                "summary": "Model file status",
                "parameters": [
                    {"type": "string", "description": "Explicit model path", "name": "path", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ModelStatus"}}
                }
            }
        },
        "/model/download": {
            "post": {
                "description": "Streams NDJSON progress lines, then a final line with done=true and the path.",
                "produces": ["application/x-ndjson"],
                "tags": ["model"],
                "summary": "Download the default model",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.DownloadProgress"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/model": {
            "delete": {
                "tags": ["model"],
                "summary": "Remove the default model file",
                "responses": {
                    "204": {"description": "No Content"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["model"],
                "summary": "List model files",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ModelsResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/runtime": {
            "get": {
                "produces": ["application/json"],
                "tags": ["model"],
                "summary": "Runtime status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.RuntimeStatus"}}
                }
            }
        }
    },
    "definitions": {
        "types.GenerateRequest": {
            "type": "object",
            "properties": {
                "prompt": {"type": "string", "example": "Summarise my spending this month."},
                "model_path": {"type": "string", "example": "/models/MintAI.gguf"}
            }
        },
        "types.GenerateResponse": {
            "type": "object",
            "properties": {"text": {"type": "string"}}
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Local model not found at /models/MintAI.gguf"},
                "code": {"type": "integer", "example": 404}
            }
        },
        "types.ModelStatus": {
            "type": "object",
            "properties": {
                "path": {"type": "string"},
                "exists": {"type": "boolean"}
            }
        },
        "types.ModelFile": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "path": {"type": "string"},
                "size_bytes": {"type": "integer"},
                "default": {"type": "boolean"}
            }
        },
        "types.ModelsResponse": {
            "type": "object",
            "properties": {
                "dir": {"type": "string"},
                "models": {"type": "array", "items": {"$ref": "#/definitions/types.ModelFile"}}
            }
        },
        "types.LoadInfo": {
            "type": "object",
            "properties": {
                "gpu_layers": {"type": "integer"},
                "main_gpu": {"type": "integer"},
                "fell_back": {"type": "boolean"}
            }
        },
        "types.RuntimeStatus": {
            "type": "object",
            "properties": {
                "backend": {"type": "string"},
                "accelerated": {"type": "boolean"},
                "loaded": {"type": "boolean"},
                "loaded_path": {"type": "string"},
                "load": {"$ref": "#/definitions/types.LoadInfo"},
                "waiting": {"type": "integer"},
                "inflight": {"type": "integer"},
                "model": {"$ref": "#/definitions/types.ModelStatus"},
                "expected_size_bytes": {"type": "integer", "example": 4370000000},
                "uptime_seconds": {"type": "integer"}
            }
        },
        "types.DownloadProgress": {
            "type": "object",
            "properties": {
                "loaded": {"type": "integer"},
                "total": {"type": "integer"},
                "done": {"type": "boolean"},
                "path": {"type": "string"},
                "error": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "mintaid API",
	Description:      "Local HTTP API for on-device text generation with a single GGUF model.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
