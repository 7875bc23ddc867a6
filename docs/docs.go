// Package docs holds the OpenAPI description served under /swagger. It is
// maintained by hand in the layout swag emits; every route registered under
// /api must have an entry here.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "http://swagger.io/terms/",
        "contact": {
            "name": "API Support",
            "url": "http://www.swagger.io/support",
            "email": "support@swagger.io"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service and disk health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.HealthResponse"}}
                }
            }
        },
        "/save/prepare": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["save"],
                "summary": "Validate, price and reserve an estimate for saving",
                "parameters": [
                    {"in": "body", "name": "estimate", "required": true, "schema": {"$ref": "#/definitions/request.EstimateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.PrepareResponse"}},
                    "409": {"description": "Version conflict", "schema": {"$ref": "#/definitions/pkg.HTTPError"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/pkg.HTTPError"}},
                    "503": {"description": "Timed out", "schema": {"$ref": "#/definitions/pkg.HTTPError"}},
                    "507": {"description": "Insufficient storage", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            }
        },
        "/save/commit": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["save"],
                "summary": "Back up the stored estimate and write the prepared one",
                "parameters": [
                    {"in": "body", "name": "transaction", "required": true, "schema": {"$ref": "#/definitions/request.TransactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.CommitResponse"}},
                    "404": {"description": "Unknown or expired transaction", "schema": {"$ref": "#/definitions/pkg.HTTPError"}},
                    "409": {"description": "Version conflict", "schema": {"$ref": "#/definitions/pkg.HTTPError"}},
                    "503": {"description": "Timed out", "schema": {"$ref": "#/definitions/pkg.HTTPError"}},
                    "507": {"description": "Insufficient storage", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            }
        },
        "/save/rollback": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["save"],
                "summary": "Abandon a prepared transaction",
                "parameters": [
                    {"in": "body", "name": "transaction", "required": true, "schema": {"$ref": "#/definitions/request.TransactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.RollbackResponse"}}
                }
            }
        },
        "/estimates": {
            "get": {
                "produces": ["application/json"],
                "tags": ["estimates"],
                "summary": "List estimates, most recently updated first",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/response.EstimateSummaryResponse"}}}
                }
            }
        },
        "/estimates/batch": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["estimates"],
                "summary": "Save several estimates entirely or not at all",
                "parameters": [
                    {"in": "body", "name": "batch", "required": true, "schema": {"$ref": "#/definitions/request.BatchSaveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.BatchSaveResponse"}},
                    "409": {"description": "Version conflict", "schema": {"$ref": "#/definitions/pkg.HTTPError"}},
                    "422": {"description": "Invalid items", "schema": {"$ref": "#/definitions/pkg.HTTPError"}},
                    "507": {"description": "Insufficient storage", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            }
        },
        "/estimates/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["estimates"],
                "summary": "Get an estimate with its computed breakdown",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.EstimateResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            },
            "delete": {
                "tags": ["estimates"],
                "summary": "Delete an estimate; its final version is backed up first",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            }
        },
        "/estimates/{id}/client": {
            "get": {
                "produces": ["application/json"],
                "tags": ["estimates"],
                "summary": "Client-facing view without internal comments or margins",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.ClientEstimateResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            }
        },
        "/estimates/{id}/autosave": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["estimates"],
                "summary": "Schedule a debounced save",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "estimate", "required": true, "schema": {"$ref": "#/definitions/request.EstimateRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/response.AutosaveResponse"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            }
        },
        "/pricing/calculate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pricing"],
                "summary": "Price services without storing anything",
                "parameters": [
                    {"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/request.CalculateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.BreakdownResponse"}},
                    "422": {"description": "Validation failed", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            }
        },
        "/backups/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["backups"],
                "summary": "List the backups of an estimate, oldest first",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.BackupListResponse"}}
                }
            }
        },
        "/backups/{id}/restore/{version}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["backups"],
                "summary": "Commit a backup as the next version",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "version", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.CommitResponse"}},
                    "404": {"description": "Backup not found", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            }
        },
        "/settings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Get the stored settings object",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SettingsResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["settings"],
                "summary": "Replace the settings object",
                "parameters": [
                    {"in": "body", "name": "settings", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SettingsResponse"}},
                    "422": {"description": "Not a JSON object", "schema": {"$ref": "#/definitions/pkg.HTTPError"}},
                    "507": {"description": "Insufficient storage", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            }
        },
        "/export/all": {
            "get": {
                "produces": ["application/json"],
                "tags": ["transfer"],
                "summary": "Export every estimate, catalog and backup",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entities.TransferPayload"}}
                }
            }
        },
        "/import/all": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transfer"],
                "summary": "Import a payload entirely or not at all",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/entities.TransferPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.ImportResponse"}},
                    "409": {"description": "Version conflict", "schema": {"$ref": "#/definitions/pkg.HTTPError"}},
                    "422": {"description": "Invalid records", "schema": {"$ref": "#/definitions/pkg.HTTPError"}},
                    "507": {"description": "Insufficient storage", "schema": {"$ref": "#/definitions/pkg.HTTPError"}}
                }
            }
        }
    },
    "definitions": {
        "pkg.HTTPError": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {}
            }
        },
        "request.TransactionRequest": {
            "type": "object",
            "required": ["transaction_id"],
            "properties": {"transaction_id": {"type": "string"}}
        },
        "request.ServiceRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "company": {"type": "string"},
                "day": {"type": "integer"},
                "price": {"type": "number"},
                "is_discount": {"type": "boolean"},
                "markup_pct": {"type": "number"}
            }
        },
        "request.PricingRequest": {
            "type": "object",
            "properties": {
                "hidden_markup_pct": {"type": "number"},
                "partner_commission_pct": {"type": "number"},
                "currency": {"type": "string"}
            }
        },
        "request.EstimateRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "customer": {
                    "type": "object",
                    "properties": {
                        "name": {"type": "string"},
                        "phone": {"type": "string"},
                        "email": {"type": "string"}
                    }
                },
                "pax": {"type": "integer"},
                "tour_start": {"type": "string", "example": "2026-01-10"},
                "tour_end": {"type": "string", "example": "2026-01-15"},
                "services": {"type": "array", "items": {"$ref": "#/definitions/request.ServiceRequest"}},
                "pricing": {"$ref": "#/definitions/request.PricingRequest"},
                "internal_comments": {"type": "string"},
                "version": {"type": "string", "example": "1.0.0"}
            }
        },
        "request.BatchSaveRequest": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {"type": "string"},
                            "data": {"$ref": "#/definitions/request.EstimateRequest"}
                        }
                    }
                }
            }
        },
        "request.CalculateRequest": {
            "type": "object",
            "properties": {
                "services": {"type": "array", "items": {"$ref": "#/definitions/request.ServiceRequest"}},
                "pricing": {"$ref": "#/definitions/request.PricingRequest"},
                "pax": {"type": "integer"}
            }
        },
        "response.BreakdownResponse": {
            "type": "object",
            "properties": {
                "lines": {"type": "array", "items": {"type": "object"}},
                "subtotal": {"type": "number"},
                "hidden_margin_amount": {"type": "number"},
                "partner_commission_amount": {"type": "number"},
                "client_total": {"type": "number"},
                "cost_basis": {"type": "number"},
                "our_profit": {"type": "number"},
                "per_pax": {"type": "number"},
                "pax": {"type": "integer"},
                "currency": {"type": "string"}
            }
        },
        "response.PrepareResponse": {
            "type": "object",
            "properties": {
                "transaction_id": {"type": "string"},
                "estimate_id": {"type": "string"},
                "state": {"type": "string"},
                "base_version": {"type": "string"},
                "breakdown": {"$ref": "#/definitions/response.BreakdownResponse"}
            }
        },
        "response.CommitResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "transaction_id": {"type": "string"},
                "estimate_id": {"type": "string"},
                "state": {"type": "string"},
                "version": {"type": "string"},
                "previous_version": {"type": "string"},
                "backup_version": {"type": "string"},
                "estimate": {"type": "object"},
                "breakdown": {"$ref": "#/definitions/response.BreakdownResponse"}
            }
        },
        "response.BatchSaveResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "succeeded": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "estimate_id": {"type": "string"},
                            "version": {"type": "string"},
                            "previous_version": {"type": "string"},
                            "backup_version": {"type": "string"},
                            "breakdown": {"$ref": "#/definitions/response.BreakdownResponse"}
                        }
                    }
                }
            }
        },
        "response.SettingsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"}
            }
        },
        "response.RollbackResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "transaction_id": {"type": "string"},
                "estimate_id": {"type": "string"},
                "state": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "response.AutosaveResponse": {
            "type": "object",
            "properties": {
                "estimate_id": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "response.EstimateSummaryResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "client_name": {"type": "string"},
                "pax": {"type": "integer"},
                "tour_start": {"type": "string"},
                "version": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "response.EstimateResponse": {
            "type": "object",
            "properties": {
                "estimate": {"type": "object"},
                "breakdown": {"$ref": "#/definitions/response.BreakdownResponse"}
            }
        },
        "response.ClientEstimateResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "customer": {"type": "object"},
                "pax": {"type": "integer"},
                "tour_start": {"type": "string"},
                "tour_end": {"type": "string"},
                "currency": {"type": "string"},
                "days": {"type": "array", "items": {"type": "object"}},
                "total": {"type": "number"},
                "per_pax": {"type": "number"},
                "version": {"type": "string"}
            }
        },
        "response.BackupListResponse": {
            "type": "object",
            "properties": {
                "estimate_id": {"type": "string"},
                "backups": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {"type": "string"},
                            "version": {"type": "string"},
                            "created_at": {"type": "string"}
                        }
                    }
                }
            }
        },
        "response.ImportResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "result": {"type": "object"}
            }
        },
        "response.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "storage": {"type": "string"},
                "disk": {"type": "object"}
            }
        },
        "entities.TransferPayload": {
            "type": "object",
            "required": ["estimates"],
            "properties": {
                "format_version": {"type": "string", "example": "2.3.0"},
                "exported_at": {"type": "string"},
                "storage_type": {"type": "string"},
                "estimates": {"type": "array", "items": {"type": "object"}},
                "catalogs": {"type": "array", "items": {"type": "object"}},
                "backups": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Quote Calculator API",
	Description:      "Travel estimate calculator with transactional saves, backups and bulk transfer.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
