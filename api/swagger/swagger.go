package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Samadhan Complaint API",
        "description": "Grievance-redressal complaint tracking backend",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Admin authentication"},
        {"name": "Admin", "description": "Admin account management"},
        {"name": "Complaints", "description": "Complaint register"},
        {"name": "Stats", "description": "Channel snapshots and history"},
        {"name": "Dashboard", "description": "Dashboard summary"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/admin/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Admin login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Login successful"},
                    "400": {"description": "Missing fields"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/admin": {
            "get": {
                "tags": ["Admin"],
                "summary": "Fetch an admin account",
                "parameters": [
                    {"name": "email", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/admin/create": {
            "post": {
                "tags": ["Admin"],
                "summary": "Create an admin account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAdminRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Missing fields"},
                    "409": {"description": "Email already registered"}
                }
            }
        },
        "/api/admin/update-profile": {
            "put": {
                "tags": ["Admin"],
                "summary": "Update an admin profile",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "400": {"description": "Missing fields"},
                    "404": {"description": "Unknown id"},
                    "409": {"description": "Email or username taken"}
                }
            }
        },
        "/complaints/add-complaint": {
            "post": {
                "tags": ["Complaints"],
                "summary": "Add or update a complaint record",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertComplaintRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "201": {"description": "Created"},
                    "400": {"description": "Missing key fields"}
                }
            }
        },
        "/complaints/lookup": {
            "post": {
                "tags": ["Complaints"],
                "summary": "Stored counts for a natural key",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/complaints/officer": {
            "post": {
                "tags": ["Complaints"],
                "summary": "Officer contact for a natural key",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/recent": {
            "get": {
                "tags": ["Complaints"],
                "summary": "Complaint register rows",
                "parameters": [
                    {"name": "all", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/recent/export": {
            "get": {
                "tags": ["Complaints"],
                "summary": "Download the register as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "400": {"description": "Unsupported format"}
                }
            }
        },
        "/api/suggestions": {
            "get": {
                "tags": ["Complaints"],
                "summary": "Distinct natural-key triples",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/updateStats": {
            "post": {
                "tags": ["Stats"],
                "summary": "Store one snapshot per channel",
                "responses": {
                    "200": {"description": "Stored"},
                    "400": {"description": "Incomplete channel data"}
                }
            }
        },
        "/stats/portal/{name}": {
            "get": {
                "tags": ["Stats"],
                "summary": "Snapshot series for one channel",
                "parameters": [
                    {"name": "name", "in": "path", "required": true, "type": "string"},
                    {"name": "timeRange", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid portal name"}
                }
            }
        },
        "/stats/latest": {
            "get": {
                "tags": ["Stats"],
                "summary": "Newest snapshot of every channel",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/stats/summary-graph": {
            "get": {
                "tags": ["Stats"],
                "summary": "Newest bucket of every channel",
                "parameters": [
                    {"name": "timeRange", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/stats/departments": {
            "get": {
                "tags": ["Stats"],
                "summary": "Department leaderboard for one portal",
                "parameters": [
                    {"name": "portal", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid portal name"}
                }
            }
        },
        "/stats/realtime": {
            "get": {
                "tags": ["Stats"],
                "summary": "Cross-channel aggregate totals",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/stats/top-departments": {
            "get": {
                "tags": ["Stats"],
                "summary": "Departments ranked by one channel column",
                "parameters": [
                    {"name": "portal", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/stats/department-graph": {
            "get": {
                "tags": ["Stats"],
                "summary": "History totals grouped by main department",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/stats/department-name-graph": {
            "get": {
                "tags": ["Stats"],
                "summary": "History trend for one named office",
                "parameters": [
                    {"name": "department_name", "in": "query", "type": "string"},
                    {"name": "timeRange", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/stats/department-history": {
            "get": {
                "tags": ["Stats"],
                "summary": "Full history trend for one main department",
                "parameters": [
                    {"name": "main_department", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "main_department is required"}
                }
            }
        },
        "/stats/main-department-graph": {
            "get": {
                "tags": ["Stats"],
                "summary": "Recent history rows",
                "parameters": [
                    {"name": "main_department", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/stats/history/{id}": {
            "get": {
                "tags": ["Stats"],
                "summary": "History entries for one record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid record id"}
                }
            }
        },
        "/stats/all-history": {
            "get": {
                "tags": ["Stats"],
                "summary": "History entries joined to their current record",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Flat dashboard summary",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateAdminRequest": {
            "type": "object",
            "required": ["name", "email", "phone", "username", "password"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "UpdateProfileRequest": {
            "type": "object",
            "required": ["id", "name", "email", "phone", "username"],
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "UpsertComplaintRequest": {
            "type": "object",
            "required": ["main_department", "department_name", "officer_designation"],
            "properties": {
                "main_department": {"type": "string"},
                "department_name": {"type": "string"},
                "officer_designation": {"type": "string"},
                "officer_name": {"type": "string"},
                "officer_mobile": {"type": "string"},
                "cm_jandarshan": {"type": "integer"},
                "collector_jandarshan": {"type": "integer"},
                "call_center": {"type": "integer"},
                "pgPortal": {"type": "integer"},
                "jansikayatPostMail": {"type": "integer"},
                "jansikayatWEB": {"type": "integer"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
