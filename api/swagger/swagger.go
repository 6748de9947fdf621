package swagger

import (
	"strings"
	"sync"

	"github.com/swaggo/swag"
)

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "University Timetable API",
        "description": "Greedy weekly timetable generation for lectures, labs and tutorials",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timetable", "description": "Timetable generation, export and run history"},
        {"name": "Health", "description": "Liveness and readiness probes"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/HealthResponse"}}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unavailable"}
                }
            }
        },
        "{{apiPrefix}}/schedule": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate a timetable",
                "description": "Places every lecture, lab and tutorial into the 40-slot week. Rejected input returns 400 with the validation errors.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "Generated", "schema": {"$ref": "#/definitions/GenerateTimetableResponse"}},
                    "400": {"description": "Rejected input", "schema": {"$ref": "#/definitions/GenerateTimetableResponse"}},
                    "500": {"description": "Engine fault", "schema": {"$ref": "#/definitions/GenerateTimetableResponse"}}
                }
            }
        },
        "{{apiPrefix}}/schedule/export": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate and export a timetable",
                "consumes": ["application/json"],
                "produces": ["text/csv", "application/pdf", "application/json"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf", "json"], "default": "csv"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "Exported file", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format or rejected input", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "{{apiPrefix}}/schedule/stats": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Summarise a scheduling problem",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "{{apiPrefix}}/schedule/runs": {
            "get": {
                "tags": ["Timetable"],
                "summary": "List recent scheduling runs",
                "parameters": [
                    {"name": "outcome", "in": "query", "type": "string", "enum": ["SUCCEEDED", "REJECTED", "FAULTED"]},
                    {"name": "limit", "in": "query", "type": "integer", "default": 50}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "503": {"description": "Run audit store not configured", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        }
    },
    "definitions": {
        "Component": {
            "type": "object",
            "required": ["componentID", "type"],
            "properties": {
                "componentID": {"type": "string"},
                "type": {"type": "string", "enum": ["lecture", "lab", "tutorial"]},
                "labType": {"type": "string"},
                "durationSlots": {"type": "integer", "default": 1},
                "minCapacity": {"type": "integer", "default": 0},
                "instructorQualification": {"type": "string"},
                "requiresLectureFirst": {"type": "boolean"},
                "concurrentSections": {"type": "boolean"},
                "studentGroups": {"type": "array", "items": {"type": "string"}},
                "studentSections": {"type": "array", "items": {"type": "string"}}
            }
        },
        "Course": {
            "type": "object",
            "required": ["courseID"],
            "properties": {
                "courseID": {"type": "string"},
                "courseName": {"type": "string"},
                "courseType": {"type": "string", "default": "core"},
                "allYear": {"type": "boolean"},
                "components": {"type": "array", "items": {"$ref": "#/definitions/Component"}}
            }
        },
        "Instructor": {
            "type": "object",
            "properties": {
                "instructorID": {"type": "string"},
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["professor", "ta", "part_time"], "default": "professor"},
                "qualifications": {"type": "array", "items": {"type": "string"}},
                "maxHoursWeekly": {"type": "integer", "default": 20},
                "unavailableSlots": {"type": "array", "items": {"type": "integer"}},
                "preferredSlots": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "Room": {
            "type": "object",
            "properties": {
                "roomID": {"type": "string"},
                "name": {"type": "string"},
                "type": {"type": "string", "enum": ["lecture", "lab", "classroom"]},
                "labType": {"type": "string"},
                "capacity": {"type": "integer"},
                "equipment": {"type": "array", "items": {"type": "string"}}
            }
        },
        "StudentGroup": {
            "type": "object",
            "properties": {
                "groupID": {"type": "string"},
                "year": {"type": "integer", "default": 1},
                "major": {"type": "string", "default": "general"},
                "sections": {"type": "array", "items": {"type": "string"}},
                "size": {"type": "integer"}
            }
        },
        "Section": {
            "type": "object",
            "properties": {
                "sectionID": {"type": "string"},
                "groupID": {"type": "string"},
                "year": {"type": "integer", "default": 1},
                "studentCount": {"type": "integer"},
                "assignedCourses": {"type": "array", "items": {"type": "string"}}
            }
        },
        "GenerateTimetableRequest": {
            "type": "object",
            "properties": {
                "courses": {"type": "array", "items": {"$ref": "#/definitions/Course"}},
                "instructors": {"type": "array", "items": {"$ref": "#/definitions/Instructor"}},
                "rooms": {"type": "array", "items": {"$ref": "#/definitions/Room"}},
                "studentGroups": {"type": "array", "items": {"$ref": "#/definitions/StudentGroup"}},
                "sections": {"type": "array", "items": {"$ref": "#/definitions/Section"}}
            }
        },
        "SessionEntry": {
            "type": "object",
            "properties": {
                "slotIndex": {"type": "integer"},
                "courseID": {"type": "string"},
                "componentID": {"type": "string"},
                "type": {"type": "string"},
                "roomID": {"type": "string"},
                "instructorID": {"type": "string"},
                "duration": {"type": "integer"},
                "studentCount": {"type": "integer"},
                "day": {"type": "string"},
                "period": {"type": "integer"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"}
            }
        },
        "SectionSchedule": {
            "type": "object",
            "properties": {
                "sectionID": {"type": "string"},
                "groupID": {"type": "string"},
                "year": {"type": "integer"},
                "studentCount": {"type": "integer"},
                "schedule": {"type": "array", "items": {"$ref": "#/definitions/SessionEntry"}}
            }
        },
        "GenerateTimetableResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "warnings": {"type": "array", "items": {"type": "string"}},
                "errors": {"type": "array", "items": {"type": "string"}},
                "runId": {"type": "string"},
                "optimizerMoves": {"type": "integer"},
                "sections": {"type": "array", "items": {"$ref": "#/definitions/SectionSchedule"}},
                "statistics": {
                    "type": "object",
                    "properties": {
                        "totalComponents": {"type": "integer"},
                        "scheduledComponents": {"type": "integer"},
                        "completionRate": {"type": "string"}
                    }
                }
            }
        },
        "HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "service": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "Failure": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "meta": {"type": "object"}
            }
        }
    }
}`

const prefixToken = "{{apiPrefix}}"

type swaggerDoc struct {
	mu     sync.RWMutex
	prefix string
}

var doc = &swaggerDoc{prefix: "/api"}

// SetAPIPrefix points the documented scheduling paths at the group they are mounted under.
func SetAPIPrefix(prefix string) {
	doc.mu.Lock()
	defer doc.mu.Unlock()
	doc.prefix = strings.TrimRight(prefix, "/")
}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strings.ReplaceAll(docTemplate, prefixToken, s.prefix)
}

func init() {
	swag.Register(swag.Name, doc)
}
