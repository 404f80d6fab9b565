package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "PEM Portal API",
        "description": "Point ledger and training curriculum for the Psychoeducational Treatment Model",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "name": "Sessions",
            "description": "Point ledger sessions"
        },
        {
            "name": "Curriculum",
            "description": "Training modules and tools"
        },
        {
            "name": "Admin",
            "description": "Operator views"
        }
    ],
    "paths": {
        "/sessions": {
            "post": {
                "tags": [
                    "Sessions"
                ],
                "summary": "Open a ledger session",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "tags": [
                    "Sessions"
                ],
                "summary": "Get session summary",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Unknown or ended session",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "format": "uuid"
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Sessions"
                ],
                "summary": "End a session",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "format": "uuid"
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Ended"
                    }
                }
            }
        },
        "/sessions/{id}/events": {
            "get": {
                "tags": [
                    "Sessions"
                ],
                "summary": "List the point log",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "format": "uuid"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "name": "page_size",
                        "in": "query",
                        "type": "integer"
                    }
                ]
            },
            "post": {
                "tags": [
                    "Sessions"
                ],
                "summary": "Record a point entry",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "INVALID_INPUT for values outside the enumerations",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Event limit reached",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "format": "uuid"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/AppendEventRequest"
                        }
                    }
                ]
            }
        },
        "/sessions/{id}/reset": {
            "post": {
                "tags": [
                    "Sessions"
                ],
                "summary": "Clear the point log",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Reset not confirmed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "format": "uuid"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ResetRequest"
                        }
                    }
                ]
            }
        },
        "/sessions/{id}/export": {
            "get": {
                "tags": [
                    "Sessions"
                ],
                "summary": "Download the point card",
                "produces": [
                    "text/csv",
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "format": "uuid"
                    },
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "enum": [
                            "csv",
                            "pdf"
                        ],
                        "default": "csv"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Point card file",
                        "schema": {
                            "type": "file"
                        }
                    }
                }
            }
        },
        "/curriculum/modules": {
            "get": {
                "tags": [
                    "Curriculum"
                ],
                "summary": "List curriculum modules",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/curriculum/foundations": {
            "get": {
                "tags": [
                    "Curriculum"
                ],
                "summary": "Foundations and hallmarks",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/curriculum/abc": {
            "get": {
                "tags": [
                    "Curriculum"
                ],
                "summary": "ABC reference material",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/curriculum/abc/analyze": {
            "post": {
                "tags": [
                    "Curriculum"
                ],
                "summary": "Analyze an ABC pattern",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ABCAnalysisRequest"
                        }
                    }
                ]
            }
        },
        "/curriculum/levels": {
            "get": {
                "tags": [
                    "Curriculum"
                ],
                "summary": "Motivation system levels",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/curriculum/professionalism": {
            "get": {
                "tags": [
                    "Curriculum"
                ],
                "summary": "Professionalism and boundaries",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/curriculum/interactions/{type}": {
            "get": {
                "tags": [
                    "Curriculum"
                ],
                "summary": "Teaching interaction steps",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "type",
                        "in": "path",
                        "required": true,
                        "type": "string",
                        "enum": [
                            "proactive_teaching",
                            "effective_praise",
                            "corrective_teaching"
                        ]
                    }
                ]
            }
        },
        "/curriculum/language-check": {
            "post": {
                "tags": [
                    "Curriculum"
                ],
                "summary": "Screen text for judgmental language",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/LanguageCheckRequest"
                        }
                    }
                ]
            }
        },
        "/curriculum/point-card": {
            "get": {
                "tags": [
                    "Curriculum"
                ],
                "summary": "Point entry choices and values",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/curriculum/quizzes": {
            "get": {
                "tags": [
                    "Curriculum"
                ],
                "summary": "List quiz topics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/curriculum/rationale": {
            "get": {
                "tags": [
                    "Curriculum"
                ],
                "summary": "Rationale generator choices",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            },
            "post": {
                "tags": [
                    "Curriculum"
                ],
                "summary": "Generate a rationale",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/RationaleRequest"
                        }
                    }
                ]
            }
        },
        "/curriculum/quizzes/{topic}": {
            "get": {
                "tags": [
                    "Curriculum"
                ],
                "summary": "Get a knowledge check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "topic",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    }
                ]
            }
        },
        "/curriculum/quizzes/{topic}/grade": {
            "post": {
                "tags": [
                    "Curriculum"
                ],
                "summary": "Grade a knowledge check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "topic",
                        "in": "path",
                        "required": true,
                        "type": "string"
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/QuizSubmission"
                        }
                    }
                ]
            }
        },
        "/admin/sessions": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "List in-memory sessions",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "definitions": {
        "AppendEventRequest": {
            "type": "object",
            "required": [
                "skill",
                "interaction_type",
                "polarity"
            ],
            "properties": {
                "skill": {
                    "type": "string",
                    "enum": [
                        "following_instructions",
                        "accepting_criticism",
                        "task_completion",
                        "self_control"
                    ]
                },
                "interaction_type": {
                    "type": "string",
                    "enum": [
                        "proactive_teaching",
                        "effective_praise",
                        "corrective_teaching"
                    ]
                },
                "behavior": {
                    "type": "string",
                    "maxLength": 500
                },
                "target_skill": {
                    "type": "boolean"
                },
                "polarity": {
                    "type": "string",
                    "enum": [
                        "positive",
                        "negative"
                    ]
                }
            }
        },
        "ResetRequest": {
            "type": "object",
            "properties": {
                "confirm": {
                    "type": "boolean"
                }
            }
        },
        "ABCAnalysisRequest": {
            "type": "object",
            "required": [
                "antecedent",
                "behavior",
                "consequence"
            ],
            "properties": {
                "antecedent": {
                    "type": "string",
                    "enum": [
                        "staff_instruction",
                        "peer_teases",
                        "bedtime",
                        "lunch_time"
                    ]
                },
                "behavior": {
                    "type": "string"
                },
                "consequence": {
                    "type": "string",
                    "enum": [
                        "positive_reinforcement",
                        "negative_reinforcement",
                        "response_cost"
                    ]
                }
            }
        },
        "LanguageCheckRequest": {
            "type": "object",
            "properties": {
                "text": {
                    "type": "string"
                }
            }
        },
        "RationaleRequest": {
            "type": "object",
            "required": [
                "skill",
                "type"
            ],
            "properties": {
                "skill": {
                    "type": "string",
                    "enum": [
                        "following_instructions",
                        "accepting_no",
                        "disagreeing_appropriately"
                    ]
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "benefit_to_youth",
                        "concern_for_others",
                        "negative_outcome"
                    ]
                }
            }
        },
        "QuizSubmission": {
            "type": "object",
            "properties": {
                "answers": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                }
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "total_count": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "pagination": {
                    "$ref": "#/definitions/Pagination"
                },
                "meta": {
                    "type": "object"
                }
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
