// Package docs ships the OpenAPI document served under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/admin/login": {
            "post": {
                "tags": ["admin"],
                "summary": "Exchange the admin password for a bearer token",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/participants/register": {
            "post": {
                "tags": ["participants"],
                "summary": "Register a participant",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/participants/login": {
            "post": {
                "tags": ["participants"],
                "summary": "Participant login",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/participants": {
            "get": {
                "tags": ["participants"],
                "summary": "List participants ordered by score",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["participants"],
                "summary": "Remove every participant (admin)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/participants/leaderboard": {
            "get": {
                "tags": ["participants"],
                "summary": "Top-10 leaderboard",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/questions": {
            "post": {
                "tags": ["questions"],
                "summary": "Create a question (admin)",
                "responses": {"201": {"description": "Created"}}
            },
            "get": {
                "tags": ["questions"],
                "summary": "List active questions without answers",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/questions/release": {
            "post": {
                "tags": ["questions"],
                "summary": "Release the next question (admin)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/questions/reset": {
            "post": {
                "tags": ["questions"],
                "summary": "Reset the question rotation (admin)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/game/answer": {
            "post": {
                "tags": ["game"],
                "summary": "Submit an answer",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/voting/open": {
            "post": {
                "tags": ["voting"],
                "summary": "Open an elimination voting session when scores are tied (admin)",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/voting/vote": {
            "post": {
                "tags": ["voting"],
                "summary": "Cast an elimination vote",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/voting/active": {
            "get": {
                "tags": ["voting"],
                "summary": "Current active voting session",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/poll": {
            "post": {
                "tags": ["poll"],
                "summary": "Create a ranked poll (admin)",
                "responses": {"201": {"description": "Created"}}
            },
            "get": {
                "tags": ["poll"],
                "summary": "List polls newest first",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/poll/rank": {
            "post": {
                "tags": ["poll"],
                "summary": "Submit or replace rankings for the active poll",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tiebreak Game API",
	Description:      "Real-time quiz game with elimination voting and ranked poll tie-breaking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
