// Package swagger holds the OpenAPI document served under /swagger. It mirrors the
// handler annotations; regenerate it with go generate after changing them.
package swagger

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
        "/games/batch": {
            "post": {
                "description": "Resolves up to the configured batch size of game slugs. Cached records are served from the cache, the rest are fetched from IGDB. Unknown slugs are absent from the result.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Resolve Games",
                "parameters": [
                    {
                        "description": "Slugs to resolve",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/games.BatchRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/games.Result"}},
                    "400": {"description": "Validation Error", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Upstream Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/games/cache": {
            "delete": {
                "description": "Removes every cached game record. Subsequent lookups refetch from IGDB.",
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Clear Game Cache",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/games/{slug}": {
            "get": {
                "description": "Returns one game by slug.",
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Get Game",
                "parameters": [
                    {"type": "string", "description": "Game slug", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/games.Game"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": true}},
                    "502": {"description": "Upstream Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/integrity": {
            "get": {
                "description": "Runs the schema check and, when the storage cache backend is enabled, the bucket check.",
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Run All Integrity Checks",
                "responses": {
                    "200": {"description": "Combined Report", "schema": {"$ref": "#/definitions/integrity.Report"}},
                    "503": {"description": "Unhealthy", "schema": {"$ref": "#/definitions/integrity.Report"}}
                }
            }
        },
        "/integrity/schema": {
            "get": {
                "description": "Checks that the cache, state and log tables match the expected models.",
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Schema",
                "responses": {
                    "200": {"description": "Schema Report", "schema": {"$ref": "#/definitions/checks.SchemaReport"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/integrity/storage": {
            "get": {
                "description": "Checks that the cache bucket exists. Optionally creates it.",
                "produces": ["application/json"],
                "tags": ["integrity"],
                "summary": "Check Storage",
                "parameters": [
                    {"type": "boolean", "description": "Create the bucket if missing", "name": "fix", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Bucket Report", "schema": {"$ref": "#/definitions/checks.BucketReport"}},
                    "404": {"description": "Storage backend disabled", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/library/{user}": {
            "get": {
                "description": "Merges the user's game states and log entries into one entry per game, with per-shelf counters. The user id may be a UUID or its short id.",
                "produces": ["application/json"],
                "tags": ["library"],
                "summary": "Get Library",
                "parameters": [
                    {"type": "string", "description": "User id (UUID or short id)", "name": "user", "in": "path", "required": true},
                    {"type": "string", "description": "Shelf filter (all, playing, played, completed, backlog, wishlist, dropped, shelved, retired, liked, rated)", "name": "shelf", "in": "query"},
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/library.Library"}},
                    "400": {"description": "Validation Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/library/{user}/events": {
            "post": {
                "description": "Appends an immutable log entry, optionally rated 0-100.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["library"],
                "summary": "Append Log Entry",
                "parameters": [
                    {"type": "string", "description": "User id (UUID or short id)", "name": "user", "in": "path", "required": true},
                    {"description": "Log entry", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/library.EventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/library.GameLog"}},
                    "400": {"description": "Validation Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/library/{user}/games/{slug}": {
            "put": {
                "description": "Sets one of status, playing, backlog, wishlist or liked. A state left empty is deleted instead of stored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["library"],
                "summary": "Update Game State",
                "parameters": [
                    {"type": "string", "description": "User id (UUID or short id)", "name": "user", "in": "path", "required": true},
                    {"type": "string", "description": "Game slug", "name": "slug", "in": "path", "required": true},
                    {"description": "Field update", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/library.StateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/library.UpdateResult"}},
                    "400": {"description": "Validation Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "checks.BucketReport": {
            "type": "object",
            "properties": {
                "bucket": {"type": "string"},
                "empty": {"type": "boolean"},
                "exists": {"type": "boolean"},
                "prefix": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "checks.SchemaReport": {
            "type": "object",
            "properties": {
                "driver": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "matched": {"type": "boolean"},
                "tables": {"type": "object", "additionalProperties": {"$ref": "#/definitions/checks.TableReport"}}
            }
        },
        "checks.TableReport": {
            "type": "object",
            "properties": {
                "missing_columns": {"type": "array", "items": {"type": "string"}},
                "status": {"type": "string"},
                "type_mismatches": {"type": "array", "items": {"type": "string"}}
            }
        },
        "games.BatchRequest": {
            "type": "object",
            "required": ["slugs"],
            "properties": {
                "partial": {"type": "boolean"},
                "slugs": {"type": "array", "minItems": 1, "items": {"type": "string"}}
            }
        },
        "games.ChunkError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "slugs": {"type": "array", "items": {"type": "string"}}
            }
        },
        "games.Game": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "slug": {"type": "string"},
                "name": {"type": "string"},
                "summary": {"type": "string"},
                "first_release_date": {"type": "integer"},
                "cover": {"$ref": "#/definitions/games.Image"},
                "artworks": {"type": "array", "items": {"$ref": "#/definitions/games.Image"}},
                "genres": {"type": "array", "items": {"$ref": "#/definitions/games.Genre"}},
                "platforms": {"type": "array", "items": {"$ref": "#/definitions/games.Platform"}},
                "developers": {"type": "array", "items": {"type": "string"}}
            }
        },
        "games.Genre": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}
        },
        "games.Image": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "image_id": {"type": "string"}, "url": {"type": "string"}}
        },
        "games.Platform": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}}
        },
        "games.Result": {
            "type": "object",
            "properties": {
                "failures": {"type": "array", "items": {"$ref": "#/definitions/games.ChunkError"}},
                "games": {"type": "object", "additionalProperties": {"$ref": "#/definitions/games.Game"}}
            }
        },
        "integrity.Report": {
            "type": "object",
            "properties": {
                "healthy": {"type": "boolean"},
                "schema": {"$ref": "#/definitions/checks.SchemaReport"},
                "schema_error": {"type": "string"},
                "storage": {"$ref": "#/definitions/checks.BucketReport"},
                "storage_error": {"type": "string"}
            }
        },
        "library.EventRequest": {
            "type": "object",
            "required": ["game_id", "game_slug"],
            "properties": {
                "backlog": {"type": "boolean"},
                "game_id": {"type": "integer"},
                "game_slug": {"type": "string", "maxLength": 255},
                "liked": {"type": "boolean"},
                "playing": {"type": "boolean"},
                "rating": {"type": "integer", "maximum": 100, "minimum": 0},
                "status": {"type": "string", "enum": ["played", "completed", "retired", "shelved", "abandoned"]},
                "wishlist": {"type": "boolean"}
            }
        },
        "library.GameLog": {
            "type": "object",
            "properties": {
                "backlog": {"type": "boolean"},
                "created_at": {"type": "string"},
                "game_id": {"type": "integer"},
                "game_slug": {"type": "string"},
                "id": {"type": "integer"},
                "liked": {"type": "boolean"},
                "playing": {"type": "boolean"},
                "rating": {"type": "integer"},
                "status": {"type": "string"},
                "user_id": {"type": "string"},
                "wishlist": {"type": "boolean"}
            }
        },
        "library.Library": {
            "type": "object",
            "properties": {
                "counts": {"$ref": "#/definitions/reconcile.Summary"},
                "games": {"type": "array", "items": {"$ref": "#/definitions/reconcile.Aggregate"}},
                "page": {"type": "integer"},
                "shelf": {"type": "string"},
                "short_id": {"type": "string"},
                "total_pages": {"type": "integer"},
                "user_id": {"type": "string"}
            }
        },
        "library.StateRequest": {
            "type": "object",
            "required": ["field", "game_id"],
            "properties": {
                "field": {"type": "string", "enum": ["status", "playing", "backlog", "wishlist", "liked"]},
                "game_id": {"type": "integer"},
                "value": {}
            }
        },
        "library.UpdateResult": {
            "type": "object",
            "properties": {
                "deleted": {"type": "boolean"},
                "game_id": {"type": "integer"},
                "game_slug": {"type": "string"},
                "skipped": {"type": "boolean"},
                "state": {"$ref": "#/definitions/library.UserGame"}
            }
        },
        "library.UserGame": {
            "type": "object",
            "properties": {
                "backlog": {"type": "boolean"},
                "created_at": {"type": "string"},
                "game_id": {"type": "integer"},
                "game_slug": {"type": "string"},
                "liked": {"type": "boolean"},
                "playing": {"type": "boolean"},
                "status": {"type": "string"},
                "updated_at": {"type": "string"},
                "user_id": {"type": "string"},
                "wishlist": {"type": "boolean"}
            }
        },
        "reconcile.Aggregate": {
            "type": "object",
            "properties": {
                "avg_rating": {"type": "integer"},
                "backlog": {"type": "boolean"},
                "game_id": {"type": "integer"},
                "has_log": {"type": "boolean"},
                "latest_at": {"type": "string"},
                "liked": {"type": "boolean"},
                "playing": {"type": "boolean"},
                "rating_count": {"type": "integer"},
                "slug": {"type": "string"},
                "status": {"type": "string"},
                "wishlist": {"type": "boolean"}
            }
        },
        "reconcile.Summary": {
            "type": "object",
            "properties": {
                "backlog": {"type": "integer"},
                "completed": {"type": "integer"},
                "dropped": {"type": "integer"},
                "liked": {"type": "integer"},
                "played": {"type": "integer"},
                "playing": {"type": "integer"},
                "rated": {"type": "integer"},
                "retired": {"type": "integer"},
                "shelved": {"type": "integer"},
                "total": {"type": "integer"},
                "wishlist": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "uloggd API",
	Description:      "Game catalog cache and library service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
