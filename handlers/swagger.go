package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>apiscamp - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "apiscamp", "version": "v0.1.0" },
  "paths": {
    "/": { "get": { "summary": "Landing page", "responses": { "200": { "description": "index.html" } } } },
    "/json": { "get": { "summary": "Hello json (MESSAGE_STYLE=uppercase upper-cases it)", "responses": { "200": { "description": "{message}" } } } },
    "/now": { "get": { "summary": "Server time stamped by a preceding middleware", "responses": { "200": { "description": "{time}" } } } },
    "/{word}/echo": {
      "post": {
        "summary": "Echo a path segment",
        "parameters": [{ "name": "word", "in": "path", "required": true, "schema": { "type": "string" } }],
        "responses": { "200": { "description": "{echo}" } }
      }
    },
    "/name": {
      "get": {
        "summary": "Full name from query",
        "parameters": [
          { "name": "first", "in": "query", "schema": { "type": "string" } },
          { "name": "last", "in": "query", "schema": { "type": "string" } }
        ],
        "responses": { "200": { "description": "{name}" } }
      },
      "post": {
        "summary": "Full name from a url-encoded or JSON body",
        "requestBody": { "content": {
          "application/json": { "schema": { "type": "object", "properties": { "firstname": { "type": "string" }, "lastname": { "type": "string" } } } },
          "application/x-www-form-urlencoded": { "schema": { "type": "object", "properties": { "firstname": { "type": "string" }, "lastname": { "type": "string" } } } }
        } },
        "responses": { "200": { "description": "{name}" }, "400": { "description": "unparsable body" } }
      }
    },
    "/api/people": {
      "get": { "summary": "Find people by name", "parameters": [{ "name": "name", "in": "query", "schema": { "type": "string" } }], "responses": { "200": { "description": "people" } } },
      "post": { "summary": "Create a person", "responses": { "201": { "description": "created person" } } },
      "delete": { "summary": "Remove every person with name", "parameters": [{ "name": "name", "in": "query", "schema": { "type": "string" } }], "responses": { "200": { "description": "{deletedCount}" } } }
    },
    "/api/people/bulk": { "post": { "summary": "Create many people", "responses": { "201": { "description": "created people" } } } },
    "/api/people/query": { "get": { "summary": "Two people liking food, by name, without age", "parameters": [{ "name": "food", "in": "query", "schema": { "type": "string" } }], "responses": { "200": { "description": "summaries" } } } },
    "/api/people/food/{food}": { "get": { "summary": "First person liking food", "responses": { "200": { "description": "person" }, "404": { "description": "none" } } } },
    "/api/people/{id}": {
      "get": { "summary": "Find person by id", "responses": { "200": { "description": "person" }, "404": { "description": "not found or malformed id" } } },
      "delete": { "summary": "Remove person by id", "responses": { "200": { "description": "removed person or null" } } }
    },
    "/api/people/{id}/foods": { "post": { "summary": "Append hamburger and save", "responses": { "200": { "description": "person" }, "404": { "description": "not found" } } } },
    "/api/people/by-filter/{value}": { "patch": { "summary": "Set age on the document whose _id equals value", "responses": { "200": { "description": "person or null" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "text exposition" } } } }
  }
}`
