// Package docs registers the storefront OpenAPI document with swag.
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
        "/healthz": {
            "get": {"tags": ["health"], "summary": "Liveness", "responses": {"200": {"description": "ok"}}}
        },
        "/categories": {
            "get": {
                "tags": ["categories"], "summary": "List categories", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Category"}}}}
            }
        },
        "/products": {
            "get": {
                "tags": ["products"], "summary": "List products with filters and sorting", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "q", "in": "query", "description": "search query"},
                    {"type": "string", "name": "category", "in": "query", "description": "category segment"},
                    {"type": "string", "name": "categories", "in": "query", "description": "comma separated category filter"},
                    {"type": "string", "name": "brands", "in": "query", "description": "comma separated brand filter"},
                    {"type": "number", "name": "minPrice", "in": "query"},
                    {"type": "number", "name": "maxPrice", "in": "query"},
                    {"type": "number", "name": "minRating", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query", "enum": ["popularity", "price-low", "price-high", "rating", "newest"]},
                    {"type": "string", "name": "X-Session-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ListResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/HTTPError"}},
                    "409": {"description": "Superseded by a newer listing", "schema": {"$ref": "#/definitions/HTTPError"}},
                    "502": {"description": "Data source failure", "schema": {"$ref": "#/definitions/HTTPError"}}
                }
            }
        },
        "/products/search": {
            "get": {
                "tags": ["products"], "summary": "Search products",
                "parameters": [{"type": "string", "name": "q", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ListResponse"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/HTTPError"}}}
            }
        },
        "/products/{id}": {
            "get": {
                "tags": ["products"], "summary": "Get product",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ProductView"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/HTTPError"}}}
            }
        },
        "/products/{id}/similar": {
            "get": {
                "tags": ["products"], "summary": "Similar products (max 4)",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ProductView"}}}}
            }
        },
        "/products/{id}/reviews": {
            "get": {
                "tags": ["reviews"], "summary": "Reviews of a product",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "sort", "in": "query", "enum": ["newest", "oldest", "highest", "lowest", "helpful"], "default": "newest"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Review"}}}}
            },
            "post": {
                "tags": ["reviews"], "summary": "Submit a review", "consumes": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/NewReview"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/Review"}}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/HTTPError"}}}
            }
        },
        "/reviews/{id}/helpful": {
            "post": {
                "tags": ["reviews"], "summary": "Add a helpful vote",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Review"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/HTTPError"}}}
            }
        },
        "/cart": {
            "get": {"tags": ["cart"], "summary": "Cart with quote", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/CartResponse"}}}},
            "delete": {"tags": ["cart"], "summary": "Clear cart", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/CartResponse"}}}}
        },
        "/cart/items": {
            "post": {
                "tags": ["cart"], "summary": "Add to cart",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CartItemRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/CartResponse"}}}
            },
            "put": {
                "tags": ["cart"], "summary": "Set line quantity (0 removes)",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CartItemRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/CartResponse"}}}
            },
            "delete": {
                "tags": ["cart"], "summary": "Remove a line",
                "parameters": [
                    {"type": "integer", "name": "productId", "in": "query", "required": true},
                    {"type": "string", "name": "size", "in": "query"},
                    {"type": "string", "name": "color", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/CartResponse"}}}
            }
        },
        "/wishlist": {
            "get": {"tags": ["wishlist"], "summary": "Wishlist", "responses": {"200": {"description": "OK"}}}
        },
        "/wishlist/{productId}": {
            "post": {"tags": ["wishlist"], "summary": "Save product", "parameters": [{"type": "integer", "name": "productId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["wishlist"], "summary": "Unsave product", "parameters": [{"type": "integer", "name": "productId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/wishlist/{productId}/toggle": {
            "post": {"tags": ["wishlist"], "summary": "Toggle saved state", "parameters": [{"type": "integer", "name": "productId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/checkout": {
            "get": {"tags": ["checkout"], "summary": "Checkout summary", "responses": {"200": {"description": "OK"}}}
        },
        "/checkout/shipping": {
            "post": {"tags": ["checkout"], "summary": "Submit shipping address", "responses": {"200": {"description": "OK"}, "400": {"description": "Missing fields", "schema": {"$ref": "#/definitions/HTTPError"}}}}
        },
        "/checkout/payment": {
            "post": {"tags": ["checkout"], "summary": "Submit payment details", "responses": {"200": {"description": "OK"}, "400": {"description": "Missing fields", "schema": {"$ref": "#/definitions/HTTPError"}}}}
        },
        "/checkout/back": {
            "post": {"tags": ["checkout"], "summary": "Previous step", "responses": {"200": {"description": "OK"}}}
        },
        "/checkout/order": {
            "post": {"tags": ["checkout"], "summary": "Place order", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/HTTPError"}}}}
        }
    },
    "definitions": {
        "HTTPError": {"type": "object", "properties": {"error": {"type": "string", "example": "product not found"}, "fields": {"type": "array", "items": {"type": "string"}}}},
        "Category": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "tags": {"type": "array", "items": {"type": "string"}}, "image": {"type": "string"}, "description": {"type": "string"}}},
        "ProductView": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "name": {"type": "string"}, "brand": {"type": "string"}, "category": {"type": "string"},
                "price": {"type": "string", "example": "2499"}, "discountPrice": {"type": "string", "example": "1499"},
                "discountPercent": {"type": "integer", "example": 40},
                "images": {"type": "array", "items": {"type": "string"}}, "sizes": {"type": "array", "items": {"type": "string"}},
                "colors": {"type": "array", "items": {"type": "string"}}, "rating": {"type": "number"}, "reviewCount": {"type": "integer"},
                "inStock": {"type": "boolean"}, "description": {"type": "string"}
            }
        },
        "ListResponse": {
            "type": "object",
            "properties": {
                "q": {"type": "string"}, "category": {"type": "string"}, "sort": {"type": "string"}, "count": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/ProductView"}}
            }
        },
        "Review": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "productId": {"type": "integer"}, "userName": {"type": "string"}, "userAvatar": {"type": "string"},
                "rating": {"type": "integer"}, "comment": {"type": "string"}, "date": {"type": "string", "format": "date-time"}, "helpfulVotes": {"type": "integer"}
            }
        },
        "NewReview": {
            "type": "object", "required": ["rating", "comment", "userName"],
            "properties": {"rating": {"type": "integer", "minimum": 1, "maximum": 5}, "comment": {"type": "string"}, "userName": {"type": "string"}, "userAvatar": {"type": "string"}}
        },
        "CartItemRequest": {
            "type": "object", "required": ["productId"],
            "properties": {"productId": {"type": "integer"}, "size": {"type": "string"}, "color": {"type": "string"}, "quantity": {"type": "integer", "example": 1}}
        },
        "CartResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"type": "object"}},
                "count": {"type": "integer"},
                "quote": {"type": "object", "properties": {"subtotal": {"type": "string"}, "shipping": {"type": "string"}, "tax": {"type": "string"}, "total": {"type": "string"}}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "StyleHub Storefront API",
	Description:      "Catalog browsing, reviews, cart, wishlist and checkout for the StyleHub storefront.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
