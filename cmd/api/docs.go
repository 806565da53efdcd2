// Package main runs the books catalog API.
//
// @title Books Catalog API
// @version 1.0
// @description Read-only catalog of scraped books with search, statistics and ML-ready projections.
// @description The catalog is re-read from its backing file on every request.
// @description
// @description Errors use the envelope `{"success": false, "error": {"code", "message", "details"}, "meta": {"request_id"}}`.
// @description Every response carries `X-Request-Id` and `X-Response-Time-ms`.
//
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token from /auth/login, sent as "Bearer <token>".
//
// @tag.name books
// @tag.description Catalog listing, lookup and filters
// @tag.name stats
// @tag.description Aggregate statistics
// @tag.name auth
// @tag.description Token issue and refresh
// @tag.name scraping
// @tag.description Privileged scraper control
// @tag.name ml
// @tag.description Model features, training data and price-tier prediction
// @tag.name health
// @tag.description Liveness
package main

//go:generate swag init --dir ../../ --generalInfo cmd/api/docs.go --output ../../docs --parseInternal --outputTypes go,json
