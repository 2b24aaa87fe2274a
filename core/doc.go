// Package core contains the business logic for the Web Research API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Contains pure domain models (Candidate, FetchResult, SearchResponse)
// - discovery: Search backend querying with field-fallback parsing
// - ranking: Lexical scoring and top-K selection of candidates
// - fetch: Page content retrieval with caching and retry classification
// - research: Pipeline orchestration (discover, rank, fetch, merge)
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "webresearch-api/core/interfaces"
//	    "webresearch-api/core/research"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	// Create service
//	svc := research.NewService(discoverySvc, fetchSvc, deps, research.DefaultConfig())
//
//	// Run the pipeline
//	resp := svc.SearchWeb(ctx, "quantum error correction")
package core
