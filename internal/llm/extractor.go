// Package llm - extractor.go provides schema-validated structured extraction.
package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/xeipuuv/gojsonschema"
)

// ExtractionError is the typed failure returned by the extractor. Nothing
// raised by the underlying generation capability escapes past this boundary.
type ExtractionError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed for schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed for schema %s: %s", e.Schema, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// Cache stores raw extraction responses keyed by (schema, input). It is safe
// for concurrent readers; Clear may race with in-flight lookups but never
// corrupts stored entries.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewCache creates an empty response cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]string)}
}

// Get returns a cached raw response, if present.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	raw, ok := c.entries[key]
	return raw, ok
}

// Put stores a raw response.
func (c *Cache) Put(key, raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
}

// Clear drops every cached entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string)
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Extractor invokes the generation capability against a target schema and
// decodes the result. Identical (schema, input) pairs may be served from the
// cache; callers must not rely on fresh computation per call.
type Extractor struct {
	client Client
	cache  *Cache
	log    zerolog.Logger
}

// NewExtractor creates an extractor around a client. A nil cache disables
// response caching.
func NewExtractor(client Client, cache *Cache, log zerolog.Logger) *Extractor {
	return &Extractor{client: client, cache: cache, log: log}
}

// ClearCache drops all cached responses. Safe to call while other extractions
// are in flight.
func (e *Extractor) ClearCache() {
	if e.cache != nil {
		e.cache.Clear()
	}
}

// Extract runs the generation capability with input as the text to extract
// from and schema as the required output shape, validates the raw response
// against the schema, and decodes it into out. All failures are returned as
// *ExtractionError.
func (e *Extractor) Extract(ctx context.Context, schema ExtractionSchema, input string, out any) error {
	key := cacheKey(schema.Name, input)

	raw, cached := "", false
	if e.cache != nil {
		raw, cached = e.cache.Get(key)
	}

	if !cached {
		prompt := BuildExtractionPrompt(schema, input)
		response, err := e.client.GenerateJSON(ctx, prompt, schema.Tier)
		if err != nil {
			return &ExtractionError{Schema: schema.Name, Message: "generation capability failed", Cause: err}
		}
		raw = CleanJSONBlock(response)

		if err := e.checkConformance(schema, raw); err != nil {
			return err
		}
		if e.cache != nil {
			e.cache.Put(key, raw)
		}
	} else {
		e.log.Debug().Str("schema", schema.Name).Msg("extraction served from cache")
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return &ExtractionError{Schema: schema.Name, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// checkConformance validates the raw response against the JSON Schema
// generated from the extraction schema record.
func (e *Extractor) checkConformance(schema ExtractionSchema, raw string) error {
	jsonSchema, err := schema.JSONSchema()
	if err != nil {
		return &ExtractionError{Schema: schema.Name, Message: "failed to build conformance schema", Cause: err}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(jsonSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return &ExtractionError{Schema: schema.Name, Message: "response is not valid JSON", Cause: err}
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return &ExtractionError{
			Schema:  schema.Name,
			Message: "response does not conform to schema: " + strings.Join(details, "; "),
		}
	}
	return nil
}

// cacheKey derives the cache key from schema name and a digest of the input.
func cacheKey(schemaName, input string) string {
	digest := sha256.Sum256([]byte(input))
	return schemaName + ":" + hex.EncodeToString(digest[:])
}
