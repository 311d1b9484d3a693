// Package hypothesis is a minimal client for the Hypothesis annotation
// search API (https://hypothes.is/api/search).
//
// Only public, unauthenticated search is supported. Annotations are kept as
// raw JSON; the one field the client understands is "updated", which serves
// as the search_after cursor of the next page.
package hypothesis
