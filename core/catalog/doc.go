// Package catalog is the client for the external game catalog API.
//
// Fetch performs one GET against the item-detail endpoint
// ({base}/api/appdetails?appids={id}&l={language}) and, if the catalog does not
// report the item as available in that language, one more request in the
// configured fallback language. Failures are returned as *FetchError values whose
// Message is safe to show to users; errors.Is distinguishes ErrUnavailable
// (transport) from ErrNotFound.
package catalog
