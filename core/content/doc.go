// Package content stores local records and their key/value metadata.
//
// A Record is the CMS entry that mirrors one catalog item. It is linked to the
// item through the ExternalIDKey metadata row, which FindByExternalID uses to keep
// imports idempotent. Metadata values are plain text; structured values such as
// {id, url} image references are stored JSON encoded via SetMetaJSON.
package content
