// Package codec converts documents to and from external formats: a JSON
// tree representation for round-tripping, plus markdown and docx
// importers. The engine core never depends on this package; persistence
// is layered on top of the node model, not baked into it.
//
// Text leaf keys are runtime identities and are not serialized; decoding
// assigns fresh keys.
package codec
