package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Document holds the schema definition for the Document entity: one
// uploaded file (resume, cover letter, portfolio) belonging to a
// Candidate. The raw_uri points at the original bytes in object
// storage; text_uri is populated by the text-extraction stage.
type Document struct {
	ent.Schema
}

// Fields of the Document.
func (Document) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("document_id").
			Unique().
			Immutable(),
		field.String("candidate_id").
			Immutable(),
		field.Enum("doc_type").
			Values("RESUME", "COVER_LETTER", "PORTFOLIO", "OTHER").
			Immutable(),
		field.String("raw_uri").
			Immutable().
			Comment("Storage key for the original uploaded bytes"),
		field.String("filename").
			Immutable(),
		field.String("text_uri").
			Optional().
			Nillable().
			Comment("Set once text extraction succeeds for this document"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

// Indexes of the Document.
func (Document) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("candidate_id"),
	}
}

func (Document) Annotations() []schema.Annotation {
	return []schema.Annotation{}
}
