package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Embedding holds the schema definition for the Embedding entity: a
// single embedding vector produced by the embedding-generation stage,
// either a summary of the candidate as a whole (kind CANDIDATE_SUMMARY,
// ref_id nil) or of one nice-to-have requirement (kind NICE_REQ, ref_id
// set to the requirement's id). Re-running the stage deletes all prior
// rows for the candidate before inserting fresh ones.
type Embedding struct {
	ent.Schema
}

// Fields of the Embedding.
func (Embedding) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("embedding_id").
			Unique().
			Immutable(),
		field.String("candidate_id").
			Immutable(),
		field.Enum("kind").
			Values("CANDIDATE_SUMMARY", "NICE_REQ").
			Immutable(),
		field.String("ref_id").
			Optional().
			Nillable().
			Immutable().
			Comment("Nice-requirement id for kind NICE_REQ; unset for CANDIDATE_SUMMARY"),
		field.JSON("vector", []float32{}).
			Immutable(),
		field.String("embedding_model").
			Immutable(),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

// Indexes of the Embedding.
func (Embedding) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("candidate_id", "kind"),
	}
}

func (Embedding) Annotations() []schema.Annotation {
	return []schema.Annotation{}
}
