package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Explanation holds the schema definition for the Explanation entity:
// the natural-language rationale the final pipeline stage generates
// from a candidate's Score and Extraction. It is the pipeline's last
// stage; the queue runtime moves the candidate to status DONE once
// this stage's handler succeeds.
type Explanation struct {
	ent.Schema
}

// Fields of the Explanation.
func (Explanation) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("explanation_id").
			Unique().
			Immutable(),
		field.String("candidate_id").
			Immutable(),
		field.Text("summary"),
		field.JSON("strengths", []string{}).
			Optional(),
		field.JSON("concerns", []string{}).
			Optional(),
		field.JSON("unknowns", []string{}).
			Optional(),
		field.JSON("must_gaps", []string{}).
			Optional(),
		field.String("llm_model"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Indexes of the Explanation.
func (Explanation) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("candidate_id").
			Unique(),
	}
}

func (Explanation) Annotations() []schema.Annotation {
	return []schema.Annotation{}
}
