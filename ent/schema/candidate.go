package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Candidate holds the schema definition for the Candidate entity: the
// applicant record that pipeline stages key off of. Resume upload and
// job-application intake are out of scope; rows are assumed to already
// exist with a status of NEW when the pipeline picks them up.
type Candidate struct {
	ent.Schema
}

// Fields of the Candidate.
func (Candidate) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("candidate_id").
			Unique().
			Immutable(),
		field.String("job_id").
			Immutable(),
		field.String("full_name"),
		field.String("email").
			Optional().
			Nillable(),
		field.Enum("status").
			Values("NEW", "PROCESSING", "DONE", "ERROR").
			Default("NEW"),
		field.String("error_message").
			Optional().
			Nillable(),
		field.String("combined_text_uri").
			Optional().
			Nillable().
			Comment("Storage key for the text-extraction stage's concatenation of every document's extracted text, labelled by document type; input to structured extraction"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Indexes of the Candidate.
func (Candidate) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("status"),
		index.Fields("job_id"),
	}
}

func (Candidate) Annotations() []schema.Annotation {
	return []schema.Annotation{}
}
