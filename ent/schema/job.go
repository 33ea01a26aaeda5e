package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// Job holds the schema definition for the Job entity: the requisition
// being screened against. Job authoring is out of scope for the
// pipeline; rows are read-only from the worker's perspective and exist
// only so the structured-extraction stage has raw job text to feed the
// LLM alongside the candidate's resume text. Structured job
// requirements (must/nice/role expectation/year requirements) are not
// stored here — they are derived by the LLM per extraction run and
// persisted on the Extraction record.
type Job struct {
	ent.Schema
}

// Fields of the Job.
func (Job) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("job_id").
			Unique().
			Immutable(),
		field.String("title").
			Immutable(),
		field.Text("raw_text").
			Immutable().
			Comment("Full job description text fed to structured extraction"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

func (Job) Annotations() []schema.Annotation {
	return []schema.Annotation{}
}
