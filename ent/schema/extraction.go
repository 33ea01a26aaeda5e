package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Extraction holds the schema definition for the Extraction entity:
// the structured job requirements and candidate profile the LLM
// extraction stage derives from a job's raw text and a candidate's
// combined resume text. One row per candidate; later runs upsert in
// place rather than appending.
type Extraction struct {
	ent.Schema
}

// Fields of the Extraction.
func (Extraction) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("extraction_id").
			Unique().
			Immutable(),
		field.String("candidate_id").
			Immutable(),
		field.JSON("job_requirements", map[string]interface{}{}).
			Comment("{must: [{id,text,skill_tags}], nice: [...], role_expectation, year_requirements}"),
		field.JSON("candidate_profile", map[string]interface{}{}).
			Comment("{skills, roles, experience_years, highlights, concerns, unknowns}"),
		field.JSON("evidence", map[string]interface{}{}).
			Optional().
			Comment("{job: {requirement_id: quote}, candidate: {attribute_id: quote}}"),
		field.String("llm_model").
			Comment("Model identifier used for this extraction"),
		field.String("extract_version").
			Default("v1"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Indexes of the Extraction.
func (Extraction) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("candidate_id").
			Unique(),
	}
}

func (Extraction) Annotations() []schema.Annotation {
	return []schema.Annotation{}
}
