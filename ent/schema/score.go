package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Score holds the schema definition for the Score entity: the output
// of the composite scoring stage for a candidate against a specific
// version of the scoring configuration.
type Score struct {
	ent.Schema
}

// Fields of the Score.
func (Score) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("score_id").
			Unique().
			Immutable(),
		field.String("candidate_id").
			Immutable(),
		field.Int("config_version").
			Immutable().
			Comment("ScoreConfig.version used to produce this score"),
		field.Float("must_score"),
		field.Float("year_score"),
		field.Float("role_score"),
		field.Float("nice_score"),
		field.JSON("must_gaps", []string{}).
			Optional().
			Comment("Ordered text of every unsatisfied must requirement"),
		field.Int("total_fit_0_100"),
		field.Bool("has_must_gaps"),
		field.Bool("must_cap_applied").
			Default(false),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Indexes of the Score.
func (Score) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("candidate_id").
			Unique(),
	}
}

func (Score) Annotations() []schema.Annotation {
	return []schema.Annotation{}
}
