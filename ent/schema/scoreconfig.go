package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ScoreConfig holds the schema definition for the ScoreConfig entity:
// a versioned, append-only snapshot of scoring parameters. The scoring
// stage always reads the highest version row; operators roll forward
// by inserting a new version rather than mutating an existing one.
type ScoreConfig struct {
	ent.Schema
}

// Fields of the ScoreConfig.
func (ScoreConfig) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("score_config_id").
			Unique().
			Immutable(),
		field.Int("version").
			Immutable(),
		field.JSON("weights_json", map[string]float64{}).
			Immutable().
			Comment("Composite weights for must/year/role/nice"),
		field.Bool("must_cap_enabled").
			Default(true).
			Immutable(),
		field.Float("must_cap_value").
			Default(20).
			Immutable(),
		field.JSON("role_distance_json", map[string]interface{}{}).
			Immutable().
			Comment("IC/Lead/Manager distance matrix for role scoring"),
		field.Int("nice_top_n").
			Default(3).
			Immutable(),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
	}
}

// Indexes of the ScoreConfig.
func (ScoreConfig) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("version").
			Unique(),
	}
}

func (ScoreConfig) Annotations() []schema.Annotation {
	return []schema.Annotation{}
}
