package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QueueItem holds the schema definition for the QueueItem entity: one
// attempt of one stage for one candidate, durably tracked through the
// READY -> RUNNING -> {DONE, FAILED -> READY} state machine.
type QueueItem struct {
	ent.Schema
}

// Fields of the QueueItem.
func (QueueItem) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("queue_id").
			Unique().
			Immutable(),
		field.String("candidate_id").
			Immutable().
			Comment("Opaque reference to the out-of-scope Candidate entity"),
		field.Enum("stage").
			Values("TEXT_EXTRACT", "LLM_EXTRACT", "EMBED", "SCORE", "EXPLAIN"),
		field.Enum("status").
			Values("READY", "RUNNING", "DONE", "FAILED").
			Default("READY"),
		field.Int("attempts").
			Default(0).
			Comment("Monotonically increases; incremented on every lease"),
		field.String("last_error").
			Optional().
			Nillable().
			MaxLen(1000).
			Comment("Truncated to 1000 chars on fail()"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Indexes of the QueueItem.
func (QueueItem) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("status", "created_at").
			Annotations(entsql.IndexWhere("status = 'READY'")),
		index.Fields("status", "stage"),
		index.Fields("candidate_id"),
	}
}

func (QueueItem) Annotations() []schema.Annotation {
	return []schema.Annotation{}
}
