package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type actorCtxKey struct{}

// WithActor records the authenticated username on the context so the
// audit hooks can stamp created_by/modified_by.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, username)
}

func ActorFromContext(ctx context.Context) string {
	if ctx != nil {
		if actor, ok := ctx.Value(actorCtxKey{}).(string); ok && actor != "" {
			return actor
		}
	}
	return "admin"
}

// Audit carries the common audit columns shared by every entity.
// Version starts at 0 and increments on every update.
type Audit struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at" gorm:"autoUpdateTime"`
	Version    uint      `json:"version" gorm:"not null;default:0"`
	CreatedBy  string    `json:"created_by" gorm:"size:50;not null;default:'admin'"`
	ModifiedBy string    `json:"modified_by" gorm:"size:50;not null;default:'admin'"`
}

func (a *Audit) BeforeCreate(tx *gorm.DB) error {
	actor := ActorFromContext(tx.Statement.Context)
	a.CreatedBy = actor
	a.ModifiedBy = actor
	return nil
}

func (a *Audit) BeforeUpdate(tx *gorm.DB) error {
	a.Version++
	a.ModifiedBy = ActorFromContext(tx.Statement.Context)
	return nil
}

// audited marks a model as carrying the shared audit columns; the audit
// journal callback only records models implementing it.
func (Audit) audited() {}

type auditedModel interface{ audited() }
