package models

import (
	"encoding/json"
	"log"
	"reflect"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLogEntry is an append-only journal row recorded for every write
// to an audited entity.
type AuditLogEntry struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	Actor      string    `json:"actor" gorm:"size:50;not null"`
	Action     string    `json:"action" gorm:"size:10;not null"` // create, update, delete
	ObjectType string    `json:"object_type" gorm:"size:64;not null;index"`
	ObjectID   uint      `json:"object_id" gorm:"index"`
	Changes    string    `json:"changes" gorm:"type:text"`
	Timestamp  time.Time `json:"timestamp" gorm:"not null"`
}

// RegisterAuditLog hooks the journal writer into the create, update and
// delete callback chains.
func RegisterAuditLog(db *gorm.DB) error {
	if err := db.Callback().Create().After("gorm:create").Register("pollsnip:audit_create", auditCallback("create")); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("pollsnip:audit_update", auditCallback("update")); err != nil {
		return err
	}
	return db.Callback().Delete().After("gorm:delete").Register("pollsnip:audit_delete", auditCallback("delete"))
}

func auditCallback(action string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		if tx.Error != nil || tx.Statement.Schema == nil {
			return
		}
		model, ok := tx.Statement.Model.(auditedModel)
		if !ok {
			return
		}

		entry := AuditLogEntry{
			ID:         uuid.NewString(),
			Actor:      ActorFromContext(tx.Statement.Context),
			Action:     action,
			ObjectType: tx.Statement.Table,
			Timestamp:  time.Now().UTC(),
		}

		rv := reflect.Indirect(reflect.ValueOf(model))
		if rv.Kind() == reflect.Struct {
			if field := tx.Statement.Schema.PrioritizedPrimaryField; field != nil {
				if v, zero := field.ValueOf(tx.Statement.Context, rv); !zero {
					if id, ok := v.(uint); ok {
						entry.ObjectID = id
					}
				}
			}
			if action != "delete" {
				if data, err := json.Marshal(model); err == nil {
					entry.Changes = string(data)
				}
			}
		}

		// A failed journal write must not fail the request.
		session := tx.Session(&gorm.Session{NewDB: true, SkipHooks: true})
		if err := session.Create(&entry).Error; err != nil {
			log.Printf("Failed to write audit log entry for %s %s: %v", action, entry.ObjectType, err)
		}
	}
}
