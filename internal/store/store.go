// Package store is the durable key-value layer: serialized collections
// under namespaced keys, each wrapped in a versioned envelope so the
// on-disk schema can evolve safely.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/shaik1234567/TaskFlow-AI/internal/apperrors"
)

// Namespaced storage keys, one per collection.
const (
	KeyUsers       = "taskflow_users"
	KeyTasks       = "taskflow_tasks"
	KeyCurrentUser = "taskflow_current_user"
	KeyToken       = "taskflow_token"
)

// SchemaVersion is written into every envelope; reads reject documents
// written by a different version.
const SchemaVersion = 1

type envelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	Data          json.RawMessage `json:"data"`
}

// Store holds JSON documents under namespaced keys. Get reports false
// when the key has never been written. Implementations carry no
// business logic.
type Store interface {
	Get(key string, out interface{}) (bool, error)
	Put(key string, value interface{}) error
	Delete(key string) error
}

func marshalEnvelope(value interface{}) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding %T: %v", apperrors.ErrStorage, value, err)
	}
	return json.MarshalIndent(envelope{SchemaVersion: SchemaVersion, Data: data}, "", "  ")
}

func unmarshalEnvelope(raw []byte, key string, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", apperrors.ErrStorage, key, err)
	}
	if env.SchemaVersion != SchemaVersion {
		return fmt.Errorf("%w: %s has schema version %d, want %d",
			apperrors.ErrStorage, key, env.SchemaVersion, SchemaVersion)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decoding %s payload: %v", apperrors.ErrStorage, key, err)
	}
	return nil
}
