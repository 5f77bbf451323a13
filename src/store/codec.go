package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/username/networth/src/model"
)

// Codec persists an ordered list of users to a single file.
type Codec interface {
	Encode(path string, users []model.User) error
	Decode(path string) ([]model.User, error)
}

// CodecFor picks the codec matching the snapshot file extension: ".db" and
// ".sqlite" select SQLiteCodec, anything else JSONCodec.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return SQLiteCodec{}
	default:
		return JSONCodec{}
	}
}

const snapshotVersion = 1

type snapshotEnvelope struct {
	Version int          `json:"version"`
	SavedAt time.Time    `json:"savedAt"`
	Users   []model.User `json:"users"`
}

// JSONCodec stores the registry as an indented JSON document.
type JSONCodec struct{}

func (JSONCodec) Encode(path string, users []model.User) error {
	if users == nil {
		users = []model.User{}
	}
	data, err := json.MarshalIndent(snapshotEnvelope{
		Version: snapshotVersion,
		SavedAt: time.Now().UTC(),
		Users:   users,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp snapshot file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace snapshot file: %w", err)
	}
	return nil
}

func (JSONCodec) Decode(path string) ([]model.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.User{}, nil
	}

	var envelope snapshotEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("parse snapshot file: %w", err)
	}
	if envelope.Version > snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", envelope.Version)
	}
	if envelope.Users == nil {
		envelope.Users = []model.User{}
	}
	return envelope.Users, nil
}
