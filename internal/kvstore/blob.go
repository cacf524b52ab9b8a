package kvstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// BlobVersion is the schema version written by EncodeBlob. Version 1 is the
// bare JSON array written by older builds.
const BlobVersion = 2

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// EncodeBlob wraps v in the current versioned envelope.
func EncodeBlob(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(envelope{Version: BlobVersion, Data: data})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DecodeBlob fills v from raw. A legacy bare array is passed to migrate;
// with a nil migrate it is decoded into v directly.
func DecodeBlob(raw string, v any, migrate func(legacy []byte) error) error {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 {
		return errors.New("empty blob")
	}

	switch data[0] {
	case '[':
		if migrate == nil {
			return json.Unmarshal(data, v)
		}
		return migrate(data)
	case '{':
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return err
		}
		if env.Version != BlobVersion {
			return fmt.Errorf("unsupported blob version %d", env.Version)
		}
		if len(env.Data) == 0 {
			return errors.New("blob has no data")
		}
		return json.Unmarshal(env.Data, v)
	default:
		return fmt.Errorf("unrecognised blob starting with %q", data[0])
	}
}
