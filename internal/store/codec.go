package store

import (
	"encoding/json"
	"fmt"

	"github.com/theirongolddev/dials/internal/model"

	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/jsonc"
)

// Codec converts between a Budget and its persisted bytes.
type Codec interface {
	Encode(b model.Budget) ([]byte, error)
	Decode(data []byte, b *model.Budget) error
	Ext() string
}

// CodecByName returns the codec for "json" (the default) or "cbor".
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSONCodec{}, nil
	case "cbor":
		return CBORCodec{}, nil
	default:
		return nil, fmt.Errorf("store: unknown format %q", name)
	}
}

// JSONCodec writes indented JSON and tolerates comments and trailing commas
// on read, so a hand-edited budget file still loads.
type JSONCodec struct{}

func (JSONCodec) Encode(b model.Budget) ([]byte, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding budget: %w", err)
	}
	return append(data, '\n'), nil
}

func (JSONCodec) Decode(data []byte, b *model.Budget) error {
	if err := json.Unmarshal(jsonc.ToJSON(data), b); err != nil {
		return fmt.Errorf("decoding budget: %w", err)
	}
	return nil
}

func (JSONCodec) Ext() string { return "json" }

// Core Deterministic Encoding: identical budgets produce identical bytes.
var cborEnc cbor.EncMode

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("store: CBOR encoder initialization failed: " + err.Error())
	}
}

// CBORCodec stores the budget as compact CBOR using the JSON field names.
type CBORCodec struct{}

func (CBORCodec) Encode(b model.Budget) ([]byte, error) {
	data, err := cborEnc.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encoding budget: %w", err)
	}
	return data, nil
}

func (CBORCodec) Decode(data []byte, b *model.Budget) error {
	if err := cbor.Unmarshal(data, b); err != nil {
		return fmt.Errorf("decoding budget: %w", err)
	}
	return nil
}

func (CBORCodec) Ext() string { return "cbor" }
