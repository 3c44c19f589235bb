package persist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/Makepad-fr/dayplan/internal/model"
)

// Codec converts a task list to and from its stored bytes.
type Codec interface {
	Name() string
	Marshal(tasks []model.Task) ([]byte, error)
	Unmarshal(data []byte) ([]model.Task, error)
}

// JSONCodec stores the list as a JSON array of {id, text, completed}.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return json.MarshalIndent(tasks, "", "  ")
}

func (JSONCodec) Unmarshal(data []byte) ([]model.Task, error) {
	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CBORCodec stores the list as a CBOR array with the same field names.
type CBORCodec struct{}

func (CBORCodec) Name() string { return "cbor" }

func (CBORCodec) Marshal(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return cbor.Marshal(tasks)
}

func (CBORCodec) Unmarshal(data []byte) ([]model.Task, error) {
	var tasks []model.Task
	if err := cbor.Unmarshal(data, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CodecByName resolves "json" (default) or "cbor".
func CodecByName(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSONCodec{}, nil
	case "cbor":
		return CBORCodec{}, nil
	}
	return nil, fmt.Errorf("unknown codec %q", name)
}
