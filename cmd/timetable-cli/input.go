package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
)

// loadRequest reads a scheduling problem file. Keys missing from the file leave the
// corresponding pointer fields nil so engine defaults apply.
func loadRequest(path string) (dto.GenerateTimetableRequest, error) {
	var req dto.GenerateTimetableRequest

	raw, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("read %s: %w", path, err)
	}
	var inputJSON map[string]any
	if err := json.Unmarshal(raw, &inputJSON); err != nil {
		return req, fmt.Errorf("parse %s: %w", path, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &req,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return req, err
	}
	if err := decoder.Decode(inputJSON); err != nil {
		return req, fmt.Errorf("decode %s: %w", path, err)
	}
	return req, nil
}
