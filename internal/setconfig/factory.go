package setconfig

import (
	"encoding/json"
	"fmt"
)

// New builds the configuration variant matching the record's type tag.
func New(record Record) (Configuration, error) {
	var (
		cfg Configuration
		err error
	)
	switch record.Type {
	case TypeStandard:
		cfg, err = newStandard(record)
	case TypeDrop:
		cfg, err = newDrop(record)
	case TypePyramidal:
		cfg, err = newPyramidal(record)
	case TypeMyoReps:
		cfg, err = newMyoReps(record)
	case TypeRestPause:
		cfg, err = newRestPause(record)
	case TypeMAV:
		cfg, err = newMAV(record)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, record.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return cfg, nil
}

// Parse decodes a JSON plain record and hydrates it.
func Parse(data []byte) (Configuration, error) {
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: unmarshal record: %w", ErrInvalidConfiguration, err)
	}
	return New(record)
}
