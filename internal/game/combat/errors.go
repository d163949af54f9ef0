package combat

import "errors"

var (
	ErrEmptyID       = errors.New("entity id is empty")
	ErrDuplicateID   = errors.New("entity already registered")
	ErrNilVitality   = errors.New("vitality is nil")
	ErrNilTransform  = errors.New("transform is nil")
	ErrUnknownEntity = errors.New("entity not registered")
)
