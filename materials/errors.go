package materials

import "errors"

var (
	ErrUnknownType     = errors.New("unknown material type")
	ErrUnnamedMaterial = errors.New("material has no name")
	ErrDuplicateName   = errors.New("duplicate material name")
)
