package assets

import "errors"

var (
	ErrNoClip            = errors.New("no clip")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrInvalidWAV        = errors.New("not a valid WAV file")
	ErrInvalidRate       = errors.New("invalid sample rate")
)
