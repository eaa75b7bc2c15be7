package bus

import "errors"

var ErrNilHandler = errors.New("bus: handler must not be nil")
