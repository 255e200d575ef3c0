package movement

import "errors"

var (
	ErrNilGroundProbe = errors.New("movement: ground probe is nil")
	ErrNilBody        = errors.New("movement: body is nil")
)
