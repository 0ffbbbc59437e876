package execution

import "errors"

var (
	ErrAlreadyCompleted      = errors.New("set execution is already completed")
	ErrInvalidSetData        = errors.New("invalid completed set data")
	ErrInvalidConfiguration  = errors.New("invalid execution configuration")
	ErrInvalidStartingWeight = errors.New("invalid starting weight")
	ErrInvalidState          = errors.New("invalid execution state")
	ErrUnsupportedScheme     = errors.New("unsupported set scheme")
)
