package pcd8544

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	ErrResetPin = errors.New("pcd8544: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("pcd8544: data/command (DC) GPIO pin is invalid")
	ErrClosed   = errors.New("pcd8544: display is closed")
)

// ErrorKind identifies the capability that failed.
type ErrorKind uint8

// Error kinds.
const (
	BusError ErrorKind = iota + 1
	DCPinError
	ResetPinError
)

func (k ErrorKind) String() string {
	switch k {
	case BusError:
		return "bus"
	case DCPinError:
		return "DC pin"
	case ResetPinError:
		return "reset pin"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// Error is returned when the bus or one of the control pins fails. Err is the
// error reported by the underlying capability.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pcd8544: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func wrap(kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}
