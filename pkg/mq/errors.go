package mq

// TempError marks a handler failure as retryable. Consumers nack with
// requeue when the wrapped error is temporary.
type TempError struct {
	Err error
}

func Temporary(err error) error {
	if err == nil {
		return nil
	}
	return TempError{Err: err}
}

func (t TempError) Error() string {
	return t.Err.Error()
}

func (t TempError) Unwrap() error {
	return t.Err
}

func (t TempError) Temporary() bool {
	return true
}
