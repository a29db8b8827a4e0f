package cli

import "errors"

// Fail reports err through the formatter and returns it as an
// ExitCodeError with the matching exit code
func Fail(formatter *OutputFormatter, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) && exitErr.Reported {
		return err
	}
	code, errCode, suggestion := classify(err)
	_ = formatter.ErrorWithSuggestion(errCode, err.Error(), suggestion)
	return &ExitCodeError{Code: code, Err: err, Reported: true}
}

// FailWith reports err with an explicit exit code and error code
func FailWith(formatter *OutputFormatter, exitCode int, errCode string, err error) error {
	_ = formatter.Error(errCode, err.Error())
	return &ExitCodeError{Code: exitCode, Err: err, Reported: true}
}

// Report shows err unless a command already did. Usage errors get the
// --help suggestion.
func Report(formatter *OutputFormatter, err error) {
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) && exitErr.Reported {
		return
	}
	_, errCode, suggestion := classify(err)
	_ = formatter.ErrorWithSuggestion(errCode, err.Error(), suggestion)
}
