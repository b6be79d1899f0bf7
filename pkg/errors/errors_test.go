package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidCharClass, "bad custom chars")

	if got := err.Error(); got != "[TXT_001] bad custom chars" {
		t.Errorf("Error() = %q", got)
	}
	if err.Stack == "" {
		t.Error("stack not captured")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrCodeLogMissingColumn, "missing %d columns", 2)
	if !strings.Contains(err.Error(), "missing 2 columns") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestError_WithDetail(t *testing.T) {
	base := New(ErrCodeValidation, "validation failed")
	detailed := base.WithDetail("max_rounds = -1")

	if got := detailed.Error(); got != "[COMMON_004] validation failed: max_rounds = -1" {
		t.Errorf("Error() = %q", got)
	}
	if base.Detail != "" {
		t.Error("WithDetail mutated the receiver")
	}

	var nilErr *AppError
	if nilErr.WithDetail("x") != nil {
		t.Error("WithDetail on nil must return nil")
	}
}

func TestError_WithCause(t *testing.T) {
	cause := stderrors.New("disk full")
	base := New(ErrCodeLogFileWrite, "flush output")
	withCause := base.WithCause(cause)

	if !stderrors.Is(withCause, cause) {
		t.Error("cause not reachable via errors.Is")
	}
	if base.Cause != nil {
		t.Error("WithCause mutated the receiver")
	}

	var nilErr *AppError
	if nilErr.WithCause(cause) != nil {
		t.Error("WithCause on nil must return nil")
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("file truncated")
	err := Wrap(cause, ErrCodeLogFileParse, "read row")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if err.Code != ErrCodeLogFileParse {
		t.Errorf("code = %v", err.Code)
	}
	if Wrap(nil, ErrCodeInternal, "noop") != nil {
		t.Error("Wrap(nil) must return nil")
	}
}

func TestWrap_PreservesCodeOnUnknown(t *testing.T) {
	inner := New(ErrCodeCorrectorFailed, "corrector failed")
	outer := Wrap(fmt.Errorf("layer: %w", inner), CodeUnknown, "pipeline failed")

	if outer.Code != ErrCodeCorrectorFailed {
		t.Errorf("code = %v, want %v", outer.Code, ErrCodeCorrectorFailed)
	}
}

func TestIsCode(t *testing.T) {
	err := Wrap(New(ErrCodeRecognizerFailed, "boom"), ErrCodeInternal, "resolve failed")

	if !IsCode(err, ErrCodeInternal) {
		t.Error("outer code not found")
	}
	if !IsCode(err, ErrCodeRecognizerFailed) {
		t.Error("inner code not found")
	}
	if IsCode(err, ErrCodeNotFound) {
		t.Error("unrelated code matched")
	}
	if IsCode(nil, ErrCodeInternal) {
		t.Error("nil error matched")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(nil); got != CodeOK {
		t.Errorf("GetCode(nil) = %v", got)
	}
	if got := GetCode(stderrors.New("plain")); got != CodeUnknown {
		t.Errorf("GetCode(plain) = %v", got)
	}
	if got := GetCode(NotFound("missing")); got != CodeNotFound {
		t.Errorf("GetCode = %v", got)
	}
}

func TestFactories(t *testing.T) {
	if err := NotFound("gone"); err.Code != CodeNotFound {
		t.Errorf("NotFound code = %v", err.Code)
	}
	if err := InvalidParam("bad"); err.Code != CodeInvalidParam {
		t.Errorf("InvalidParam code = %v", err.Code)
	}
	if err := Internal("oops"); err.Code != CodeInternal {
		t.Errorf("Internal code = %v", err.Code)
	}
}

func TestModuleForCode(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeInternal, "COMMON"},
		{ErrCodeInvalidCharClass, "TXT"},
		{ErrCodeRecognizerFailed, "ENT"},
		{ErrCodeLogFileOpen, "LOG"},
	}
	for _, tt := range tests {
		if got := ModuleForCode(tt.code); got != tt.want {
			t.Errorf("ModuleForCode(%v) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
