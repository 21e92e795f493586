package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidConfig indicates a configuration error.
	ErrInvalidConfig = errors.New("blockgen: invalid configuration")
	// ErrUnknownBlock indicates a block type without a rendering rule.
	ErrUnknownBlock = errors.New("blockgen: unknown block type")
	// ErrUnsupportedOperation indicates an operator or enum field value
	// missing from a static operator table.
	ErrUnsupportedOperation = errors.New("blockgen: unsupported operation")
	// ErrStructure indicates a block structure that is too deep or cyclic.
	ErrStructure = errors.New("blockgen: structure too deep or cyclic")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("blockgen: code generation failed")
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("blockgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("blockgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// UnknownBlockError is returned when a language has no rule for a block type.
type UnknownBlockError struct {
	Language string
	Type     string
	BlockID  string
}

// Error implements the error interface.
func (e *UnknownBlockError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "blockgen: %s does not know how to generate code for block type %q", e.Language, e.Type)
	if e.BlockID != "" {
		fmt.Fprintf(&b, " (block %s)", e.BlockID)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for UnknownBlockError.
func (e *UnknownBlockError) Is(target error) bool {
	return target == ErrUnknownBlock
}

// NewUnknownBlockError creates a new UnknownBlockError.
func NewUnknownBlockError(language, typ, id string) *UnknownBlockError {
	return &UnknownBlockError{Language: language, Type: typ, BlockID: id}
}

// UnsupportedOperationError is returned when a field holds an operator or
// enum value that the operator table does not know.
type UnsupportedOperationError struct {
	Kind  string // operator family, e.g. "compare"
	Value string
	Block string // block type, when known
}

// Error implements the error interface.
func (e *UnsupportedOperationError) Error() string {
	var b strings.Builder
	b.WriteString("blockgen: unsupported ")
	b.WriteString(e.Kind)
	fmt.Fprintf(&b, " operation %q", e.Value)
	if e.Block != "" {
		b.WriteString(" in block ")
		b.WriteString(e.Block)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for UnsupportedOperationError.
func (e *UnsupportedOperationError) Is(target error) bool {
	return target == ErrUnsupportedOperation
}

// NewUnsupportedOperationError creates a new UnsupportedOperationError.
func NewUnsupportedOperationError(kind, value string) *UnsupportedOperationError {
	return &UnsupportedOperationError{Kind: kind, Value: value}
}

// StructureError is returned when the block structure exceeds the
// configured nesting depth or contains a cycle.
type StructureError struct {
	BlockID string
	Type    string
	Depth   int
	Cycle   bool
}

// Error implements the error interface.
func (e *StructureError) Error() string {
	var b strings.Builder
	if e.Cycle {
		b.WriteString("blockgen: cyclic block structure")
	} else {
		fmt.Fprintf(&b, "blockgen: block structure too deep (depth %d)", e.Depth)
	}
	if e.Type != "" {
		b.WriteString(" at ")
		b.WriteString(e.Type)
	}
	if e.BlockID != "" {
		b.WriteString(" (block ")
		b.WriteString(e.BlockID)
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for StructureError.
func (e *StructureError) Is(target error) bool {
	return target == ErrStructure
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Language string
	Block    string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("blockgen: generation error")
	if e.Language != "" {
		b.WriteString(" in ")
		b.WriteString(e.Language)
	}
	if e.Block != "" {
		b.WriteString(" (block: ")
		b.WriteString(e.Block)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(language, blockType, message string, cause error) *GenerationError {
	return &GenerationError{
		Language: language,
		Block:    blockType,
		Message:  message,
		Cause:    cause,
	}
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsUnknownBlockError reports whether the error is an UnknownBlockError.
func IsUnknownBlockError(err error) bool {
	var blockErr *UnknownBlockError
	return errors.As(err, &blockErr)
}

// IsUnsupportedOperationError reports whether the error is an UnsupportedOperationError.
func IsUnsupportedOperationError(err error) bool {
	var opErr *UnsupportedOperationError
	return errors.As(err, &opErr)
}

// IsStructureError reports whether the error is a StructureError.
func IsStructureError(err error) bool {
	var structErr *StructureError
	return errors.As(err, &structErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
