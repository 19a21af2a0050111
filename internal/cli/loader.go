package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/boostcard/internal/compiler"
	"github.com/roach88/boostcard/internal/engine"
)

// Error code constants for loading. Compile errors keep the compiler's own
// codes (E100-E110).
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE or scenario files found
	ErrCodeLoadFailed  = "E004" // File or CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeUnsupported = "E006" // Unsupported document extension
	ErrCodeWriteFailed = "E007" // File write error
)

// LoadError represents an error that occurred while reading a selection
// document, before any record was compiled.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
	Err     error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadSelections reads a selection document and compiles its records.
//
// The syntax is chosen by extension: .json, .yaml/.yml or .cue. A
// directory is loaded as a CUE package.
func LoadSelections(path string) ([]engine.Fitted, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("selection document not found: %s", path), Err: err}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("error accessing %s: %v", path, err), Err: err}
	}
	if info.IsDir() {
		return loadCUEPackage(path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json", ".yaml", ".yml", ".cue":
	default:
		return nil, &LoadError{Code: ErrCodeUnsupported, Message: fmt.Sprintf("unsupported document type %q (want .json, .yaml, .yml or .cue)", ext)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading %s: %v", path, err), Err: err}
	}

	switch ext {
	case ".json":
		return compiler.ParseFitted(data)
	case ".cue":
		return compiler.ParseCUE(data, path)
	default:
		return compiler.ParseYAML(data)
	}
}

// loadCUEPackage builds the CUE package in dir and compiles every record
// in it.
func loadCUEPackage(dir string) ([]engine.Fitted, error) {
	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err), Err: err}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err), Err: inst.Err}
	}

	return compiler.CompileCUE(cuecontext.New().BuildInstance(inst))
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// describeError maps a load or compile error to a response code, message
// and details, plus the exit code it should produce. Problems with the
// document itself are failures; problems reaching it are command errors.
func describeError(err error) (code, message string, details map[string]any, exit int) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		details = map[string]any{}
		if loadErr.Pos.IsValid() {
			details["line"] = loadErr.Pos.Line()
		}
		if len(details) == 0 {
			details = nil
		}
		return loadErr.Code, loadErr.Message, details, ExitCommandError
	}

	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		details = map[string]any{"field": compileErr.Field}
		if compileErr.Pos.IsValid() {
			details["file"] = compileErr.Pos.Filename()
			details["line"] = compileErr.Pos.Line()
		}
		return compileErr.Code, compileErr.Message, details, ExitFailure
	}

	if errors.Is(err, compiler.ErrEmptyDocument) {
		return compiler.ErrCodeEmptyDocument, err.Error(), nil, ExitFailure
	}

	return ErrCodeGeneric, err.Error(), nil, ExitFailure
}

// reportError writes err through the formatter and returns the ExitError
// the command should fail with.
func reportError(f *OutputFormatter, message string, err error) error {
	code, msg, details, exit := describeError(err)
	if outErr := f.Error(code, msg, details); outErr != nil {
		return outErr
	}
	return WrapExitError(exit, message, err)
}
