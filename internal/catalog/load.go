package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// Error code constants, shared with the CLI's JSON error output.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed

	ErrCodeInvalidEnemy   = "E201" // Enemy definition malformed
	ErrCodeInvalidSpawner = "E202" // Spawner block malformed
	ErrCodeNoEnemies      = "E203" // Catalog declares no enemies
)

// LoadError is a failure to load a catalog directory.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorCode returns the E### code of err, or ErrCodeGeneric.
func ErrorCode(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ErrCodeGeneric
}

// Load reads every .cue file in dir and compiles the catalog.
// Stops at the first error.
func Load(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("catalog directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing catalog directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	files, err := FindCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}
	// Conflicts below the root only surface on validation.
	if err := value.Validate(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("validating CUE value: %v", err)}
	}

	return FromValue(value)
}

// FromValue compiles a catalog from an already built CUE value.
func FromValue(value cue.Value) (*Catalog, error) {
	c := &Catalog{Spawner: DefaultSpawnerConfig()}

	enemies := value.LookupPath(cue.ParsePath("enemy"))
	if enemies.Exists() {
		iter, err := enemies.Fields()
		if err != nil {
			return nil, &LoadError{Code: ErrCodeInvalidEnemy, Message: fmt.Sprintf("iterating enemies: %v", err)}
		}
		for iter.Next() {
			e, err := CompileEnemy(iter.Value())
			if err != nil {
				return nil, toLoadError(ErrCodeInvalidEnemy, "enemy."+iter.Selector().String(), err)
			}
			c.Enemies = append(c.Enemies, *e)
		}
	}
	if len(c.Enemies) == 0 {
		return nil, &LoadError{Code: ErrCodeNoEnemies, Message: "no enemies found in catalog"}
	}

	spawner := value.LookupPath(cue.ParsePath("spawner"))
	if spawner.Exists() {
		cfg, err := CompileSpawner(spawner)
		if err != nil {
			return nil, toLoadError(ErrCodeInvalidSpawner, "spawner", err)
		}
		c.Spawner = cfg
	}

	return c, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

func toLoadError(code, context string, err error) *LoadError {
	var ce *CompileError
	if errors.As(err, &ce) {
		return &LoadError{
			Code:    code,
			Message: fmt.Sprintf("%s: %s: %s", context, ce.Field, ce.Message),
			Pos:     ce.Pos,
		}
	}
	return &LoadError{Code: code, Message: fmt.Sprintf("%s: %v", context, err)}
}
