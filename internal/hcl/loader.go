package hcl

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
	"github.com/specialistvlad/minipack/internal/config"
	"github.com/specialistvlad/minipack/internal/ctxlog"
	"github.com/specialistvlad/minipack/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// DotEnvFile is the optional environment file read next to the configuration.
const DotEnvFile = ".env"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
}

// NewLoader creates a new HCL configuration loader that evaluates against
// the process environment.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ}
}

// fileRoot is decoded from every configuration file.
type fileRoot struct {
	Entry      string `hcl:"entry,optional"`
	Output     string `hcl:"output,optional"`
	BaseDir    string `hcl:"base_dir,optional"`
	Resolve    string `hcl:"resolve,optional"`
	Instancing string `hcl:"instancing,optional"`
	Cycles     string `hcl:"cycles,optional"`
	Scanner    string `hcl:"scanner,optional"`
	Verify     *bool  `hcl:"verify,optional"`
}

// Load reads the configuration file or directory at path.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	files, dir, err := l.findFiles(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	env, err := l.environment(dir)
	if err != nil {
		return nil, err
	}
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}

	parser := hclparse.NewParser()
	model := &config.Model{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		model = config.Merge(model, l.translate(dir, &root))
	}

	logger.Debug("HCL loading complete.", "entry", model.Entry, "output", model.Output)
	return model, nil
}

// findFiles returns the configuration files for path and the directory
// relative paths and the .env file are resolved against.
func (l *Loader) findFiles(path string) ([]string, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", fmt.Errorf("error accessing config path %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, filepath.Dir(path), nil
	}

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, "", fmt.Errorf("error walking config directory %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, "", fmt.Errorf("no .hcl files found in %s", path)
	}
	return files, path, nil
}

// environment builds the env object: the process environment, overlaid with
// the variables of dir/.env if that file exists.
func (l *Loader) environment(dir string) (cty.Value, error) {
	vars := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}

	dotenv := filepath.Join(dir, DotEnvFile)
	overlay, err := godotenv.Read(dotenv)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cty.NilVal, fmt.Errorf("failed to read %s: %w", dotenv, err)
	default:
		for name, value := range overlay {
			vars[name] = cty.StringVal(value)
		}
	}

	return cty.ObjectVal(vars), nil
}

func (l *Loader) translate(dir string, root *fileRoot) *config.Model {
	return &config.Model{
		Entry:      resolvePath(dir, root.Entry),
		Output:     resolvePath(dir, root.Output),
		BaseDir:    resolvePath(dir, root.BaseDir),
		Resolution: root.Resolve,
		Instancing: root.Instancing,
		Cycles:     root.Cycles,
		Scanner:    root.Scanner,
		Verify:     root.Verify,
	}
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
