// Package pipeline orchestrates the front-end stages the driver runs
// over an already-desugared program: extern declarations from
// yolang.yaml, type inference, and type materialization.
package pipeline

import (
	"github.com/yolang-dev/yolang/internal/analyzer"
	"github.com/yolang-dev/yolang/internal/ast"
	"github.com/yolang-dev/yolang/internal/config"
	"github.com/yolang-dev/yolang/internal/ext"
	"github.com/yolang-dev/yolang/internal/symbols"
	"github.com/yolang-dev/yolang/internal/typesystem"
)

// Options configures a front-end run.
type Options struct {
	// ConfigPath points at a yolang.yaml file. Empty skips extern
	// loading.
	ConfigPath string

	// HostVersion overrides the version checked against the config's
	// requires constraint. Defaults to the build's own version.
	HostVersion string
}

// Result carries the outcome of a successful run.
type Result struct {
	Ctx     *analyzer.InferenceContext
	Env     symbols.TypeEnv
	Subst   typesystem.Subst
	Program *ast.Program
}

// Run type-checks prog. When a config path is given, its extern
// declarations are registered ahead of the program's own declarations.
// On success every node slot and name-reference cell has been
// materialized.
func Run(prog *ast.Program, opts Options) (*Result, error) {
	if opts.ConfigPath != "" {
		cfg, err := ext.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		host := opts.HostVersion
		if host == "" {
			host = config.Version
		}
		if err := cfg.CheckHostVersion(host); err != nil {
			return nil, err
		}
		externs, err := cfg.Declarations()
		if err != nil {
			return nil, err
		}
		decls := make([]ast.Decl, 0, len(externs)+len(prog.Decls))
		for _, d := range externs {
			decls = append(decls, d)
		}
		decls = append(decls, prog.Decls...)
		prog = &ast.Program{Decls: decls}
	}

	ctx, env, subst, err := analyzer.Infer(prog)
	if err != nil {
		return nil, err
	}
	analyzer.Resolve(prog, subst)
	return &Result{Ctx: ctx, Env: env, Subst: subst, Program: prog}, nil
}
