// Package script evaluates Lisp geometry scripts into configurations.
// It wraps zygomys in a sandboxed environment so that a script file
// can serve anywhere a YAML or JSON config does, with variables and
// arithmetic available for derived positions.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/scarf-exp/geomscarf/pkg/assembly"
)

// EvalError is a non-fatal problem in user script code, such as a
// parse error or a misused builtin.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine evaluates geometry scripts. It is safe for concurrent use;
// each call to Evaluate runs in a fresh sandboxed environment so
// results depend only on the source text.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// New returns a script evaluation engine.
func New() *Engine {
	return &Engine{}
}

// Evaluate runs a geometry script and returns the configuration it
// declares.
//
// Return semantics:
//   - success: config, nil errors, nil error
//   - parse or runtime failure in the script: nil, errors, nil
//   - fatal failure (timeout, panic): nil, nil, error
func (e *Engine) Evaluate(source string) (*assembly.Config, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		cfg, evalErrs, err := evaluate(source)
		ch <- evalResult{cfg: cfg, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// Evaluate runs a script through a fresh engine, collapsing script
// errors into a single error value. Callers that treat a script like
// any other config file use this.
func Evaluate(source string) (*assembly.Config, error) {
	cfg, evalErrs, err := New().Evaluate(source)
	if err != nil {
		return nil, err
	}
	if len(evalErrs) > 0 {
		return nil, fmt.Errorf("geometry script: %w", evalErrs[0])
	}
	return cfg, nil
}

func evaluate(source string) (*assembly.Config, []EvalError, error) {
	// An empty script declares the default geometry.
	if strings.TrimSpace(source) == "" {
		return &assembly.Config{}, nil, nil
	}

	// Sandbox mode keeps scripts away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	cfg := &assembly.Config{}
	registerBuiltins(env, cfg)

	if err := env.LoadString(preprocess(source)); err != nil {
		return nil, toEvalErrors(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, toEvalErrors(err), nil
	}
	return cfg, nil, nil
}

var (
	lineLong  = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)
	lineShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)
)

// toEvalErrors converts a zygomys error, extracting the source line
// when the message carries one.
func toEvalErrors(err error) []EvalError {
	msg := err.Error()
	for _, pat := range []*regexp.Regexp{lineLong, lineShort} {
		if m := pat.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
		}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
