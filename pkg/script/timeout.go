package script

import (
	"fmt"
	"sync"
	"time"

	"github.com/scarf-exp/geomscarf/pkg/assembly"
)

// EvalTimeout bounds a single script evaluation.
const EvalTimeout = 5 * time.Second

type evalResult struct {
	cfg    *assembly.Config
	errors []EvalError
	err    error
}

// waitWithTimeout returns the first result from ch unless the
// evaluation exceeds EvalTimeout. The generation counter discards
// results from runs superseded while blocked; a worker goroutine may
// outlive the timeout, its late result is dropped.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	current *uint64,
) (*assembly.Config, []EvalError, error) {
	timer := time.NewTimer(EvalTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		live := *current
		mu.Unlock()
		if gen != live {
			return nil, nil, fmt.Errorf("evaluation superseded by newer request")
		}
		return res.cfg, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", EvalTimeout)
	}
}
