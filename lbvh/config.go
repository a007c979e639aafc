package lbvh

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/deadsy/bvhx/internal/logx"
)

// Environment flags: BVHX_ERRCHECK turns on the deep invariant assertions
// in checkInvariants; BVHX_BLOCK_WIDTH sets the goroutine batch chunk size
// query.dispatch and marcher.MarchBatch use (see BlockWidth);
// BVHX_PROFILE/BVHX_PROFILE_EVERY gate periodic build-count logging.
var (
	configOnce sync.Once
	errCheck   bool
	blockWidth int

	profileEnabled bool
	profileEvery   uint64
	buildsSeen     uint64
)

func initConfig() {
	configOnce.Do(func() {
		v := strings.TrimSpace(strings.ToLower(os.Getenv("BVHX_ERRCHECK")))
		errCheck = v == "1" || v == "true" || v == "yes"

		blockWidth = 256
		if raw := strings.TrimSpace(os.Getenv("BVHX_BLOCK_WIDTH")); raw != "" {
			var parsed int
			if _, err := fmt.Sscanf(raw, "%d", &parsed); err == nil && parsed > 0 {
				blockWidth = parsed
			}
		}

		pv := strings.TrimSpace(strings.ToLower(os.Getenv("BVHX_PROFILE")))
		profileEnabled = pv == "1" || pv == "true" || pv == "yes"

		profileEvery = 100000
		if raw := strings.TrimSpace(os.Getenv("BVHX_PROFILE_EVERY")); raw != "" {
			if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil && parsed > 0 {
				profileEvery = parsed
			}
		}
	})
}

// recordBuild counts a completed Build call and, when BVHX_PROFILE is set,
// periodically prints a one-line summary every BVHX_PROFILE_EVERY builds
// (default 100000).
func recordBuild(n int) {
	initConfig()
	if !profileEnabled {
		return
	}
	seen := atomic.AddUint64(&buildsSeen, 1)
	if seen%profileEvery == 0 {
		fmt.Printf("lbvh profile: builds=%d last_triangle_count=%d\n", seen, n)
	}
}

// BlockWidth returns the configured default goroutine batch chunk size
// (BVHX_BLOCK_WIDTH, default 256): query.dispatch and marcher.MarchBatch
// each claim work one BlockWidth-sized contiguous range at a time instead
// of one item per channel receive.
func BlockWidth() int {
	initConfig()
	return blockWidth
}

// checkInvariants walks tree and panics on the first broken invariant
// (every internal node's bbox equals the union of its children's). Returns
// at once unless BVHX_ERRCHECK is enabled — a debug-only deep check, distinct
// from the caller-facing errors traverse/query return for ordinary
// contract violations.
func checkInvariants(tree *Tree) {
	initConfig()
	if !errCheck {
		return
	}
	for i := range tree.Internals {
		n := &tree.Internals[i]
		left := tree.Get(n.Left)
		right := tree.Get(n.Right)
		want := left.Box.Union(right.Box)
		if want != n.Box {
			logx.Errorf("lbvh: internal node %d bbox %v does not equal union of children %v", i, n.Box, want)
			panic(fmt.Sprintf("lbvh: internal node %d bbox %v does not equal union of children %v", i, n.Box, want))
		}
	}
}
