package core

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/huzzai/rizz-coach/internal/gemini"
)

// sharedCallTimeout bounds a collapsed completion call once it no longer follows any one caller.
const sharedCallTimeout = 60 * time.Second

// sharedGenerate runs at most one completion per key. The call does not stop when the caller that
// started it goes away; each caller stops waiting when its own context ends.
func sharedGenerate(ctx context.Context, group *singleflight.Group, key string, completer gemini.Completer, req gemini.Request) (string, bool, error) {
	ch := group.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedCallTimeout)
		defer cancel()
		return completer.Generate(callCtx, req)
	})
	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Shared, res.Err
		}
		return res.Val.(string), res.Shared, nil
	}
}
