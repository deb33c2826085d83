// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"docx2html/common"
	"docx2html/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by convert subcommand
	Format    common.OutputFmt
	ToFile    bool
	NoDirs    bool
	Overwrite bool

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// RedirectStdLog sends output of standard library logger (image decoders
// use it) to zap at debug level until RestoreStdLog is called.
func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	restore, err := zap.RedirectStdLogAt(e.Log.Named("stdlog"), zap.DebugLevel)
	if err != nil {
		e.Log.Warn("Unable to redirect standard logger", zap.Error(err))
		return
	}
	e.restoreStdLog = restore
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
