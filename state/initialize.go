package state

import (
	"time"

	"go.uber.org/zap"

	"docx2html/common"
)

// newLocalEnv creates environment with defaults usable before
// configuration is loaded.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		Log:    zap.NewNop(),
		Format: common.OutputFmtHtml,
		start:  time.Now(),
	}
}
