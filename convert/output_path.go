package convert

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"docx2html/common"
	"docx2html/config"
	"docx2html/state"
)

// buildOutputPath returns output file path for source document. src is
// path relative to the processed directory (or just base name for single
// file), directory structure is kept unless env.NoDirs is set.
func buildOutputPath(src, dst string, format common.OutputFmt, env *state.LocalEnv) string {
	return filepath.Join(determineOutputDir(src, dst, env), outputBaseName(src, env)+format.Ext())
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

// mediaDirName is directory next to the output file extracted images are
// written to. Result uses forward slashes as it ends up in html.
func mediaDirName(src string, env *state.LocalEnv) string {
	return outputBaseName(src, env) + env.Cfg.Document.Images.MediaDirSuffix
}

func outputBaseName(src string, env *state.LocalEnv) string {
	baseName := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	if env.Cfg.Document.FileNameTransliterate {
		baseName = slug.Make(baseName)
	}
	return config.CleanFileName(baseName)
}
