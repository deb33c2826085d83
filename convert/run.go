package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"docx2html/common"
	"docx2html/docx"
	"docx2html/state"
)

// Flags are options of convert command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "to", Value: common.OutputFmtHtml.String(),
			Usage: "conversion output `TYPE` (supported types: " + strings.Join(common.OutputFmtNames(), ", ") + ")"},
		&cli.BoolFlag{Name: "pretty-print", Aliases: []string{"pp"}, Usage: "indent produced html (overrides configuration)"},
		&cli.BoolFlag{Name: "to-file", Aliases: []string{"tf"}, Usage: "write results to files under DESTINATION instead of STDOUT"},
		&cli.BoolFlag{Name: "nodirs", Aliases: []string{"nd"}, Usage: "when producing output do not keep input directory structure"},
		&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exits, overwrite files"},
	}
}

// Run is convert command action.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if env.Format, err = common.ParseOutputFmt(cmd.String("to")); err != nil {
		return fmt.Errorf("%q: %w", cmd.String("to"), common.ErrConverterMissing)
	}
	if cmd.IsSet("pretty-print") {
		env.Cfg.Document.PrettyPrint = cmd.Bool("pretty-print")
	}
	env.ToFile, env.NoDirs, env.Overwrite = cmd.Bool("to-file"), cmd.Bool("nodirs"), cmd.Bool("overwrite")

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", env.Format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, out, log)
}

// process converts single document or all documents under directory. Output
// goes either to out or to files under dst.
func process(ctx context.Context, src, dst string, out io.Writer, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}
	if fi.IsDir() {
		if err := processDir(ctx, src, dst, out, log); err != nil {
			return fmt.Errorf("unable to process directory: %w", err)
		}
		return nil
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}
	return processDocument(ctx, src, filepath.Base(src), dst, out, log)
}

// processDir walks directory tree converting every document found. Failed
// documents are logged and skipped.
func processDir(ctx context.Context, dir, dst string, out io.Writer, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !isDocumentName(path) {
			if looksLikeDocx(path) {
				log.Info("Skipping file with document content but unexpected extension", zap.String("file", path))
			}
			return nil
		}

		count++

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processDocument(ctx, path, src, dst, out, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
}

// isDocumentName skips lock files office suites leave next to open
// documents.
func isDocumentName(path string) bool {
	name := filepath.Base(path)
	return strings.EqualFold(filepath.Ext(name), ".docx") && !strings.HasPrefix(name, "~$")
}

func looksLikeDocx(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, 8192)
	n, _ := io.ReadFull(f, head)
	return docx.IsDocx(head[:n])
}

// processDocument converts single document. "src" is path relative to the
// processed directory including file name, or just the base name when a
// single file was requested.
func processDocument(ctx context.Context, path, src, dst string, out io.Writer, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var refID, outputName string

	log.Info("Conversion starting", zap.String("from", src))
	defer func(start time.Time) {
		// one broken document should not stop directory processing
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.String("ref_id", refID))
		}
	}(time.Now())

	mediaDir := mediaDirName(src, env)
	c, err := prepareContent(ctx, path, src, mediaDir, log)
	if err != nil {
		return fmt.Errorf("unable to load document (%s): %w", src, err)
	}
	refID = c.RefID.String()

	result, err := c.Render(env.Format, &env.Cfg.Document, log.With(zap.String("ref_id", refID)))
	if err != nil {
		return fmt.Errorf("unable to convert document (%s): %w", src, err)
	}

	outDir := dst
	if env.ToFile {
		outputName = buildOutputPath(src, dst, env.Format, env)
		outDir = filepath.Dir(outputName)
		if err := prepareOutputFile(outputName, env.Overwrite, log); err != nil {
			return err
		}
		if err := os.WriteFile(outputName, []byte(result), 0644); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
		env.Rpt.Store(fmt.Sprintf("result-%s%s", refID, filepath.Ext(outputName)), outputName)
	} else {
		outputName = "STDOUT"
		if _, err := io.WriteString(out, result); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
		env.Rpt.StoreData(fmt.Sprintf("result-%s%s", refID, env.Format.Ext()), []byte(result))
	}

	return writeMedia(c.Media.Used(), outDir, env.Overwrite, log)
}

// prepareOutputFile makes sure output file could be created.
func prepareOutputFile(name string, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
		return os.Remove(name)
	} else if !os.IsNotExist(err) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	return nil
}

// writeMedia stores extracted images relative to output directory.
func writeMedia(files []docx.MediaFile, outDir string, overwrite bool, log *zap.Logger) error {
	for _, f := range files {
		name := filepath.Join(outDir, filepath.FromSlash(f.Name))
		if err := prepareOutputFile(name, overwrite, log); err != nil {
			return fmt.Errorf("unable to extract image: %w", err)
		}
		if err := os.WriteFile(name, f.Data, 0644); err != nil {
			return fmt.Errorf("unable to extract image: %w", err)
		}
		log.Debug("Image extracted", zap.String("file", name))
	}
	return nil
}
