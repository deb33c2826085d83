package convert

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docx2html/common"
	"docx2html/config"
	"docx2html/convert/html"
	"docx2html/docx"
	"docx2html/misc"
	"docx2html/state"
)

// Content is single loaded document ready to be rendered.
type Content struct {
	SrcName  string
	RefID    uuid.UUID
	Package  *docx.Package
	Media    *docx.MediaStore
	MetaData *html.MetaData
}

// prepareContent opens document at path. src is the name used for logging
// and output naming, mediaDir is the directory (relative to the output)
// extracted images are referenced from.
func prepareContent(ctx context.Context, path, src, mediaDir string, log *zap.Logger) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	refID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to generate reference id: %w", err)
	}

	var opts []docx.Option
	if env.Cfg.Document.FixZip {
		opts = append(opts, docx.WithNormalize(""))
	}
	pkg, err := docx.Open(path, log, opts...)
	if err != nil {
		return nil, err
	}

	media := pkg.NewMediaStore(env.Cfg.Document.Images.Mode, mediaDir, log)
	c := &Content{
		SrcName:  src,
		RefID:    refID,
		Package:  pkg,
		Media:    media,
		MetaData: pkg.MetaData(media),
	}

	if env.Rpt != nil {
		if data, err := pkg.Document.WriteToBytes(); err == nil {
			env.Rpt.StoreData(c.reportName("document.xml"), data)
		} else {
			log.Warn("Unable to store document for debugging", zap.Error(err))
		}
		env.Rpt.StoreData(c.reportName("metadata.txt"), []byte(c.String()))
	}
	return c, nil
}

// Render translates document and converts it to requested format.
func (c *Content) Render(format common.OutputFmt, cfg *config.DocumentConfig, log *zap.Logger) (string, error) {
	conv, err := converterFor(format)
	if err != nil {
		return "", err
	}

	out, err := html.CreateHTML(c.Package.Document, c.MetaData, html.Options{
		PrettyPrint:     cfg.PrettyPrint,
		PlainRomanLists: !cfg.RomanHeadings,
	}, log)
	if err != nil {
		return "", err
	}
	if cfg.Sanitize {
		out = sanitizePolicy().Sanitize(out)
	}
	return conv.Convert(out)
}

func (c *Content) reportName(name string) string {
	return fmt.Sprintf("%s-%s/%s", misc.GetAppName(), c.RefID, name)
}
