//go:build !js

package translator

import (
	"context"
	"fmt"
	"sync"

	"github.com/richinsley/goshadercanvas/graphics"
	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process-wide shader translator, creating it on
// first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		ctx := context.Background()
		translator, translatorErr = gst.NewShaderTranslator(ctx)
	})
	return translator, translatorErr
}

// Desktop translates GLSL ES 3.00 (WebGL2) stages to desktop GLSL 4.10.
type Desktop struct {
	t *gst.ShaderTranslator
}

// NewDesktop returns a Desktop translator backed by the shared instance.
func NewDesktop() (*Desktop, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}
	return &Desktop{t: t}, nil
}

// Translate implements renderer.Translator. The returned map carries the
// translated identifier of every variable the stage declares.
func (d *Desktop) Translate(kind graphics.StageKind, source string) (string, map[string]string, error) {
	out, err := d.t.TranslateShader(source, kind.String(), gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return "", nil, fmt.Errorf("%s shader translation failed: %w", kind, err)
	}
	names := make(map[string]string, len(out.Variables))
	for name, v := range out.Variables {
		names[name] = v.MappedName
	}
	return out.Code, names, nil
}
