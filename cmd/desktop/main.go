package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/doodlepad/doodlepad/internal/config"
	"github.com/doodlepad/doodlepad/internal/engine"
	"github.com/doodlepad/doodlepad/internal/export"
	"github.com/doodlepad/doodlepad/internal/raster"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	fonts := raster.DefaultFonts()
	if cfg.StickerFontPath != "" {
		if fonts, err = raster.LoadFonts(cfg.StickerFontPath); err != nil {
			slog.Error("load sticker font", "error", err, "path", cfg.StickerFontPath)
			os.Exit(1)
		}
	}

	var opts []engine.Option
	if cfg.ClearKeepsRedo {
		opts = append(opts, engine.WithRedoKeptOnClear())
	}
	eng := engine.NewEngine(opts...)

	a := app.New()
	w := a.NewWindow("doodlin' pad")

	b := newBoard(eng, fonts, cfg.CanvasWidth, cfg.CanvasHeight)
	tb := newToolbar(w, b, engine.NewPalette(), func(format export.Format, out fyne.URIWriteCloser) error {
		return export.Write(out, format, b, export.Options{
			Width:  cfg.CanvasWidth,
			Height: cfg.CanvasHeight,
			Scale:  cfg.ExportScale,
			Fonts:  fonts,
		})
	})

	w.SetContent(container.NewBorder(widget.NewLabel("doodlin' pad"), tb, nil, nil, container.NewCenter(b)))
	w.ShowAndRun()
}

type exportFunc func(format export.Format, out fyne.URIWriteCloser) error

func newToolbar(w fyne.Window, b *board, palette *engine.Palette, save exportFunc) fyne.CanvasObject {
	selectTool := func(t engine.Tool) func() {
		return func() { b.do(func(e *engine.Engine) { e.SelectTool(t) }) }
	}

	stickers := container.NewHBox()
	addStickerButton := func(glyph string) {
		stickers.Add(widget.NewButton(glyph, selectTool(engine.Sticker(glyph))))
	}
	for _, glyph := range palette.Stickers() {
		addStickerButton(glyph)
	}

	custom := widget.NewButton("custom sticker", func() {
		entry := widget.NewEntry()
		entry.SetPlaceHolder("text or emoji")
		dialog.ShowForm("Custom sticker", "Add", "Cancel",
			[]*widget.FormItem{widget.NewFormItem("Sticker", entry)},
			func(ok bool) {
				if !ok {
					return
				}
				t, added, err := palette.AddSticker(entry.Text)
				if err != nil {
					return
				}
				if added {
					addStickerButton(t.Glyph)
				}
				selectTool(t)()
			}, w)
	})

	exportButton := widget.NewButton("export", func() {
		d := dialog.NewFileSave(func(out fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			if out == nil {
				return
			}
			defer out.Close()

			format, err := export.ParseFormat(out.URI().Extension())
			if err != nil {
				format = export.FormatPNG
			}
			if err := save(format, out); err != nil {
				slog.Error("export", "error", err, "uri", out.URI().String())
				dialog.ShowError(fmt.Errorf("export %s: %w", strings.ToUpper(string(format)), err), w)
				return
			}
			slog.Info("export complete", "format", format, "uri", out.URI().String())
		}, w)
		d.SetFileName("doodle.png")
		d.Show()
	})

	return container.NewHBox(
		widget.NewButton("clear", func() { b.do(func(e *engine.Engine) { e.Clear() }) }),
		widget.NewButton("undo", func() { b.do(func(e *engine.Engine) { e.Undo() }) }),
		widget.NewButton("redo", func() { b.do(func(e *engine.Engine) { e.Redo() }) }),
		widget.NewSeparator(),
		widget.NewButton("thin", selectTool(engine.Marker(engine.ThinWidth))),
		widget.NewButton("thick", selectTool(engine.Marker(engine.ThickWidth))),
		widget.NewSeparator(),
		stickers,
		custom,
		layout.NewSpacer(),
		exportButton,
	)
}
