package ui

import (
	"log/slog"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-celebrate/internal/config"
)

// tappableImage is an image that reports taps, used to open the zoom view.
type tappableImage struct {
	widget.BaseWidget
	image    *canvas.Image
	OnTapped func()
}

func newTappableImage(img *canvas.Image, tapped func()) *tappableImage {
	t := &tappableImage{image: img, OnTapped: tapped}
	t.ExtendBaseWidget(t)
	return t
}

func (t *tappableImage) Tapped(_ *fyne.PointEvent) {
	if t.OnTapped != nil {
		t.OnTapped()
	}
}

func (t *tappableImage) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.image)
}

// isRemote reports whether src is an http(s) URL rather than a file path.
func isRemote(src string) bool {
	return strings.HasPrefix(src, config.SchemeHTTP+"://") || strings.HasPrefix(src, config.SchemeHTTPS+"://")
}

// existingImages keeps the sources that can be displayed: remote URLs and
// files that exist. Missing files are logged and dropped.
func existingImages(srcs []string) []string {
	out := make([]string, 0, len(srcs))
	for _, src := range srcs {
		if src == "" {
			continue
		}
		if isRemote(src) {
			out = append(out, src)
			continue
		}
		if _, err := os.Stat(src); err != nil {
			slog.Warn(config.MsgImageMissing,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyFile, src,
			)
			continue
		}
		out = append(out, src)
	}
	return out
}

// loadImage returns the image at src, or nil when it cannot be shown.
func loadImage(src string) *canvas.Image {
	if len(existingImages([]string{src})) == 0 {
		return nil
	}
	if isRemote(src) {
		uri, err := storage.ParseURI(src)
		if err != nil {
			slog.Warn(config.MsgImageMissing,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyURL, src,
				config.LogKeyError, err,
			)
			return nil
		}
		return canvas.NewImageFromURI(uri)
	}
	return canvas.NewImageFromFile(src)
}

// placeholder stands in for an image that could not be loaded.
func (app *GreetingApp) placeholder(size float32) fyne.CanvasObject {
	bg := canvas.NewRectangle(theme.Color(theme.ColorNameDisabledButton))
	bg.SetMinSize(fyne.NewSize(size, size))
	msg := widget.NewLabel(app.Catalog.Msg(config.TKeyImgMissing, nil))
	msg.Alignment = fyne.TextAlignCenter
	msg.Wrapping = fyne.TextWrapWord
	return container.NewStack(bg, container.NewCenter(msg))
}

// thumbnail shows src at size, or the placeholder. zoom > 0 makes it open
// an enlarged view when tapped.
func (app *GreetingApp) thumbnail(src, caption string, size float32, zoom float64) fyne.CanvasObject {
	img := loadImage(src)
	if img == nil {
		return app.placeholder(size)
	}
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(size, size))
	if zoom <= 0 {
		return img
	}
	return newTappableImage(img, func() { app.showZoom(src, caption, zoom) })
}

// showZoom opens a dialog with the image enlarged by zoom.
func (app *GreetingApp) showZoom(src, caption string, zoom float64) {
	img := loadImage(src)
	if img == nil || app.Window == nil {
		return
	}
	side := float32(config.ZoomDialogSize)
	if scaled := float32(config.GalleryThumbSize * zoom); scaled > side {
		side = scaled
	}
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(side, side))
	dialog.ShowCustom(caption, app.Catalog.Msg(config.TKeyBtnClose, nil), img, app.Window)
}

// shuffledGallery returns the gallery in a random order, chosen once per run.
func (app *GreetingApp) shuffledGallery() []config.GalleryImage {
	items := append([]config.GalleryImage(nil), app.Greeting.Gallery...)
	app.rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	return items
}

func (app *GreetingApp) gallery() fyne.CanvasObject {
	items := app.shuffledGallery()
	tiles := make([]fyne.CanvasObject, 0, len(items))
	for _, item := range items {
		caption := item.Caption
		if item.Year != "" {
			caption += " · " + item.Year
		}
		label := widget.NewLabel(caption)
		label.Alignment = fyne.TextAlignCenter
		label.Truncation = fyne.TextTruncateEllipsis
		tiles = append(tiles, container.NewBorder(nil, label, nil, nil,
			app.thumbnail(item.Src, item.Caption, config.GalleryThumbSize, item.Zoom)))
	}
	return container.NewGridWithColumns(config.GalleryColumns, tiles...)
}

func (app *GreetingApp) moments() fyne.CanvasObject {
	tiles := make([]fyne.CanvasObject, 0, len(app.Greeting.SpecialMoments))
	for _, m := range app.Greeting.SpecialMoments {
		caption := widget.NewLabel(m.Caption)
		caption.Alignment = fyne.TextAlignCenter
		tiles = append(tiles, container.NewVBox(app.thumbnail(m.Image, m.Caption, config.MomentImageSize, 1), caption))
	}
	return container.NewHScroll(container.NewHBox(tiles...))
}
