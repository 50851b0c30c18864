package ui

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-celebrate/internal/config"
	"github.com/tartampluch/go-celebrate/internal/display"
	"github.com/tartampluch/go-celebrate/internal/engine"
)

// Lover receives heart burst requests; engine.Runner implements it.
type Lover interface {
	MoreLove() bool
}

// Player is an audio track the window can start and stop; *audio.Track implements it.
type Player interface {
	Play()
	Pause()
	Playing() bool
}

// Easing adapts Fyne's ease-out curve to the engine's float64 easing.
func Easing(t float64) float64 {
	return float64(fyne.AnimationEaseOut(float32(t)))
}

// GreetingApp is the desktop display: one window holding the greeting page
// with the particle layer drawn over it.
type GreetingApp struct {
	App      fyne.App
	Window   fyne.Window
	Ctx      context.Context
	Greeting config.Greeting
	Catalog  *display.Catalog
	Lover    Lover
	Music    Player // nil when no background track is configured
	Voice    Player // nil when no voice message is configured

	countdown *display.Countdown
	rng       *rand.Rand

	headline *canvas.Text
	itsTime  *canvas.Text
	units    *fyne.Container
	cards    []*unitCard
	hero     *canvas.Image
	heroBox  *fyne.Container
	heroes   []string
	started  time.Time
	shown    int
	layer    *particleLayer
	loveBtn  *widget.Button
	musicBtn *widget.Button
	voiceBtn *widget.Button
	timeline *timelineTable

	voicePlaying bool
}

// NewGreetingApp constructs the application and wires dependencies.
func NewGreetingApp(a fyne.App, ctx context.Context, g config.Greeting, catalog *display.Catalog, lover Lover) *GreetingApp {
	return &GreetingApp{
		App:       a,
		Ctx:       ctx,
		Greeting:  g,
		Catalog:   catalog,
		Lover:     lover,
		countdown: display.NewCountdown(catalog),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		shown:     -1,
	}
}

// BuildWindow creates the main window and its content. It is safe to call once.
func (app *GreetingApp) BuildWindow() fyne.Window {
	name := app.Greeting.DisplayName()
	app.Window = app.App.NewWindow(app.Catalog.Msg(config.TKeyWinTitle, map[string]any{"Name": name}))
	app.Window.SetMaster()
	app.Window.Resize(fyne.NewSize(config.WindowWidth, config.WindowHeight))

	app.layer = newParticleLayer()
	page := container.NewVScroll(app.page())

	layers := []fyne.CanvasObject{page, app.layer.root}
	if bg := app.background(); bg != nil {
		layers = append([]fyne.CanvasObject{bg}, layers...)
	}
	app.Window.SetContent(container.NewStack(layers...))
	return app.Window
}

// Run shows the window and blocks until it is closed or ctx is cancelled.
func (app *GreetingApp) Run() {
	if app.Window == nil {
		app.BuildWindow()
	}

	closed := make(chan struct{})
	defer close(closed)

	go func() {
		select {
		case <-app.Ctx.Done():
			slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompUI)
			fyne.Do(app.App.Quit)
		case <-closed:
		}
	}()

	if app.Music != nil {
		app.toggleMusic()
	}
	app.Window.ShowAndRun()
}

// Present implements engine.Sink. Widgets are only touched on the Fyne thread.
func (app *GreetingApp) Present(f engine.Frame) {
	fyne.Do(func() { app.apply(f) })
}

// apply renders one frame. Called on the Fyne thread.
func (app *GreetingApp) apply(f engine.Frame) {
	if app.started.IsZero() {
		app.started = f.At
	}

	app.headline.Text = display.Headline(app.Catalog, f, app.Greeting.DisplayName())
	app.headline.Refresh()

	if f.Celebrating {
		app.units.Hide()
		app.itsTime.Show()
	} else {
		app.itsTime.Hide()
		app.units.Show()
		for i, u := range app.countdown.Units(f.At, f.Remaining) {
			app.cards[i].set(u)
		}
	}

	app.rotateHero(f.At)
	app.layer.apply(f.Particles)

	// A one-shot voice message ends on its own.
	if app.voicePlaying && !app.Voice.Playing() {
		app.voicePlaying = false
		app.setToggle(app.voiceBtn, false, config.TKeyBtnVoice, config.TKeyBtnVoicePause)
	}
}

func (app *GreetingApp) rotateHero(now time.Time) {
	idx := display.HeroIndex(now, app.started, len(app.heroes))
	if idx < 0 || idx == app.shown {
		return
	}
	img := heroImage(app.heroes[idx])
	if img == nil {
		return
	}
	app.shown = idx
	app.hero = img
	app.heroBox.Objects = []fyne.CanvasObject{img}
	app.heroBox.Refresh()
}

func heroImage(src string) *canvas.Image {
	img := loadImage(src)
	if img == nil {
		return nil
	}
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(config.WindowWidth/2, config.HeroImageHeight))
	return img
}

func (app *GreetingApp) moreLove() {
	if app.Lover == nil {
		return
	}
	app.Lover.MoreLove()
}

func (app *GreetingApp) toggleMusic() {
	if app.Music == nil {
		return
	}
	playing := togglePlayback(app.Music)
	app.setToggle(app.musicBtn, playing, config.TKeyBtnMusicPlay, config.TKeyBtnMusicPause)
}

func (app *GreetingApp) toggleVoice() {
	if app.Voice == nil {
		return
	}
	app.voicePlaying = togglePlayback(app.Voice)
	msg := config.MsgVoicePaused
	if app.voicePlaying {
		msg = config.MsgVoicePlaying
	}
	slog.Info(msg, config.LogKeyComponent, config.CompUI)
	app.setToggle(app.voiceBtn, app.voicePlaying, config.TKeyBtnVoice, config.TKeyBtnVoicePause)
}

// setToggle shows the action the next press performs.
func (app *GreetingApp) setToggle(btn *widget.Button, playing bool, playKey, pauseKey string) {
	if playing {
		btn.SetText(app.Catalog.Msg(pauseKey, nil))
		btn.SetIcon(theme.MediaPauseIcon())
		return
	}
	btn.SetText(app.Catalog.Msg(playKey, nil))
	btn.SetIcon(theme.MediaPlayIcon())
}

// togglePlayback pauses p when it is audible and starts it otherwise.
// It reports whether p was asked to play.
func togglePlayback(p Player) bool {
	if p.Playing() {
		p.Pause()
		return false
	}
	p.Play()
	return true
}

// page assembles the scrollable greeting sections from top to bottom.
func (app *GreetingApp) page() fyne.CanvasObject {
	g := app.Greeting
	name := g.DisplayName()

	sections := []fyne.CanvasObject{app.heroSection(name), app.countdownSection()}

	app.loveBtn = widget.NewButtonWithIcon(app.Catalog.Msg(config.TKeyBtnMoreLove, nil), theme.ContentAddIcon(), app.moreLove)
	app.loveBtn.Importance = widget.HighImportance

	app.musicBtn = widget.NewButtonWithIcon(app.Catalog.Msg(config.TKeyBtnMusicPlay, nil), theme.MediaPlayIcon(), app.toggleMusic)
	if app.Music == nil {
		app.musicBtn.Disable()
		app.musicBtn.Hide()
	}
	sections = append(sections, container.NewCenter(container.NewHBox(app.loveBtn, app.musicBtn)))

	if g.LoveLetter != "" {
		letter := widget.NewLabel(g.LoveLetter)
		letter.Wrapping = fyne.TextWrapWord
		letter.Alignment = fyne.TextAlignCenter
		sections = append(sections, widget.NewCard(app.Catalog.Msg(config.TKeyLblLetter, nil), "", letter))
	}

	if len(g.Gallery) > 0 {
		sections = append(sections, widget.NewCard(app.Catalog.Msg(config.TKeyLblGallery, nil), "", app.gallery()))
	}

	if len(g.Timeline) > 0 {
		app.timeline = newTimelineTable(app.Catalog, g.Timeline)
		sections = append(sections, widget.NewCard(app.Catalog.Msg(config.TKeyLblTimeline, nil), "", app.timeline.object()))
	}

	if len(g.SpecialMoments) > 0 {
		sections = append(sections, widget.NewCard(app.Catalog.Msg(config.TKeyLblMoments, nil), "", app.moments()))
	}

	app.voiceBtn = widget.NewButtonWithIcon(app.Catalog.Msg(config.TKeyBtnVoice, nil), theme.MediaPlayIcon(), app.toggleVoice)
	if app.Voice == nil {
		app.voiceBtn.Disable()
		app.voiceBtn.Hide()
	}
	sections = append(sections, container.NewCenter(app.voiceBtn))

	return container.NewPadded(container.NewVBox(sections...))
}

func (app *GreetingApp) heroSection(name string) fyne.CanvasObject {
	title := canvas.NewText(app.Catalog.Msg(config.TKeyHeroTitle, map[string]any{
		"Title": app.Greeting.HeroTitle,
		"Name":  name,
	}), theme.Color(theme.ColorNamePrimary))
	title.TextSize = config.HeadlineTextSize
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	objects := []fyne.CanvasObject{title}

	app.heroes = existingImages(app.Greeting.HeroImages)
	if len(app.heroes) > 0 {
		app.heroBox = container.NewStack()
		app.rotateHero(time.Time{})
		objects = append(objects, app.heroBox)
	}
	return container.NewVBox(objects...)
}

func (app *GreetingApp) countdownSection() fyne.CanvasObject {
	app.headline = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	app.headline.TextSize = theme.TextSubHeadingSize()
	app.headline.Alignment = fyne.TextAlignCenter

	app.itsTime = canvas.NewText(app.Catalog.Msg(config.TKeyItsTime, nil), theme.Color(theme.ColorNamePrimary))
	app.itsTime.TextSize = config.CountdownTextSize
	app.itsTime.TextStyle = fyne.TextStyle{Bold: true}
	app.itsTime.Alignment = fyne.TextAlignCenter
	app.itsTime.Hide()

	app.cards = make([]*unitCard, 4)
	objects := make([]fyne.CanvasObject, 0, len(app.cards)+2)
	objects = append(objects, layout.NewSpacer())
	for i := range app.cards {
		app.cards[i] = newUnitCard()
		objects = append(objects, app.cards[i].object())
	}
	objects = append(objects, layout.NewSpacer())
	app.units = container.NewHBox(objects...)

	return container.NewVBox(app.headline, container.NewStack(app.units, app.itsTime))
}

// background is the page backdrop, or nil when no usable image is configured.
func (app *GreetingApp) background() fyne.CanvasObject {
	if len(existingImages([]string{app.Greeting.Background})) == 0 {
		return nil
	}
	bg := canvas.NewImageFromFile(app.Greeting.Background)
	bg.FillMode = canvas.ImageFillStretch
	bg.Translucency = 0.6
	return bg
}
