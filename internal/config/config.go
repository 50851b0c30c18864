package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for remote vCard downloads.
var UserAgent = "Go-Celebrate/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Celebrate"
	AppID             = "com.github.tartampluch.go-celebrate"
	KeyringService    = "com.github.tartampluch.go-celebrate"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	EnvPrefix         = "GO_CELEBRATE_"
	DefaultLanguage   = "en"
	DefaultServerPort = 8765
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1

	// ActionBufferSize bounds queued user actions (e.g. repeated "more love" presses).
	ActionBufferSize = 8
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagTUI          = "tui"
	FlagServe        = "serve"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescConfig   = "Path to a greeting YAML file (built-in greeting when empty)"
	FlagDescTUI      = "Render the greeting in the terminal instead of a window"
	FlagDescServe    = "Publish the birthday as an iCalendar invite on localhost"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Countdown & Scheduling
// -----------------------------------------------------------------------------

const (
	// SecondInterval drives the TimeRemaining recomputation.
	SecondInterval = time.Second

	// DefaultFrameRate is used when the configured frame rate is not positive.
	DefaultFrameRate = 60
	MaxFrameRate     = 240

	// AmbientSeedDelay defers the ambient field so the first frame is not blocked.
	AmbientSeedDelay = 100 * time.Millisecond

	// FlipDuration is the length of a countdown digit flip transition.
	FlipDuration = 300 * time.Millisecond

	// HeroRotateInterval is the delay between hero image changes.
	HeroRotateInterval = 3 * time.Second

	DefaultLeapYear = 2000 // Leap year fallback for dates like --02-29
)

// -----------------------------------------------------------------------------
// Particle Budgets
// -----------------------------------------------------------------------------

const (
	ConfettiCapacity      = 300
	ConfettiInitialBurst  = 500
	ConfettiBurstSize     = 100
	ConfettiBurstInterval = 2 * time.Second

	HeartBurstSize  = 50
	HeartCapacity   = 50
	HeartClearDelay = 3 * time.Second

	SparkleCount = 50
	MoteCount    = 50
)

// -----------------------------------------------------------------------------
// Palettes
// -----------------------------------------------------------------------------

var (
	// PaletteCelebration is used for countdown confetti.
	PaletteCelebration = []string{
		"#16F8B6", "#7DF9FF", "#FFB5E8", "#4CC9F0", "#FFD700",
		"#FF6B9D", "#C77DFF", "#FF1493", "#00FFFF", "#FF00FF",
	}

	// PaletteHearts holds the light pink variations of the heart burst.
	PaletteHearts = []string{"#FFB6C1", "#FFC0CB", "#FFD1DC", "#FFE4E1", "#FFB5E8", "#FFC5E8"}

	// PaletteSparkle colors the celebration sparkles.
	PaletteSparkle = []string{"#16F8B6", "#7DF9FF", "#FFB5E8", "#FFD700"}

	// PaletteAurora colors the ambient motes.
	PaletteAurora = []string{"#16F8B6", "#7DF9FF", "#FFB5E8", "#4CC9F0"}
)

// -----------------------------------------------------------------------------
// UI Constants
// -----------------------------------------------------------------------------

const (
	WindowWidth  = 960
	WindowHeight = 720

	CountdownTextSize = 48
	HeadlineTextSize  = 56
	HeartGlyph        = "♥"
	SparkleGlyph      = '✦'
	ConfettiGlyph     = '•'
	MoteGlyph         = '·'
	HeartRune         = '♥'

	GalleryThumbSize = 160
	GalleryColumns   = 4
	MomentImageSize  = 240
	HeroImageHeight  = 280
	ZoomDialogSize   = 640

	// Timeline table columns.
	ColIDDate        = 0
	ColIDTitle       = 1
	ColIDStory       = 2
	ColWidthDate     = 160
	ColWidthTitle    = 280
	ColWidthStory    = 420
	TableHeight      = 180
	TablePlaceholder = "Wide Content Placeholder"
	SortIconAsc      = " ▲"
	SortIconDesc     = " ▼"

	// Terminal key bindings.
	KeyMoreLove = 'm'
	KeyMusic    = 'p'
	KeyQuit     = 'q'
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle      = "win_title"
	TKeyHeroTitle     = "hero_title"       // Requires Title, Name
	TKeyCountdownHead = "countdown_heading" // Requires Name
	TKeyUnitDays      = "unit_days"         // Plural
	TKeyUnitHours     = "unit_hours"        // Plural
	TKeyUnitMinutes   = "unit_minutes"      // Plural
	TKeyUnitSeconds   = "unit_seconds"      // Plural
	TKeyItsTime       = "its_time"
	TKeyHappyBirthday = "happy_birthday" // Requires Name
	TKeyBtnMoreLove   = "btn_more_love"
	TKeyBtnVoice      = "btn_voice_message"
	TKeyBtnVoicePause = "btn_voice_pause"
	TKeyBtnMusicPlay  = "btn_music_play"
	TKeyBtnMusicPause = "btn_music_pause"
	TKeyLblLetter     = "lbl_love_letter"
	TKeyLblGallery    = "lbl_gallery"
	TKeyLblTimeline   = "lbl_timeline"
	TKeyLblMoments    = "lbl_special_moments"
	TKeyLblTUIHelp    = "lbl_tui_help"
	TKeyImgMissing    = "img_missing"
	TKeyColDate       = "col_date"
	TKeyColTitle      = "col_title"
	TKeyColStory      = "col_story"
	TKeyBtnClose      = "btn_close"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Celebrate//Invite//EN"
	ICalCalName   = "Celebration"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gocelebrate"
	ICalTrigger   = "-P1D"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY  = "BDAY"
	VCardFN    = "FN"
	VCardNote  = "NOTE"
	VCardPhoto = "PHOTO"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"
	DateFormatTimeline  = "2006-01-02"
	DateFormatDisplay   = "January 2, 2006"

	// Limits
	MinPort = 1
	MaxPort = 65535

	FormatUID = "%s-%d@%s"

	ExtMP3 = ".mp3"
	ExtWAV = ".wav"
)

// -----------------------------------------------------------------------------
// Source Modes
// -----------------------------------------------------------------------------

const (
	SourceModeWeb   = "web"
	SourceModeLocal = "local"
)

// -----------------------------------------------------------------------------
// Audio
// -----------------------------------------------------------------------------

const (
	AudioVolume     = 0.3
	AudioVolumeBase = 2
	AudioBufferSpan = time.Second / 10
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB, a vCard with an inline photo
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteInvite         = "/invite.ics"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAccept          = "Accept"
	HeaderContentLength   = "Content-Length"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderDisposition     = "Content-Disposition"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeVCard           = "text/vcard"
	MimeVCardLegacy     = "text/x-vcard"
	MimeVCardAccept     = "text/vcard, text/x-vcard;q=0.9, */*;q=0.1"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
	InviteDisposition   = `inline; filename="invite.ics"`

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty  = "configuration error: local path is empty"
	ErrWebURLEmpty     = "configuration error: web URL is empty"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrModeUnsupport   = "configuration error: unsupported source mode"
	ErrGreetingRead    = "failed to read greeting file"
	ErrGreetingParse   = "failed to parse greeting file"
	ErrGreetingEnv     = "failed to apply environment overrides"
	ErrInvalidMonth    = "configuration error: birthday month must be between 1 and 12"
	ErrInvalidDay      = "configuration error: birthday day is out of range for its month"
	ErrInvalidHour     = "configuration error: birthday time must be a valid hour and minute"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrPortRange       = "server port must be between 1 and 65535"
	ErrInvalidURL      = "invalid URL structure"
	ErrFetchRequest    = "failed to build recipient vCard request"
	ErrFetchNetwork    = "recipient vCard request failed"
	ErrFetchStatus     = "address book returned unexpected status"
	ErrFetchTooLarge   = "recipient vCard exceeds the size limit"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrVCardEmpty      = "vCard stream contains no usable card"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrScreenInit      = "failed to initialize terminal screen"
	ErrAudioOpen       = "failed to open audio file"
	ErrAudioDecode     = "failed to decode audio file"
	ErrAudioFormat     = "unsupported audio format"
	ErrSpeakerInit     = "failed to initialize audio output"
	ErrRecipientImport = "failed to import recipient vCard"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Invite initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackName      = "Beautiful"
	FallbackHeroTitle = "Happy Birthday"
	FallbackSummary   = "Birthday: %s"
	FormatSummaryAge  = "%s (%d)"

	MsgAppStop         = "Application stopped gracefully"
	MsgAppStarting     = "Starting application"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgGreetingLoaded  = "Greeting loaded"
	MsgGreetingDefault = "No greeting file, using built-in greeting"
	MsgRecipientLoaded = "Recipient imported from vCard"
	MsgRecipientFailed = "Recipient import failed, keeping configured values"
	MsgRecipientFetch  = "Requesting recipient vCard"
	MsgRecipientRecv   = "Recipient vCard response received"
	MsgRecipientStatus = "Address book refused recipient vCard"
	MsgRecipientType   = "Recipient vCard served with unexpected content type"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSkippedDate     = "Skipping invalid date format"
	MsgPassFail        = "Password retrieval failed (might be empty)"
	MsgTargetComputed  = "Countdown target computed"
	MsgRunnerStart     = "Celebration runner started"
	MsgRunnerStop      = "Celebration runner stopping due to context cancellation"
	MsgCelebrationOn   = "Countdown reached zero, celebration started"
	MsgBurst           = "Particle burst emitted"
	MsgActionDropped   = "Action queue full, dropping request"
	MsgFrameFallback   = "Invalid frame rate, falling back to default"
	MsgAudioDisabled   = "Audio disabled, no file configured"
	MsgAudioFailed     = "Audio unavailable, continuing muted"
	MsgAudioPlaying    = "Background audio playing"
	MsgImageMissing    = "Image unavailable, using placeholder"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgCacheUpdated    = "Invite cache updated"
	MsgInviteBuilt     = "Invite generated"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgTUIResize       = "Terminal resized"
	MsgTimelineSort    = "Timeline sorted"
	MsgVoicePlaying    = "Voice message playing"
	MsgVoicePaused     = "Voice message paused"
	MsgAudioPaused     = "Background audio paused"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyValue     = "value"
	LogKeyCount     = "count"
	LogKeyKind      = "kind"
	LogKeyName      = "name"
	LogKeyTarget    = "target"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyWidth     = "width"
	LogKeyHeight    = "height"
	LogKeyDuration  = "duration_ms"
	LogKeyEvicted   = "evicted"
	LogKeyInterval  = "interval"
	LogKeyColumn    = "column"
	LogKeyAscending = "ascending"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompTUI      = "tui"
	CompEngine   = "engine"
	CompRunner   = "runner"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompConfig   = "config"
	CompAudio    = "audio"
	CompInvite   = "invite"
	CompImporter = "importer"
)
