package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-celebrate/internal/config"
)

// InviteOptions describes the calendar invite shared with guests.
type InviteOptions struct {
	Name     string
	Summary  string // optional; defaults to FallbackSummary
	Target   time.Time
	Reminder string // ISO 8601 duration such as -P1D; empty disables the alarm
}

// BuildInvite encodes an iCalendar object holding a single event at the
// countdown target.
func BuildInvite(opts InviteOptions, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	summary := opts.Summary
	if summary == "" {
		summary = fmt.Sprintf(config.FallbackSummary, opts.Name)
	}

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID,
		fmt.Sprintf(config.FormatUID, uidBase(opts.Name), opts.Target.Year(), config.ICalDomain))
	event.Props.SetText(config.PropSummary, summary)
	event.Props.SetDateTime(config.PropDTStamp, now.UTC())
	setStart(event, opts.Target)

	if opts.Reminder != "" {
		addAlarm(event, opts.Reminder, summary)
	}
	cal.Children = append(cal.Children, event.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgInviteBuilt,
		config.LogKeyComponent, config.CompInvite,
		config.LogKeyTarget, opts.Target,
		config.LogKeySizeBytes, buf.Len())
	return buf.Bytes(), nil
}

// setStart writes a DATE value for midnight targets, which calendars show as an
// all-day event, and a UTC DATE-TIME otherwise.
func setStart(event *ical.Event, target time.Time) {
	prop := ical.NewProp(config.PropDTStart)
	if target.Hour() == 0 && target.Minute() == 0 && target.Second() == 0 {
		prop.SetDate(target)
	} else {
		prop.SetDateTime(target.UTC())
	}
	event.Props.Set(prop)
}

// addAlarm appends a DISPLAY alarm to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Raw value: SetText would add VALUE=TEXT, which clients reject on TRIGGER.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// uidBase turns a display name into a stable UID prefix.
func uidBase(name string) string {
	base := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	if base == "" {
		return config.ICalDomain
	}
	return base
}
