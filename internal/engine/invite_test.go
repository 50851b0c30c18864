package engine

import (
	"bytes"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-celebrate/internal/config"
)

func decodeInvite(t *testing.T, data []byte) *ical.Calendar {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err, "invite must be valid iCalendar")
	return cal
}

func TestBuildInvite(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	target := time.Date(2025, 1, 15, 19, 30, 0, 0, time.UTC)

	data, err := BuildInvite(InviteOptions{
		Name:     "Alice Martin",
		Target:   target,
		Reminder: config.ICalTrigger,
	}, now)
	require.NoError(t, err)

	cal := decodeInvite(t, data)
	assert.Equal(t, config.ICalProdid, cal.Props.Get(config.PropProdid).Value)

	events := cal.Events()
	require.Len(t, events, 1)
	ev := events[0]

	assert.Equal(t, "alice-martin-2025@"+config.ICalDomain, ev.Props.Get(config.PropUID).Value)
	assert.Equal(t, "Birthday: Alice Martin", ev.Props.Get(config.PropSummary).Value)

	start, err := ev.DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.True(t, target.Equal(start))

	require.Len(t, ev.Children, 1)
	alarm := ev.Children[0]
	assert.Equal(t, config.ICalComponent, alarm.Name)
	assert.Equal(t, config.ICalTrigger, alarm.Props.Get(config.PropTrigger).Value)
	assert.Empty(t, alarm.Props.Get(config.PropTrigger).Params, "TRIGGER has no VALUE=TEXT")
}

func TestBuildInvite_CustomSummaryWithoutReminder(t *testing.T) {
	data, err := BuildInvite(InviteOptions{
		Summary: "Surprise party",
		Target:  time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}, time.Now())
	require.NoError(t, err)

	ev := decodeInvite(t, data).Events()[0]
	assert.Equal(t, "Surprise party", ev.Props.Get(config.PropSummary).Value)
	assert.Empty(t, ev.Children)
	assert.Contains(t, ev.Props.Get(config.PropUID).Value, config.ICalDomain+"-2025@")

	start := ev.Props.Get(config.PropDTStart)
	assert.Equal(t, "20250115", start.Value, "midnight targets are all-day events")
	assert.Equal(t, string(ical.ValueDate), start.Params.Get(ical.ParamValue))
}
