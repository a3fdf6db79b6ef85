package config_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneymanager/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Money Manager", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "postgres://postgres:@localhost:5432/moneymanager?sslmode=disable", cfg.ConnectionString())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("TIME_ZONE", "Europe/Lisbon")
	t.Setenv("TELEGRAM_ALLOWED_CHAT_IDS", "1,-200")
	t.Setenv("REPORT_SCHEDULE", "0 0 8 1 * *")
	t.Setenv("REPORT_CHAT_ID", "1")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []int64{1, -200}, cfg.Telegram.AllowedChatIDs)
	assert.Equal(t, int64(1), cfg.Schedule.ChatID)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Lisbon", loc.String())
}

func TestLoad_ScheduleNeedsChat(t *testing.T) {
	t.Setenv("REPORT_SCHEDULE", "0 0 8 1 * *")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLocation_Unknown(t *testing.T) {
	t.Setenv("TIME_ZONE", "Mars/Olympus")

	cfg, err := config.Load()
	require.NoError(t, err)

	_, err = cfg.Location()
	require.Error(t, err)
}
