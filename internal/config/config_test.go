package config

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/overtime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBranchAliases(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    []overtime.BranchAlias
		wantErr bool
	}{
		{
			name:  "default value",
			value: defaultBranchAliases,
			want:  []overtime.BranchAlias{{Match: "sao jose", Key: overtime.BranchKeySplitShift}},
		},
		{
			name:  "several matches and groups",
			value: " split_shift = São José | Palhoça ; default=Matriz ;",
			want: []overtime.BranchAlias{
				{Match: "São José", Key: overtime.BranchKeySplitShift},
				{Match: "Palhoça", Key: overtime.BranchKeySplitShift},
				{Match: "Matriz", Key: overtime.BranchKeyDefault},
			},
		},
		{name: "empty", value: "", want: nil},
		{name: "missing separator", value: "split_shift", wantErr: true},
		{name: "unknown key", value: "night=Joinville", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBranchAliases(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseBranchAliases("night=Joinville")
	assert.ErrorIs(t, err, overtime.ErrUnknownBranchKey)
}

func TestLoadOvertime(t *testing.T) {
	t.Setenv("OVERTIME_MAX_WEEKLY_HOURS", "44")
	t.Setenv("OVERTIME_MAX_SATURDAY_HOURS", "8.5")
	t.Setenv("OVERTIME_WARNING_RATIO", "0.8")
	t.Setenv("OVERTIME_BRANCH_ALIASES", "split_shift=Biguaçu")

	cfg, err := LoadOvertime()
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(44).Equal(cfg.Limits.MaxWeeklyHours))
	assert.True(t, decimal.RequireFromString("8.5").Equal(cfg.Limits.MaxSaturdayHours))
	assert.True(t, decimal.RequireFromString("0.8").Equal(cfg.Limits.WarningRatio))
	assert.Equal(t, []overtime.BranchAlias{{Match: "Biguaçu", Key: overtime.BranchKeySplitShift}}, cfg.BranchAliases)
}

func TestLoadOvertime_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "weekly not a number", key: "OVERTIME_MAX_WEEKLY_HOURS", val: "forty"},
		{name: "negative saturday", key: "OVERTIME_MAX_SATURDAY_HOURS", val: "-1"},
		{name: "ratio above one", key: "OVERTIME_WARNING_RATIO", val: "1.5"},
		{name: "ratio zero", key: "OVERTIME_WARNING_RATIO", val: "0"},
		{name: "bad aliases", key: "OVERTIME_BRANCH_ALIASES", val: "night=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := LoadOvertime()
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_SSL_MODE", "disable")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_MIN_CONNS", "5")
	t.Setenv("DB_NAME", "overtime_test")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("NOTIFICATION_RETENTION_DAYS", "30")
	t.Setenv("NOTIFICATION_PURGE_INTERVAL", "6h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "postgres://postgres:secret@db:5432/overtime_test?sslmode=disable", cfg.DatabaseURL())
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 30*24*time.Hour, cfg.Notifications.Retention())
	assert.Equal(t, 6*time.Hour, cfg.Notifications.PurgeInterval)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_MIN_CONNS", "5")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_PASSWORD", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_MIN_CONNS", "50")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("DB_MIN_CONNS", "5")
	t.Setenv("APP_PORT", "http")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("APP_PORT", "8080")
	t.Setenv("NOTIFICATION_PURGE_INTERVAL", "5s")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("NOTIFICATION_PURGE_INTERVAL", "24h")
	t.Setenv("NOTIFICATION_RETENTION_DAYS", "0")
	_, err = Load()
	assert.Error(t, err)
}
