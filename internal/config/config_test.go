package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		filePath  string
		wantErr   bool
		errString string
	}{
		{
			name:     "valid config file",
			filePath: "testdata/valid_config.yaml",
			wantErr:  false,
		},
		{
			name:      "non-existent file",
			filePath:  "testdata/nonexistent.yaml",
			wantErr:   true,
			errString: "failed to read config file",
		},
		{
			name:      "malformed yaml",
			filePath:  "testdata/malformed.yaml",
			wantErr:   true,
			errString: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JOBBOARD_DB_PASSWORD", "from-env")

			cfg, err := Load(tt.filePath)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)

				// Verify some key fields are populated
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "jobboard", cfg.Database.Database)
				assert.Equal(t, "from-env", cfg.Database.Password)
				assert.Equal(t, 5, cfg.Database.RetryAttempts)
				assert.True(t, cfg.Database.AutoMigrate)
				assert.Equal(t, "localhost", cfg.Redis.Host)
				assert.Equal(t, "jobboard_events", cfg.RabbitMQ.Exchange.Name)
				assert.Equal(t, []string{"job.submitted", "job.expired"}, cfg.RabbitMQ.Queue.BindingKeys)
				assert.Equal(t, "X-User-Id", cfg.Auth.UserIDHeader)
				assert.Equal(t, 10*time.Minute, cfg.Jobs.CitiesCacheTTL)
				assert.Equal(t, "@every 1h", cfg.Sweeper.Schedule)
				assert.True(t, cfg.Sweeper.RunOnStart)
				assert.Equal(t, "jobboard-api-service", cfg.App.Name)
			}
		})
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "jobboard",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
		},
		RabbitMQ: RabbitMQConfig{
			Host: "localhost",
			Port: 5672,
			Exchange: ExchangeConfig{
				Name: "jobboard_events",
			},
			Queue: QueueConfig{
				Name:        "jobboard_approvals",
				BindingKeys: []string{"job.submitted"},
			},
		},
		Jobs: JobsConfig{CitiesCacheTTL: time.Minute},
		Sweeper: SweeperConfig{
			Schedule:        "@every 1h",
			Timeout:         time.Minute,
			ShutdownTimeout: 30 * time.Second,
		},
	}
}

func TestConfig_ValidateAPIConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantErr   bool
		errString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "queue is optional",
			mutate:  func(c *Config) { c.RabbitMQ.Queue = QueueConfig{} },
			wantErr: false,
		},
		{
			name:      "invalid server port - too low",
			mutate:    func(c *Config) { c.Server.Port = 0 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "invalid server port - too high",
			mutate:    func(c *Config) { c.Server.Port = 70000 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "empty database host",
			mutate:    func(c *Config) { c.Database.Host = "" },
			wantErr:   true,
			errString: "database host is required",
		},
		{
			name:      "empty database name",
			mutate:    func(c *Config) { c.Database.Database = "" },
			wantErr:   true,
			errString: "database name is required",
		},
		{
			name: "database retries without interval",
			mutate: func(c *Config) {
				c.Database.RetryAttempts = 3
				c.Database.RetryInterval = 0
			},
			wantErr:   true,
			errString: "database retry_interval must be greater than 0",
		},
		{
			name:      "empty redis host",
			mutate:    func(c *Config) { c.Redis.Host = "" },
			wantErr:   true,
			errString: "redis host is required",
		},
		{
			name:      "invalid redis port",
			mutate:    func(c *Config) { c.Redis.Port = -1 },
			wantErr:   true,
			errString: "invalid redis port",
		},
		{
			name:      "empty rabbitmq host",
			mutate:    func(c *Config) { c.RabbitMQ.Host = "" },
			wantErr:   true,
			errString: "rabbitmq host is required",
		},
		{
			name:      "empty exchange name",
			mutate:    func(c *Config) { c.RabbitMQ.Exchange.Name = "" },
			wantErr:   true,
			errString: "rabbitmq exchange name is required",
		},
		{
			name:      "queue without binding keys",
			mutate:    func(c *Config) { c.RabbitMQ.Queue.BindingKeys = nil },
			wantErr:   true,
			errString: "needs at least one binding key",
		},
		{
			name:      "negative cache ttl",
			mutate:    func(c *Config) { c.Jobs.CitiesCacheTTL = -time.Second },
			wantErr:   true,
			errString: "cities_cache_ttl",
		},
		{
			name:      "missing cache ttl",
			mutate:    func(c *Config) { c.Jobs.CitiesCacheTTL = 0 },
			wantErr:   true,
			errString: "cities_cache_ttl must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.ValidateAPIConfig()

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateSweeperConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantErr   bool
		errString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "server port is not needed",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: false,
		},
		{
			name:    "standard cron expression",
			mutate:  func(c *Config) { c.Sweeper.Schedule = "*/15 * * * *" },
			wantErr: false,
		},
		{
			name:      "missing schedule",
			mutate:    func(c *Config) { c.Sweeper.Schedule = "" },
			wantErr:   true,
			errString: "sweeper schedule is required",
		},
		{
			name:      "unparsable schedule",
			mutate:    func(c *Config) { c.Sweeper.Schedule = "hourly-ish" },
			wantErr:   true,
			errString: "invalid sweeper schedule",
		},
		{
			name:      "missing timeout",
			mutate:    func(c *Config) { c.Sweeper.Timeout = 0 },
			wantErr:   true,
			errString: "sweeper timeout must be greater than 0",
		},
		{
			name:      "missing shutdown timeout",
			mutate:    func(c *Config) { c.Sweeper.ShutdownTimeout = 0 },
			wantErr:   true,
			errString: "sweeper shutdown_timeout",
		},
		{
			name:      "database still required",
			mutate:    func(c *Config) { c.Database.Database = "" },
			wantErr:   true,
			errString: "database name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.ValidateSweeperConfig()

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoad_ValidateIntegration(t *testing.T) {
	t.Run("load and validate valid config", func(t *testing.T) {
		cfg, err := Load("testdata/valid_config.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		require.NoError(t, cfg.ValidateAPIConfig())
		require.NoError(t, cfg.ValidateSweeperConfig())
	})

	t.Run("load config with invalid port", func(t *testing.T) {
		cfg, err := Load("testdata/invalid_port.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		err = cfg.ValidateAPIConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid server port")
	})

	t.Run("load config with missing database", func(t *testing.T) {
		cfg, err := Load("testdata/missing_database.yaml")
		require.NoError(t, err)
		require.NotNil(t, cfg)

		err = cfg.ValidateAPIConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database name is required")
	})
}

func TestPortConstants(t *testing.T) {
	assert.Equal(t, 1, MinPort)
	assert.Equal(t, 65535, MaxPort)
}
