package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"
)

// EnvPortalServerConfig overrides the config path.
const EnvPortalServerConfig = "PORTALGATE_CONFIG"

// DefaultPortalServerPath is used when EnvPortalServerConfig is unset.
const DefaultPortalServerPath = "config/portalserver.yaml"

// DataConfig points at the static game data.
type DataConfig struct {
	PortalCatalog string `yaml:"portal_catalog"` // JSON list of district portals
	PortalSchema  string `yaml:"portal_schema"`  // optional; embedded schema when empty
	ReagentDB     string `yaml:"reagent_db"`     // SQLite game database
}

// MetricsConfig — prometheus endpoint.
type MetricsConfig struct {
	BindAddress string `yaml:"bind_address"` // empty disables the endpoint
}

// GameServerConfig — client listener.
type GameServerConfig struct {
	BindAddress  string        `yaml:"bind_address"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // idle client disconnect
	WriteTimeout time.Duration `yaml:"write_timeout"` // per-packet write deadline
}

// Addr returns host:port of the listener.
func (g GameServerConfig) Addr() string {
	return net.JoinHostPort(g.BindAddress, strconv.Itoa(g.Port))
}

// PortalConfig — gameplay knobs of the portal subsystem.
type PortalConfig struct {
	OwnerBookLimit   int           `yaml:"owner_book_limit"`   // per book; 0 = unlimited
	BroadcastRange   float32       `yaml:"broadcast_range"`    // 0 = whole zone
	TelescopeMaxView time.Duration `yaml:"telescope_max_view"` // 0 = client closes the view
}

// PortalServer holds all configuration for the portal server.
type PortalServer struct {
	LogLevel   string           `yaml:"log_level"`
	Data       DataConfig       `yaml:"data"`
	Database   DatabaseConfig   `yaml:"database"`
	GameServer GameServerConfig `yaml:"gameserver"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Portal     PortalConfig     `yaml:"portal"`
}

// DefaultPortalServer returns PortalServer config with sensible defaults.
func DefaultPortalServer() PortalServer {
	return PortalServer{
		LogLevel: "info",
		Data: DataConfig{
			PortalCatalog: "data/portal/sub_zone_portal_coords.json",
			ReagentDB:     "data/compact.sqlite3",
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "portalgate",
			Password: "portalgate",
			DBName:   "portalgate",
			SSLMode:  "disable",
		},
		GameServer: GameServerConfig{
			BindAddress:  "0.0.0.0",
			Port:         1239,
			ReadTimeout:  120 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Metrics: MetricsConfig{
			BindAddress: "127.0.0.1:9100",
		},
		Portal: PortalConfig{
			OwnerBookLimit:   20,
			BroadcastRange:   300,
			TelescopeMaxView: 60 * time.Second,
		},
	}
}

// LoadPortalServer loads portal server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadPortalServer(path string) (PortalServer, error) {
	cfg := DefaultPortalServer()
	if err := loadYAML(path, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// PortalServerPath returns the config path, honouring EnvPortalServerConfig.
func PortalServerPath() string {
	if p := os.Getenv(EnvPortalServerConfig); p != "" {
		return p
	}
	return DefaultPortalServerPath
}

// Validate checks values that would make startup fail later in a less obvious way.
func (c PortalServer) Validate() error {
	if _, ok := parseLogLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.Data.PortalCatalog == "" {
		return fmt.Errorf("data.portal_catalog is required")
	}
	if c.Data.ReagentDB == "" {
		return fmt.Errorf("data.reagent_db is required")
	}
	if err := c.Database.validate(); err != nil {
		return err
	}
	if c.GameServer.Port <= 0 || c.GameServer.Port > 65535 {
		return fmt.Errorf("gameserver.port out of range: %d", c.GameServer.Port)
	}
	if c.GameServer.ReadTimeout < 0 || c.GameServer.WriteTimeout < 0 {
		return fmt.Errorf("gameserver timeouts must be >= 0")
	}
	if c.Portal.OwnerBookLimit < 0 {
		return fmt.Errorf("portal.owner_book_limit must be >= 0, got %d", c.Portal.OwnerBookLimit)
	}
	if c.Portal.BroadcastRange < 0 {
		return fmt.Errorf("portal.broadcast_range must be >= 0, got %v", c.Portal.BroadcastRange)
	}
	if c.Portal.TelescopeMaxView < 0 {
		return fmt.Errorf("portal.telescope_max_view must be >= 0, got %s", c.Portal.TelescopeMaxView)
	}
	return nil
}

// SlogLevel returns LogLevel as slog.Level (info for unknown values).
func (c PortalServer) SlogLevel() slog.Level {
	level, _ := parseLogLevel(c.LogLevel)
	return level
}

func parseLogLevel(level string) (slog.Level, bool) {
	switch level {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
