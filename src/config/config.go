package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/lost-woods/randtest/src/battery"
	"github.com/lost-woods/randtest/src/logger"
	"github.com/lost-woods/randtest/src/server"
	"github.com/lost-woods/randtest/src/source"
)

type Config struct {
	Log     logger.Config
	Battery battery.Config
	Serial  source.SerialConfig
	HTTP    server.Config
}

func Default() Config {
	return Config{
		Log:     logger.DefaultConfig(),
		Battery: battery.DefaultConfig(),
		HTTP:    server.DefaultConfig(),
	}
}

// Load reads the given .env files (missing files are skipped) and then the
// environment. Variables already set in the environment win over .env.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv reads configuration from environment variables:
//   - RANDTEST_LOG_LEVEL, RANDTEST_LOG_DESTINATION, RANDTEST_LOG_ENCODING
//   - RANDTEST_MAX_BITS, RANDTEST_PARALLEL, RANDTEST_WORKERS
//   - RANDTEST_PORT, RANDTEST_API_KEY, RANDTEST_HTTP_MAX_BITS, RANDTEST_HTTP_TIMEOUT
//   - SERIAL_DEVICE_NAME, SERIAL_BAUD_RATE, SERIAL_READ_TIMEOUT (milliseconds)
func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv("RANDTEST_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("RANDTEST_LOG_DESTINATION"); v != "" {
		cfg.Log.Destination = v
	}
	if v := os.Getenv("RANDTEST_LOG_ENCODING"); v != "" {
		cfg.Log.Encoding = v
	}

	var err error
	if cfg.Battery.MaxBits, err = positiveInt("RANDTEST_MAX_BITS", cfg.Battery.MaxBits); err != nil {
		return Config{}, err
	}
	if cfg.Battery.Workers, err = positiveInt("RANDTEST_WORKERS", runtime.GOMAXPROCS(0)); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("RANDTEST_PARALLEL"); v != "" {
		if cfg.Battery.Parallel, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("invalid RANDTEST_PARALLEL: %q", v)
		}
	}

	if v := os.Getenv("RANDTEST_PORT"); v != "" {
		cfg.HTTP.Port = v
	}
	cfg.HTTP.APIKey = os.Getenv("RANDTEST_API_KEY")
	if cfg.HTTP.MaxBits, err = positiveInt("RANDTEST_HTTP_MAX_BITS", cfg.HTTP.MaxBits); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("RANDTEST_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid RANDTEST_HTTP_TIMEOUT: %q", v)
		}
		cfg.HTTP.Timeout = d
	}

	cfg.Serial.Name = os.Getenv("SERIAL_DEVICE_NAME")
	if cfg.Serial.Baud, err = positiveInt("SERIAL_BAUD_RATE", 0); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("SERIAL_READ_TIMEOUT"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return Config{}, fmt.Errorf("invalid SERIAL_READ_TIMEOUT: %q", v)
		}
		cfg.Serial.ReadTimeout = time.Duration(ms) * time.Millisecond
	}

	return cfg, nil
}

func positiveInt(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, v)
	}
	return n, nil
}
