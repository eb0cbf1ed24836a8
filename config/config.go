package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/lixenwraith/tile-wall/constants"
	"github.com/lixenwraith/tile-wall/engine"
	"github.com/lixenwraith/tile-wall/input"
	"github.com/lixenwraith/tile-wall/network"
)

// DefaultEnvFile is read when present; process environment wins over it
const DefaultEnvFile = ".env"

// envPrefix namespaces every environment key
const envPrefix = "TILEWALL_"

var ErrInvalidConfig = errors.New("invalid config")

// Config holds settings for both binaries
// Precedence, lowest first: defaults, .env file, process environment, flags
type Config struct {
	// Radio
	Group     int
	UnitID    string
	Address   string
	Interface string
	Loopback  bool

	// Timing
	PollInterval time.Duration
	TickInterval time.Duration

	// Feedback
	Sound bool
	Debug bool

	// Buttons on GPIO (Chip empty = keyboard only)
	GPIOChip     string
	GPIOLeader   int
	GPIOStart    int
	GPIODebounce time.Duration

	// Simulator
	Units         int
	DropRate      float64
	DuplicateRate float64
	Jitter        time.Duration
	Seed          int64
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Group:        constants.DefaultGroup,
		Address:      constants.DefaultMulticastAddr,
		Loopback:     true,
		PollInterval: constants.PollInterval,
		TickInterval: constants.TickInterval,
		GPIOLeader:   17,
		GPIOStart:    27,
		GPIODebounce: 20 * time.Millisecond,
		Units:        3,
	}
}

// Load builds the config from the process environment, envFile and args
func Load(name string, args []string, envFile string) (*Config, error) {
	return LoadFrom(name, args, envFile, os.LookupEnv)
}

// LoadFrom is Load with an injectable environment lookup
func LoadFrom(name string, args []string, envFile string, lookup func(string) (string, bool)) (*Config, error) {
	fileEnv := map[string]string{}
	if envFile != "" {
		m, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileEnv = m
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(envPrefix + key); ok {
			return v, true
		}
		v, ok := fileEnv[envPrefix+key]
		return v, ok
	}

	cfg := Default()
	if err := cfg.applyEnv(get); err != nil {
		return nil, err
	}

	fsFlags := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.bindFlags(fsFlags)
	if err := fsFlags.Parse(args); err != nil {
		return nil, err
	}

	if cfg.UnitID == "" {
		cfg.UnitID = network.NewUnitID()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays TILEWALL_* values
func (c *Config) applyEnv(get func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := get(key); ok {
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := get(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s=%q: %w", envPrefix, key, v, ErrInvalidConfig))
				return
			}
			*dst = n
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := get(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s=%q: %w", envPrefix, key, v, ErrInvalidConfig))
				return
			}
			*dst = b
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v, ok := get(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s=%q: %w", envPrefix, key, v, ErrInvalidConfig))
				return
			}
			*dst = d
		}
	}
	float := func(key string, dst *float64) {
		if v, ok := get(key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s=%q: %w", envPrefix, key, v, ErrInvalidConfig))
				return
			}
			*dst = f
		}
	}

	integer("GROUP", &c.Group)
	str("UNIT_ID", &c.UnitID)
	str("ADDR", &c.Address)
	str("IFACE", &c.Interface)
	boolean("LOOPBACK", &c.Loopback)
	duration("POLL", &c.PollInterval)
	duration("TICK", &c.TickInterval)
	boolean("SOUND", &c.Sound)
	boolean("DEBUG", &c.Debug)
	str("GPIO_CHIP", &c.GPIOChip)
	integer("GPIO_LEADER", &c.GPIOLeader)
	integer("GPIO_START", &c.GPIOStart)
	duration("GPIO_DEBOUNCE", &c.GPIODebounce)
	integer("UNITS", &c.Units)
	float("DROP", &c.DropRate)
	float("DUP", &c.DuplicateRate)
	duration("JITTER", &c.Jitter)
	if v, ok := get("SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED=%q: %w", envPrefix, v, ErrInvalidConfig))
		} else {
			c.Seed = n
		}
	}

	return errors.Join(errs...)
}

// bindFlags registers flags defaulting to the current values
func (c *Config) bindFlags(f *flag.FlagSet) {
	f.IntVar(&c.Group, "group", c.Group, "Radio group shared by one wall")
	f.StringVar(&c.UnitID, "id", c.UnitID, "Unit identifier (random when empty)")
	f.StringVar(&c.Address, "addr", c.Address, "Multicast group:port used as the radio")
	f.StringVar(&c.Interface, "iface", c.Interface, "Network interface to join on")
	f.BoolVar(&c.Loopback, "loopback", c.Loopback, "Hear units on the same host")
	f.DurationVar(&c.PollInterval, "poll", c.PollInterval, "Address request interval")
	f.DurationVar(&c.TickInterval, "tick", c.TickInterval, "Animation frame interval")
	f.BoolVar(&c.Sound, "sound", c.Sound, "Play feedback tones")
	f.BoolVar(&c.Debug, "debug", c.Debug, "Write logs to logs/tilewall.log")
	f.StringVar(&c.GPIOChip, "gpio-chip", c.GPIOChip, "GPIO chip for hardware buttons (e.g. gpiochip0)")
	f.IntVar(&c.GPIOLeader, "gpio-leader", c.GPIOLeader, "GPIO line of the leader button")
	f.IntVar(&c.GPIOStart, "gpio-start", c.GPIOStart, "GPIO line of the start button")
	f.DurationVar(&c.GPIODebounce, "gpio-debounce", c.GPIODebounce, "GPIO debounce period")
	f.IntVar(&c.Units, "units", c.Units, "Simulated units")
	f.Float64Var(&c.DropRate, "drop", c.DropRate, "Simulated radio loss probability")
	f.Float64Var(&c.DuplicateRate, "dup", c.DuplicateRate, "Simulated radio duplication probability")
	f.DurationVar(&c.Jitter, "jitter", c.Jitter, "Simulated radio delivery jitter")
	f.Int64Var(&c.Seed, "seed", c.Seed, "Simulated radio random seed")
}

// Validate rejects settings the protocol cannot run with
func (c *Config) Validate() error {
	switch {
	case c.PollInterval <= 0:
		return fmt.Errorf("poll interval %v: %w", c.PollInterval, ErrInvalidConfig)
	case c.TickInterval <= 0:
		return fmt.Errorf("tick interval %v: %w", c.TickInterval, ErrInvalidConfig)
	case c.Units < 1 || c.Units > 9:
		return fmt.Errorf("units %d not in [1,9]: %w", c.Units, ErrInvalidConfig)
	case c.DropRate < 0 || c.DropRate >= 1:
		return fmt.Errorf("drop rate %v not in [0,1): %w", c.DropRate, ErrInvalidConfig)
	case c.DuplicateRate < 0 || c.DuplicateRate > 1:
		return fmt.Errorf("duplicate rate %v not in [0,1]: %w", c.DuplicateRate, ErrInvalidConfig)
	case c.Jitter < 0:
		return fmt.Errorf("jitter %v: %w", c.Jitter, ErrInvalidConfig)
	case c.GPIOChip != "" && c.GPIOLeader == c.GPIOStart:
		return fmt.Errorf("gpio leader and start share line %d: %w", c.GPIOLeader, ErrInvalidConfig)
	}
	return nil
}

// Network returns the radio transport settings
func (c *Config) Network() *network.Config {
	nc := network.DefaultConfig()
	nc.Group = c.Group
	nc.UnitID = c.UnitID
	nc.Address = c.Address
	nc.Interface = c.Interface
	nc.Loopback = c.Loopback
	return nc
}

// Unit returns the runtime timing
func (c *Config) Unit() engine.UnitConfig {
	uc := engine.DefaultUnitConfig()
	uc.PollInterval = c.PollInterval
	uc.TickInterval = c.TickInterval
	return uc
}

// GPIO returns the hardware button wiring
func (c *Config) GPIO() input.GPIOConfig {
	return input.GPIOConfig{
		Chip:        c.GPIOChip,
		LeaderLine:  c.GPIOLeader,
		StartLine:   c.GPIOStart,
		DebounceFor: c.GPIODebounce,
	}
}

// Bus returns the simulated radio settings
func (c *Config) Bus() network.BusConfig {
	return network.BusConfig{
		DropRate:      c.DropRate,
		DuplicateRate: c.DuplicateRate,
		Jitter:        c.Jitter,
		Seed:          c.Seed,
	}
}
