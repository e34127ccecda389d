package folderhash

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-ini/ini"
)

// Config represents the folderhash configuration file
type Config struct {
	configPath string
	ini        *ini.File
}

// HashConfig represents hash algorithm configuration
type HashConfig struct {
	Algo     string
	Encoding string
}

// MatchConfig represents name-sensitivity configuration
type MatchConfig struct {
	Basename bool
	Path     bool
}

// ExcludeConfig represents exclude pattern configuration
type ExcludeConfig struct {
	Patterns []string
}

// SymlinkConfig represents symlink handling configuration
type SymlinkConfig struct {
	Follow bool
}

// FolderConfig represents directory handling configuration
type FolderConfig struct {
	IncludeEmpty bool
}

// PerformanceConfig represents performance-related configuration
type PerformanceConfig struct {
	HashWorkers int    // Concurrent subtree workers, 0 means one per CPU
	HashBuffer  string // File read buffer size (default: "2M")
}

// OutputConfig represents output format configuration
type OutputConfig struct {
	Format string // human, json or hash
}

// VerboseConfig represents verbosity configuration
type VerboseConfig struct {
	Level int    // Default verbose level (0=quiet, 1=basic, 2=detailed, 3=trace)
	Debug string // Default debug flags (comma-separated)
}

// AllConfig represents all configuration options
type AllConfig struct {
	Hash        *HashConfig
	Match       *MatchConfig
	Exclude     *ExcludeConfig
	Symlink     *SymlinkConfig
	Folder      *FolderConfig
	Performance *PerformanceConfig
	Output      *OutputConfig
	Verbose     *VerboseConfig
}

// Repeated keys are kept; [exclude] lists one pattern per "patterns" line
var loadOptions = ini.LoadOptions{AllowShadows: true}

// LoadConfig loads configuration from configPath. A missing file yields the defaults;
// nothing is written until Save is called.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{
		configPath: configPath,
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg.ini = ini.Empty(loadOptions)
		if err := cfg.setDefaults(); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
		if IsDebugEnabled(DebugConfig) {
			VerboseLog(2, "config: %s not found, using defaults", configPath)
		}
		return cfg, nil
	}

	iniFile, err := ini.LoadSources(loadOptions, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	cfg.ini = iniFile
	if IsDebugEnabled(DebugConfig) {
		VerboseLog(2, "config: loaded %s", configPath)
	}

	return cfg, nil
}

// FindConfigFile searches startDir and its parents for a configuration file
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", startDir, err)
	}

	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("no %s file in %s or any parent directory", ConfigFileName, startDir)
}

type defaultKey struct {
	section, key, value string
}

var configDefaults = []defaultKey{
	{"hash", "algo", DefaultAlgo},
	{"hash", "encoding", DefaultEncoding},
	{"match", "basename", "true"},
	{"match", "path", "true"},
	{"exclude", "patterns", ""},
	{"symlink", "follow", "true"},
	{"folders", "include_empty", "true"},
	{"performance", "hash_workers", "0"},
	{"performance", "hash_buffer", "2M"},
	{"output", "format", "human"},
	{"verbose", "level", "0"},
	{"verbose", "debug", ""},
}

// setDefaults sets default configuration values
func (c *Config) setDefaults() error {
	for _, d := range configDefaults {
		section, err := c.ini.NewSection(d.section)
		if err != nil {
			return fmt.Errorf("failed to create %s section: %w", d.section, err)
		}
		if _, err := section.NewKey(d.key, d.value); err != nil {
			return fmt.Errorf("failed to set default %s.%s: %w", d.section, d.key, err)
		}
	}
	return nil
}

// Path returns the file the configuration was loaded from or will be saved to
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) boolKey(section, key string, fallback bool) bool {
	if !c.ini.HasSection(section) {
		return fallback
	}
	s := c.ini.Section(section)
	if !s.HasKey(key) {
		return fallback
	}
	v, err := s.Key(key).Bool()
	if err != nil {
		return fallback
	}
	return v
}

func (c *Config) stringKey(section, key, fallback string) string {
	if !c.ini.HasSection(section) {
		return fallback
	}
	s := c.ini.Section(section)
	if !s.HasKey(key) {
		return fallback
	}
	if v := strings.TrimSpace(s.Key(key).String()); v != "" {
		return v
	}
	return fallback
}

// GetHashConfig returns the hash configuration
func (c *Config) GetHashConfig() *HashConfig {
	return &HashConfig{
		Algo:     c.stringKey("hash", "algo", DefaultAlgo),
		Encoding: c.stringKey("hash", "encoding", DefaultEncoding),
	}
}

// GetMatchConfig returns the name-sensitivity configuration
func (c *Config) GetMatchConfig() *MatchConfig {
	return &MatchConfig{
		Basename: c.boolKey("match", "basename", true),
		Path:     c.boolKey("match", "path", true),
	}
}

// GetExcludeConfig returns the exclude patterns, one per "patterns" line in file order
func (c *Config) GetExcludeConfig() *ExcludeConfig {
	excludeConfig := &ExcludeConfig{
		Patterns: []string{},
	}

	if c.ini.HasSection("exclude") {
		section := c.ini.Section("exclude")
		if section.HasKey("patterns") {
			for _, p := range section.Key("patterns").ValueWithShadows() {
				if p = strings.TrimSpace(p); p != "" {
					excludeConfig.Patterns = append(excludeConfig.Patterns, p)
				}
			}
		}
	}

	return excludeConfig
}

// GetSymlinkConfig returns the symlink configuration
func (c *Config) GetSymlinkConfig() *SymlinkConfig {
	return &SymlinkConfig{
		Follow: c.boolKey("symlink", "follow", true),
	}
}

// GetFolderConfig returns the directory configuration
func (c *Config) GetFolderConfig() *FolderConfig {
	return &FolderConfig{
		IncludeEmpty: c.boolKey("folders", "include_empty", true),
	}
}

// GetPerformanceConfig returns the performance configuration
func (c *Config) GetPerformanceConfig() *PerformanceConfig {
	performanceConfig := &PerformanceConfig{
		HashWorkers: 0,
		HashBuffer:  "2M",
	}

	if c.ini.HasSection("performance") {
		section := c.ini.Section("performance")
		if section.HasKey("hash_workers") {
			if workers, err := section.Key("hash_workers").Int(); err == nil {
				performanceConfig.HashWorkers = workers
			}
		}
		if section.HasKey("hash_buffer") {
			if bufferSize := section.Key("hash_buffer").String(); bufferSize != "" {
				performanceConfig.HashBuffer = bufferSize
			}
		}
	}

	return performanceConfig
}

// GetOutputConfig returns the output configuration
func (c *Config) GetOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format: c.stringKey("output", "format", "human"),
	}
}

// GetVerboseConfig returns the verbose configuration
func (c *Config) GetVerboseConfig() *VerboseConfig {
	verboseConfig := &VerboseConfig{
		Level: 0,
		Debug: "",
	}

	if c.ini.HasSection("verbose") {
		section := c.ini.Section("verbose")
		if section.HasKey("level") {
			if level, err := section.Key("level").Int(); err == nil {
				verboseConfig.Level = level
			}
		}
		if section.HasKey("debug") {
			verboseConfig.Debug = section.Key("debug").String()
		}
	}

	return verboseConfig
}

// GetAllConfig returns all configuration options
func (c *Config) GetAllConfig() *AllConfig {
	return &AllConfig{
		Hash:        c.GetHashConfig(),
		Match:       c.GetMatchConfig(),
		Exclude:     c.GetExcludeConfig(),
		Symlink:     c.GetSymlinkConfig(),
		Folder:      c.GetFolderConfig(),
		Performance: c.GetPerformanceConfig(),
		Output:      c.GetOutputConfig(),
		Verbose:     c.GetVerboseConfig(),
	}
}

// Options converts the configuration into hashing overrides
func (c *Config) Options() (*Overrides, error) {
	all := c.GetAllConfig()

	bufferSize, err := ParseHumanSize(all.Performance.HashBuffer)
	if err != nil {
		return nil, newHashError(KindInvalidOption, "hash_buffer", err)
	}

	return &Overrides{
		Algo:     all.Hash.Algo,
		Encoding: all.Hash.Encoding,
		Excludes: all.Exclude.Patterns,
		Match: MatchOverrides{
			Basename: Bool(all.Match.Basename),
			Path:     Bool(all.Match.Path),
		},
		Symlinks:   SymlinkOverrides{Follow: Bool(all.Symlink.Follow)},
		Folders:    FolderOverrides{IncludeEmpty: Bool(all.Folder.IncludeEmpty)},
		Workers:    all.Performance.HashWorkers,
		BufferSize: bufferSize,
	}, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	return c.ini.SaveTo(c.configPath)
}

// WriteTo writes the configuration in ini form
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	return c.ini.WriteTo(w)
}

var overrideKeys = map[string][2]string{
	"algo":          {"hash", "algo"},
	"encoding":      {"hash", "encoding"},
	"basename":      {"match", "basename"},
	"path":          {"match", "path"},
	"exclude":       {"exclude", "patterns"},
	"follow":        {"symlink", "follow"},
	"include_empty": {"folders", "include_empty"},
	"hash_workers":  {"performance", "hash_workers"},
	"hash_buffer":   {"performance", "hash_buffer"},
	"format":        {"output", "format"},
	"level":         {"verbose", "level"},
	"debug":         {"verbose", "debug"},
}

// ApplyOverrides applies command-line overrides to the configuration
// Accepts strings like "algo:sha256", "format:json", "level:2", "exclude:*.{log,tmp}".
// Each exclude override holds one pattern; together they replace the file's patterns.
func (c *Config) ApplyOverrides(overrides []string) error {
	replacedExcludes := false
	for _, override := range overrides {
		parts := strings.SplitN(override, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid override format '%s', expected 'key:value'", override)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		target, ok := overrideKeys[key]
		if !ok {
			return fmt.Errorf("unsupported override key '%s' (supported: %s)", key, strings.Join(supportedOverrideKeys(), ", "))
		}
		if key == "exclude" {
			if err := c.overrideExclude(value, !replacedExcludes); err != nil {
				return err
			}
			replacedExcludes = true
			continue
		}
		c.ini.Section(target[0]).Key(target[1]).SetValue(value)
	}

	return nil
}

func (c *Config) overrideExclude(pattern string, replace bool) error {
	section := c.ini.Section("exclude")
	if replace {
		section.DeleteKey("patterns")
		_, err := section.NewKey("patterns", pattern)
		return err
	}
	return section.Key("patterns").AddShadow(pattern)
}

func supportedOverrideKeys() []string {
	return []string{"algo", "encoding", "basename", "path", "exclude", "follow", "include_empty",
		"hash_workers", "hash_buffer", "format", "level", "debug"}
}

// Validate checks every configured value
func (c *Config) Validate() error {
	all := c.GetAllConfig()

	if err := ValidateHashAlgorithm(all.Hash.Algo); err != nil {
		return err
	}
	if err := ValidateEncoding(all.Hash.Encoding); err != nil {
		return err
	}
	for _, pattern := range all.Exclude.Patterns {
		if err := ValidatePattern(pattern); err != nil {
			return err
		}
	}
	for _, key := range [][2]string{{"match", "basename"}, {"match", "path"}, {"symlink", "follow"}, {"folders", "include_empty"}} {
		if err := c.validateBool(key[0], key[1]); err != nil {
			return err
		}
	}
	if err := ValidateHashWorkers(all.Performance.HashWorkers); err != nil {
		return err
	}
	if _, err := ParseHumanSize(all.Performance.HashBuffer); err != nil {
		return fmt.Errorf("invalid hash buffer: %w", err)
	}
	if err := ValidateOutputFormat(all.Output.Format); err != nil {
		return err
	}
	if err := ValidateVerboseLevel(all.Verbose.Level); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBool(section, key string) error {
	if !c.ini.HasSection(section) || !c.ini.Section(section).HasKey(key) {
		return nil
	}
	if _, err := c.ini.Section(section).Key(key).Bool(); err != nil {
		return newHashError(KindInvalidOption, section+"."+key, err)
	}
	return nil
}

// ValidateHashAlgorithm validates that a hash algorithm is supported
func ValidateHashAlgorithm(algorithm string) error {
	_, err := GetHashAlgorithm(algorithm)
	return err
}

// ValidateEncoding validates that a digest encoding is supported
func ValidateEncoding(encoding string) error {
	_, err := GetDigestEncoding(encoding)
	return err
}

// ValidateOutputFormat validates that an output format is supported
func ValidateOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case "human", "json", "hash":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: human, json, hash)", format)
	}
}

// ValidateVerboseLevel validates that a verbose level is valid
func ValidateVerboseLevel(level int) error {
	if level < 0 || level > 3 {
		return fmt.Errorf("invalid verbose level: %d (supported: 0-3)", level)
	}
	return nil
}

// ValidateHashWorkers validates that the hash worker count is reasonable
func ValidateHashWorkers(workers int) error {
	if workers < 0 {
		return fmt.Errorf("hash workers must not be negative, got: %d", workers)
	}
	if workers > 256 {
		return fmt.Errorf("hash workers should not exceed 256, got: %s", strconv.Itoa(workers))
	}
	return nil
}
