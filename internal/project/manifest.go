package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest описывает найденный opal.toml вместе с его каталогом.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Format  FormatConfig  `toml:"format"`
}

type PackageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// FormatConfig ограничивает форматирование перечисленными каталогами
// относительно корня проекта. Пустой список - значения по умолчанию.
type FormatConfig struct {
	Include []string `toml:"include"`
}

// LoadManifest ищет opal.toml вверх от startDir и валидирует его.
// ok=false - манифеста нет (это не ошибка, вызывающий решает сам).
func LoadManifest(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindOpalToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	for _, dir := range cfg.Format.Include {
		if strings.TrimSpace(dir) == "" {
			return Config{}, fmt.Errorf("%s: empty entry in [format].include", path)
		}
		if filepath.IsAbs(dir) {
			return Config{}, fmt.Errorf("%s: [format].include must be relative: %s", path, dir)
		}
	}
	return cfg, nil
}

// SourceDirs возвращает абсолютные каталоги с исходниками проекта.
// Без [format].include берём src/ и test/, если они есть, иначе корень.
func (m *Manifest) SourceDirs() []string {
	if len(m.Config.Format.Include) > 0 {
		dirs := make([]string, 0, len(m.Config.Format.Include))
		for _, dir := range m.Config.Format.Include {
			dirs = append(dirs, filepath.Join(m.Root, filepath.FromSlash(dir)))
		}
		return dirs
	}

	var dirs []string
	for _, name := range []string{"src", "test"} {
		candidate := filepath.Join(m.Root, name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			dirs = append(dirs, candidate)
		}
	}
	if len(dirs) == 0 {
		dirs = append(dirs, m.Root)
	}
	return dirs
}
