package config

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/ItsNotGoodName/corrosion/internal/core"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type decoder interface {
	Decode(v any) error
}

type encoder interface {
	Encode(v any) error
}

// fileDriver reads and writes one config file with a codec.
type fileDriver struct {
	filePath   string
	newDecoder func(r io.Reader) decoder
	newEncoder func(w io.Writer) encoder
}

func (f fileDriver) Exists() (bool, error) {
	return core.FileExists(f.filePath)
}

func (f fileDriver) Read() (Config, error) {
	file, err := os.Open(f.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	defer file.Close()

	cfg := DefaultConfig()
	if err := f.newDecoder(file).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

func (f fileDriver) Write(cfg Config) error {
	filePathTmp := f.filePath + ".tmp"
	file, err := os.OpenFile(filePathTmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	enc := f.newEncoder(file)
	if err := enc.Encode(cfg); err != nil {
		file.Close()
		return err
	}
	if closer, ok := enc.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			file.Close()
			return err
		}
	}
	if err := file.Close(); err != nil {
		return err
	}

	return os.Rename(filePathTmp, f.filePath)
}

type YAML struct {
	fileDriver
}

func NewYAML(filePath string) YAML {
	return YAML{fileDriver{
		filePath:   filePath,
		newDecoder: func(r io.Reader) decoder { return yaml.NewDecoder(r) },
		newEncoder: func(w io.Writer) encoder { return yaml.NewEncoder(w) },
	}}
}

type JSON struct {
	fileDriver
}

func NewJSON(filePath string) JSON {
	return JSON{fileDriver{
		filePath:   filePath,
		newDecoder: func(r io.Reader) decoder { return json.NewDecoder(r) },
		newEncoder: func(w io.Writer) encoder {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc
		},
	}}
}

type TOML struct {
	fileDriver
}

func NewTOML(filePath string) TOML {
	return TOML{fileDriver{
		filePath:   filePath,
		newDecoder: func(r io.Reader) decoder { return toml.NewDecoder(r) },
		newEncoder: func(w io.Writer) encoder { return toml.NewEncoder(w) },
	}}
}
