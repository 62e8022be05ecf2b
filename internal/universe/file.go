package universe

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileSource reads the ticker universe from a YAML file:
//
//	tickers:
//	  - AAPL
//	  - MSFT
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource { return &FileSource{Path: path} }

func (f *FileSource) Name() string { return "file" }

func (f *FileSource) Tickers() ([]string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read ticker file: %w", err)
	}
	var doc struct {
		Tickers []string `yaml:"tickers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse ticker file: %w", err)
	}

	var out []string
	for _, t := range doc.Tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out, nil
}
