package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	// AttrConfig is a single attribute to put on an inserted element.
	AttrConfig struct {
		Key   string `yaml:"key" validate:"required"`
		Value string `yaml:"value"`
	}

	// LinkConfig describes one link element to append to head. Empty rel
	// means stylesheet. Insertion never deduplicates, the same link listed
	// twice ends up in the page twice.
	LinkConfig struct {
		Href       string       `yaml:"href" validate:"required"`
		Rel        string       `yaml:"rel,omitempty"`
		Attributes []AttrConfig `yaml:"attributes,omitempty" validate:"dive"`
	}

	// ScriptConfig describes one inline script to append to head. Either the
	// script text is given directly or a path to a file with the text; when
	// both are set the text wins.
	ScriptConfig struct {
		Text string `yaml:"text,omitempty"`
		Path string `yaml:"path,omitempty" sanitize:"assure_file_access" validate:"required_without=Text,omitempty,filepath"`
	}

	// HeadConfig drives the head edits applied to every page. Empty charset
	// or viewport disables the corresponding edit.
	HeadConfig struct {
		TitleTemplate string         `yaml:"title_template"`
		Lang          string         `yaml:"lang,omitempty" validate:"omitempty,bcp47_language_tag"`
		Charset       string         `yaml:"charset"`
		Viewport      string         `yaml:"viewport"`
		Links         []LinkConfig   `yaml:"links,omitempty" validate:"dive"`
		Scripts       []ScriptConfig `yaml:"scripts,omitempty" validate:"dive"`
	}

	// PruneRule selects nodes to remove from pages. All non-empty criteria
	// must match the same node. Class matches a single class token, not the
	// whole attribute value. Value is only meaningful together with
	// Attribute; Attribute with an empty Value matches mere presence.
	PruneRule struct {
		Name      string `yaml:"name,omitempty"`
		ID        string `yaml:"id,omitempty"`
		Class     string `yaml:"class,omitempty"`
		Attribute string `yaml:"attribute,omitempty"`
		Value     string `yaml:"value,omitempty"`
		Content   string `yaml:"content,omitempty"`
	}

	PagesConfig struct {
		FixZip             bool        `yaml:"fix_zip"`
		OutputNameTemplate string      `yaml:"output_name_template"`
		FileNameSlugify    bool        `yaml:"file_name_slugify"`
		Head               HeadConfig  `yaml:"head"`
		Prune              []PruneRule `yaml:"prune,omitempty" validate:"dive"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Pages     PagesConfig    `yaml:"pages"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// Empty reports whether the rule has no criteria at all. Such a rule would
// remove every node it is asked about, which is never what the user meant.
func (r PruneRule) Empty() bool {
	return r.Name == "" && r.ID == "" && r.Class == "" && r.Attribute == "" && r.Content == ""
}

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
	TitleTemplateFieldName      TemplateFieldName = "title_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(TitleTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("failed to validate configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
