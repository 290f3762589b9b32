package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/okra-platform/crudgen/internal/naming"
	"github.com/okra-platform/crudgen/internal/request"
	"github.com/okra-platform/crudgen/internal/schema"
)

// InitOptions are the answers to the init form.
type InitOptions struct {
	EntityName   string
	TemplateName string
	// Fields holds one "name: TYPE" per line.
	Fields string
	Shared bool
	// BulkFields is a comma separated list of field names.
	BulkFields string
	OutputPath string
}

type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

type osFileSystem struct{}

func (fs *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// InitCommand authors a request file interactively.
type InitCommand struct {
	filesystem FileSystem
	ctrl       *Controller
	// For testing: if set, skip prompting
	testOptions *InitOptions
}

func NewInitCommand(c *Controller) *InitCommand {
	return &InitCommand{
		filesystem: &osFileSystem{},
		ctrl:       c,
	}
}

func (c *Controller) Init(ctx context.Context) error {
	return NewInitCommand(c).Run(ctx)
}

func (ic *InitCommand) Run(ctx context.Context) error {
	return ic.RunWithOptions(ctx)
}

func (ic *InitCommand) RunWithOptions(ctx context.Context, opts ...tea.ProgramOption) error {
	var options *InitOptions
	var err error

	if ic.testOptions != nil {
		options = ic.testOptions
	} else {
		options, err = ic.promptInitOptions(opts...)
		if err != nil {
			return fmt.Errorf("failed to get init options: %w", err)
		}
	}

	data, err := BuildRequest(options)
	if err != nil {
		return err
	}

	path := options.OutputPath
	if path == "" {
		conv, _ := naming.Derive(options.EntityName)
		path = conv.CamelSingular + ".crud.json"
	}
	if _, err := ic.filesystem.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := ic.filesystem.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write request file: %w", err)
	}

	success.Fprintf(ic.ctrl.Out, "✓ Created %s\n", path)
	fmt.Fprintf(ic.ctrl.Out, "  run: crudgen generate --area all --request %s\n", path)
	return nil
}

func (ic *InitCommand) promptInitOptions(opts ...tea.ProgramOption) (*InitOptions, error) {
	options := &InitOptions{TemplateName: request.DefaultTemplateName}

	form := ic.createInitForm(options)

	if len(opts) > 0 {
		// For testing: run with provided options
		program := tea.NewProgram(form, opts...)
		if _, err := program.Run(); err != nil {
			return nil, err
		}
	} else {
		if err := form.Run(); err != nil {
			return nil, err
		}
	}

	return options, nil
}

func (ic *InitCommand) createInitForm(o *InitOptions) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Entity name").
				Description("Singular or plural, e.g. Product or course batch").
				Value(&o.EntityName).
				Validate(func(s string) error {
					_, err := naming.Derive(s)
					return err
				}),

			huh.NewText().
				Title("Fields").
				Description("One per line as name: TYPE, e.g. size: SELECT#S, M, L").
				Value(&o.Fields).
				Validate(func(s string) error {
					_, err := ParseFieldLines(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Template name").
				Value(&o.TemplateName),

			huh.NewInput().
				Title("Bulk action fields").
				Description("Comma separated SELECT or BOOLEAN fields, may be empty").
				Value(&o.BulkFields),

			huh.NewConfirm().
				Title("Generate into the shared src/app/generate folder?").
				Value(&o.Shared),

			huh.NewInput().
				Title("Request file").
				Description("Defaults to <entity>.crud.json").
				Value(&o.OutputPath).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := ic.filesystem.Stat(s); err == nil {
						return fmt.Errorf("file %s already exists", s)
					}
					return nil
				}),
		),
	)
}

// ParseFieldLines parses "name: TYPE" lines into a descriptor, in order.
// Blank lines are skipped.
func ParseFieldLines(text string) (schema.Descriptor, error) {
	var d schema.Descriptor
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, raw, ok := strings.Cut(line, ":")
		if !ok {
			return schema.Descriptor{}, fmt.Errorf("line %d: expected name: TYPE", i+1)
		}
		ft, err := schema.ParseFieldType(raw)
		if err != nil {
			return schema.Descriptor{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		if err := d.Add(strings.TrimSpace(name), ft); err != nil {
			return schema.Descriptor{}, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	if d.Len() == 0 {
		return schema.Descriptor{}, fmt.Errorf("declare at least one field")
	}
	return d, nil
}

type requestFile struct {
	TemplateName     string            `json:"templateName"`
	EntityName       string            `json:"entityName"`
	Schema           schema.Descriptor `json:"schema"`
	NamingConvention map[string]any    `json:"namingConvention"`
}

// BuildRequest renders the answers as a request file. The result is decoded
// once more so that a file init writes always generates.
func BuildRequest(o *InitOptions) ([]byte, error) {
	conv, err := naming.Derive(o.EntityName)
	if err != nil {
		return nil, err
	}
	fields, err := ParseFieldLines(o.Fields)
	if err != nil {
		return nil, err
	}

	nc := map[string]any{
		"use_generate_folder": o.Shared,
	}
	for token, value := range conv.Tokens() {
		nc[token] = value
	}
	bulk := []string{}
	for _, name := range strings.Split(o.BulkFields, ",") {
		if name = strings.TrimSpace(name); name != "" {
			bulk = append(bulk, name)
		}
	}
	nc["bulk_action"] = bulk

	templateName := strings.TrimSpace(o.TemplateName)
	if templateName == "" {
		templateName = request.DefaultTemplateName
	}

	data, err := json.MarshalIndent(requestFile{
		TemplateName:     templateName,
		EntityName:       strings.TrimSpace(o.EntityName),
		Schema:           fields,
		NamingConvention: nc,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	data = append(data, '\n')

	if _, err := request.Decode(data, request.WithUIDGenerator(func() string { return "" })); err != nil {
		return nil, err
	}
	return data, nil
}
