package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingFrontMatter indicates the document did not start with a YAML fence.
	ErrMissingFrontMatter = errors.New("artifact: missing frontmatter")
	// ErrMalformedFrontMatter indicates the YAML block could not be parsed.
	ErrMalformedFrontMatter = errors.New("artifact: malformed frontmatter")
)

// ParseFrontMatter extracts the metadata block and body from a document that
// starts with `---` YAML fences.
func ParseFrontMatter(content []byte) (Metadata, []byte, error) {
	if len(content) == 0 {
		return Metadata{}, nil, ErrMissingFrontMatter
	}
	normalized := normalizeNewlines(content)
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return Metadata{}, nil, ErrMissingFrontMatter
	}
	rest := normalized[4:]
	parts := bytes.SplitN(rest, []byte("\n---\n"), 2)
	if len(parts) < 2 {
		return Metadata{}, nil, ErrMalformedFrontMatter
	}
	metaBytes := parts[0]
	body := parts[1]
	var envelope receiptEnvelope
	if err := yaml.Unmarshal(metaBytes, &envelope); err != nil {
		return Metadata{}, nil, fmt.Errorf("artifact: parse frontmatter: %w", err)
	}
	meta, err := envelope.toMetadata()
	if err != nil {
		return Metadata{}, nil, err
	}
	return meta, body, nil
}

// WriteFrontMatter renders metadata + body with YAML fences.
func WriteFrontMatter(meta Metadata, body []byte) ([]byte, error) {
	if meta.ArtifactID == "" {
		return nil, fmt.Errorf("artifact: metadata missing artifact id")
	}
	envelope := receiptEnvelope{}
	envelope.fromMetadata(meta)
	data, err := yaml.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("artifact: encode frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(bytes.TrimRight(data, "\n"))
	buf.WriteString("\n---\n\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

type receiptEnvelope struct {
	Wheelhouse receiptMetadata `yaml:"wheelhouse"`
}

type receiptMetadata struct {
	Artifact string            `yaml:"artifact"`
	Step     string            `yaml:"step"`
	Version  string            `yaml:"version"`
	Workflow string            `yaml:"workflow,omitempty"`
	Files    []string          `yaml:"files,omitempty"`
	Created  string            `yaml:"created"`
	Checksum string            `yaml:"checksum,omitempty"`
	Notes    map[string]string `yaml:"notes,omitempty"`
}

func (e receiptEnvelope) toMetadata() (Metadata, error) {
	if e.Wheelhouse.Artifact == "" || e.Wheelhouse.Step == "" || e.Wheelhouse.Version == "" {
		return Metadata{}, ErrMalformedFrontMatter
	}
	created, err := parseTime(e.Wheelhouse.Created)
	if err != nil {
		return Metadata{}, fmt.Errorf("artifact: parse created timestamp: %w", err)
	}
	return Metadata{
		ArtifactID: e.Wheelhouse.Artifact,
		StepID:     e.Wheelhouse.Step,
		Version:    e.Wheelhouse.Version,
		Workflow:   e.Wheelhouse.Workflow,
		Files:      append([]string{}, e.Wheelhouse.Files...),
		CreatedAt:  created,
		Checksum:   e.Wheelhouse.Checksum,
		Notes:      cloneNotes(e.Wheelhouse.Notes),
	}, nil
}

func (e *receiptEnvelope) fromMetadata(meta Metadata) {
	e.Wheelhouse.Artifact = meta.ArtifactID
	e.Wheelhouse.Step = meta.StepID
	e.Wheelhouse.Version = meta.Version
	e.Wheelhouse.Workflow = meta.Workflow
	e.Wheelhouse.Files = append([]string{}, meta.Files...)
	e.Wheelhouse.Created = meta.CreatedAt.UTC().Format(timeLayout)
	e.Wheelhouse.Checksum = meta.Checksum
	e.Wheelhouse.Notes = cloneNotes(meta.Notes)
}

func cloneNotes(notes map[string]string) map[string]string {
	if len(notes) == 0 {
		return nil
	}
	cloned := make(map[string]string, len(notes))
	for k, v := range notes {
		cloned[k] = v
	}
	return cloned
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

func parseTime(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, fmt.Errorf("artifact: empty created timestamp")
	}
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func normalizeNewlines(content []byte) []byte {
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
}
