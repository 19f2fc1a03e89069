package docs

import (
	"fmt"
	"os"
	"strings"
)

// Slicer splits a single Markdown document into the pieces the docs endpoint
// serves: a system description, one section per tag and one per endpoint.
//
// The document format: everything before the first heading is the system
// description; "# Endpoints: <Tag>" starts a tag section and
// "## Endpoint: <METHOD> <path>" starts an endpoint section. A section runs
// until the next marker.
type Slicer struct {
	systemDescription string
	tagDocs           map[string]string
	tagOrder          []string
	endpointDocs      map[string]string
}

// Tag is a named endpoint group with its Markdown description.
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

const (
	tagPrefix      = "# Endpoints: "
	endpointPrefix = "## Endpoint: "
)

// NewSlicer parses the Markdown file at path.
func NewSlicer(path string) (*Slicer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read API docs: %w", err)
	}

	s := &Slicer{
		tagDocs:      make(map[string]string),
		endpointDocs: make(map[string]string),
	}

	inSystemDescription := true
	currentTag := ""
	currentEndpoint := ""
	var description strings.Builder

	for _, line := range strings.SplitAfter(string(data), "\n") {
		switch {
		case strings.HasPrefix(line, tagPrefix):
			inSystemDescription = false
			currentEndpoint = ""
			currentTag = strings.TrimRight(strings.ReplaceAll(line[len(tagPrefix):], "`", ""), "\r\n")
			if _, seen := s.tagDocs[currentTag]; !seen {
				s.tagOrder = append(s.tagOrder, currentTag)
			}
			s.tagDocs[currentTag] += line
		case strings.HasPrefix(line, endpointPrefix):
			inSystemDescription = false
			currentTag = ""
			currentEndpoint = strings.TrimRight(strings.ReplaceAll(line[len(endpointPrefix):], "`", ""), "\r\n")
			s.endpointDocs[currentEndpoint] += line
		case inSystemDescription:
			description.WriteString(line)
		case currentTag != "":
			s.tagDocs[currentTag] += line
		case currentEndpoint != "":
			s.endpointDocs[currentEndpoint] += line
		}
	}

	s.systemDescription = description.String()
	return s, nil
}

// SystemDescription returns the Markdown preceding the first section marker.
func (s *Slicer) SystemDescription() string {
	return s.systemDescription
}

// EndpointDocs returns the section for an endpoint key like "POST /v1/users",
// or "" when the document has none.
func (s *Slicer) EndpointDocs(endpoint string) string {
	return s.endpointDocs[endpoint]
}

// TagDocs returns the section for a tag like "Users".
func (s *Slicer) TagDocs(tag string) string {
	return s.tagDocs[tag]
}

// Tags returns every tag with its description, in document order.
func (s *Slicer) Tags() []Tag {
	tags := make([]Tag, len(s.tagOrder))
	for i, name := range s.tagOrder {
		tags[i] = Tag{Name: name, Description: s.tagDocs[name]}
	}
	return tags
}

// Endpoints returns the documented endpoint keys.
func (s *Slicer) Endpoints() []string {
	keys := make([]string, 0, len(s.endpointDocs))
	for k := range s.endpointDocs {
		keys = append(keys, k)
	}
	return keys
}
