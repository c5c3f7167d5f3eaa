package recording

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Descriptor is the per-session recording descriptor written to the bucket by
// the recorder when a recording starts. Read-only for us.
type Descriptor struct {
	MasterPath         string      `json:"masterPath"`
	MasterPlaylistName string      `json:"masterPlaylistName"`
	Renditions         []Rendition `json:"renditions"`
	RecordingStartedAt string      `json:"recordingStartedAt"`
	RecordedStreamID   string      `json:"recordedStreamId"`
	ChannelID          string      `json:"channelId"`
	ChannelARN         string      `json:"channelArn"`
}

// Rendition is one quality variant of the recording. The recorder orders these
// highest quality first.
type Rendition struct {
	Path         string `json:"path"`
	PlaylistName string `json:"playlistName"`
}

const descriptorSchemaDefinition = `{
	"type": "object",
	"properties": {
		"masterPath":         { "type": "string", "minLength": 1 },
		"masterPlaylistName": { "type": "string", "minLength": 1 },
		"renditions": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"path":         { "type": "string", "minLength": 1 },
					"playlistName": { "type": "string", "minLength": 1 }
				},
				"required": ["path", "playlistName"]
			}
		},
		"recordingStartedAt": { "type": "string" },
		"recordedStreamId":   { "type": "string" },
		"channelId":          { "type": "string", "minLength": 1 },
		"channelArn":         { "type": "string", "minLength": 1 }
	},
	"required": ["masterPath", "masterPlaylistName", "channelId", "channelArn"]
}`

// Compiled on program start so a broken schema fails fast
var descriptorSchema *gojsonschema.Schema = compileDescriptorSchema()

func compileDescriptorSchema() *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(descriptorSchemaDefinition))
	if err != nil {
		panic(err) // fix schema text
	}
	return schema
}

// ParseDescriptor validates and decodes a descriptor object body. Any
// validation or decode failure is a hard failure for the request.
func ParseDescriptor(body []byte) (Descriptor, error) {
	result, err := descriptorSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to validate recording descriptor: %w", err)
	}
	if !result.Valid() {
		return Descriptor{}, fmt.Errorf("invalid recording descriptor: %s", result.Errors())
	}

	var desc Descriptor
	if err := json.Unmarshal(body, &desc); err != nil {
		return Descriptor{}, fmt.Errorf("failed to parse recording descriptor: %w", err)
	}
	return desc, nil
}
