package spec

// ToolOutputKind discriminates the populated branch of a ToolOutputUnion.
type ToolOutputKind string

const (
	ToolOutputKindNone  ToolOutputKind = "none"
	ToolOutputKindText  ToolOutputKind = "text"
	ToolOutputKindImage ToolOutputKind = "image"
	ToolOutputKindFile  ToolOutputKind = "file"
)

// ToolOutputUnion is a tagged union: exactly one of the item pointers is
// non-nil, and Kind names which.
type ToolOutputUnion struct {
	Kind ToolOutputKind `json:"kind"`

	TextItem  *ToolOutputText  `json:"textItem,omitempty"`
	ImageItem *ToolOutputImage `json:"imageItem,omitempty"`
	FileItem  *ToolOutputFile  `json:"fileItem,omitempty"`
}

type ToolOutputText struct {
	Text string `json:"text"`
}

// ImageDetail hints how much resolution a model should spend on the image.
type ImageDetail string

const (
	ImageDetailHigh ImageDetail = "high"
	ImageDetailLow  ImageDetail = "low"
	ImageDetailAuto ImageDetail = "auto"
)

// ToolOutputImage carries base64-encoded image bytes.
type ToolOutputImage struct {
	Detail    ImageDetail `json:"detail"`
	ImageName string      `json:"imageName"`
	ImageMIME string      `json:"imageMIME"`
	ImageData string      `json:"imageData"`
}

// ToolOutputFile carries base64-encoded file bytes for non-image content.
type ToolOutputFile struct {
	FileName string `json:"fileName"`
	FileMIME string `json:"fileMIME"`
	FileData string `json:"fileData"`
}

// TextOutputs wraps a string as a single-element text output slice, the
// common case for tool results.
func TextOutputs(text string) []ToolOutputUnion {
	return []ToolOutputUnion{
		{
			Kind:     ToolOutputKindText,
			TextItem: &ToolOutputText{Text: text},
		},
	}
}
