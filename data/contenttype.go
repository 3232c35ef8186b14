package data

import (
	"path"
	"strings"
)

type ContentType string

const (
	ContentTypeDirectory         = "application/x-directory"
	ContentTypeTextPlain         = "text/plain"
	ContentTypeTextHTML          = "text/html"
	ContentTypeTextCSS           = "text/css"
	ContentTypeTextJavaScript    = "text/javascript"
	ContentTypeTextCSV           = "text/csv"
	ContentTypeImageJPEG         = "image/jpeg"
	ContentTypeImagePNG          = "image/png"
	ContentTypeImageGIF          = "image/gif"
	ContentTypeImageWebP         = "image/webp"
	ContentTypeImageSVGXML       = "image/svg+xml"
	ContentTypeAudioMpeg         = "audio/mpeg"
	ContentTypeAudioWAV          = "audio/wav"
	ContentTypeAudioOGG          = "audio/ogg"
	ContentTypeAudioWebM         = "audio/webm"
	ContentTypeVideoMP4          = "video/mp4"
	ContentTypeVideoWebM         = "video/webm"
	ContentTypeVideoQuickTime    = "video/quicktime"
	ContentTypeApplicationPDF    = "application/pdf"
	ContentTypeApplicationZip    = "application/zip"
	ContentTypeApplicationGZip   = "application/gzip"
	ContentTypeApplicationXTar   = "application/x-tar"
	ContentTypeApplicationJson   = "application/json"
	ContentTypeApplicationXML    = "application/xml"
	ContentTypeApplicationStream = "application/octet-stream"
	ContentTypeTextGo            = "text/x-go"
	ContentTypeApplicationYAML   = "application/yaml"
	ContentTypeTextMarkdown      = "text/markdown"
)

// ExtensionToMIME maps file extensions to MIME types
var ExtensionToMIME = map[string]ContentType{
	".txt":  ContentTypeTextPlain,
	".html": ContentTypeTextHTML,
	".css":  ContentTypeTextCSS,
	".js":   ContentTypeTextJavaScript,
	".csv":  ContentTypeTextCSV,
	".jpg":  ContentTypeImageJPEG,
	".jpeg": ContentTypeImageJPEG,
	".png":  ContentTypeImagePNG,
	".gif":  ContentTypeImageGIF,
	".webp": ContentTypeImageWebP,
	".svg":  ContentTypeImageSVGXML,
	".mp3":  ContentTypeAudioMpeg,
	".wav":  ContentTypeAudioWAV,
	".ogg":  ContentTypeAudioOGG,
	".mp4":  ContentTypeVideoMP4,
	".webm": ContentTypeVideoWebM,
	".pdf":  ContentTypeApplicationPDF,
	".zip":  ContentTypeApplicationZip,
	".gz":   ContentTypeApplicationGZip,
	".tar":  ContentTypeApplicationXTar,
	".json": ContentTypeApplicationJson,
	".xml":  ContentTypeApplicationXML,
	".go":   ContentTypeTextGo,
	".yaml": ContentTypeApplicationYAML,
	".yml":  ContentTypeApplicationYAML,
	".md":   ContentTypeTextMarkdown,
}

// GetMIMEType returns the MIME type for the extension of path.
func GetMIMEType(p string) ContentType {
	ext := strings.ToLower(path.Ext(p))

	if mimeType, exists := ExtensionToMIME[ext]; exists {
		return mimeType
	}

	// Default to octet-stream for unknown types
	return ContentTypeApplicationStream
}
