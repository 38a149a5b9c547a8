package imgutil

import "bytes"

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Detect sniffs the image format from magic bytes and returns the MIME type
// and matching file extension. The Gemini API sometimes reports a wrong mime
// type, so the bytes themselves are the source of truth. Unknown data falls
// back to PNG.
func Detect(data []byte) (mime, ext string) {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return "image/png", ".png"
	case bytes.HasPrefix(data, []byte{0xff, 0xd8}):
		return "image/jpeg", ".jpg"
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return "image/webp", ".webp"
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return "image/gif", ".gif"
	default:
		return "image/png", ".png"
	}
}
