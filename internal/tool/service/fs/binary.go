package fs

// binarySampleSize matches git's heuristic: a NUL byte in the first 8000
// bytes marks content as binary.
const binarySampleSize = 8000

// IsBinary reports whether content looks binary. UTF-16/UTF-32 byte order
// marks are treated as text.
func IsBinary(content []byte) bool {
	if len(content) >= 2 &&
		((content[0] == 0xFF && content[1] == 0xFE) || (content[0] == 0xFE && content[1] == 0xFF)) {
		return false
	}
	if len(content) >= 4 && content[0] == 0x00 && content[1] == 0x00 && content[2] == 0xFE && content[3] == 0xFF {
		return false
	}

	for _, b := range content[:min(len(content), binarySampleSize)] {
		if b == 0 {
			return true
		}
	}
	return false
}
