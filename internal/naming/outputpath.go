package naming

import (
	"path/filepath"
	"strings"
)

// hdrSuffix is appended to the stem of a bracket's first exposure.
const hdrSuffix = "_hdr"

// OutputPath builds the merged HDR path for a bracket from its first input.
// ext is the file extension with or without a leading dot. An empty
// outputDir places the result next to the input.
//
//	IMG_0001.cr2 -> <outputDir>/IMG_0001_hdr.<ext>
func OutputPath(firstInput, outputDir, ext string) string {
	base := filepath.Base(firstInput)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if outputDir == "" {
		outputDir = filepath.Dir(firstInput)
	}
	return filepath.Join(outputDir, stem+hdrSuffix+"."+strings.TrimPrefix(ext, "."))
}
