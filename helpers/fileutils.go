package helpers

import (
	"encoding/base64"
	"os"
)

// EncodeFile reads the whole file at path and returns it as standard base64
// along with the raw size in bytes.
func EncodeFile(path string) (string, int64, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", 0, err
	}
	return base64.StdEncoding.EncodeToString(content), int64(len(content)), nil
}
